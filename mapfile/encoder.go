package mapfile

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/rhelmot/arborio-sub001/binel"
	"github.com/rhelmot/arborio-sub001/encoding"
	"github.com/rhelmot/arborio-sub001/errs"
	"github.com/rhelmot/arborio-sub001/format"
	"github.com/rhelmot/arborio-sub001/lookup"
	"github.com/rhelmot/arborio-sub001/section"
)

// Encoder turns a tree into map file bytes.
//
// Output is deterministic: the lookup table order is fixed by the tree and
// attributes are written sorted by key, so encoding the same tree twice
// yields identical bytes.
type Encoder struct {
	cfg *Config
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: WithInitialBufferSize, WithLogger
//
// Returns:
//   - *Encoder: the encoder
//   - error: an option was invalid
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode serializes file. The returned slice is owned by the caller.
func (e *Encoder) Encode(file *binel.File) ([]byte, error) {
	w := encoding.NewWriter(e.cfg.engine)
	defer w.Release()

	if err := e.encode(w, file); err != nil {
		return nil, err
	}

	return bytes.Clone(w.Bytes()), nil
}

// EncodeTo serializes file and writes it to dst.
//
// Returns:
//   - int64: number of bytes written to dst
//   - error: encoding or write failure
func (e *Encoder) EncodeTo(dst io.Writer, file *binel.File) (int64, error) {
	w := encoding.NewWriter(e.cfg.engine)
	defer w.Release()

	if err := e.encode(w, file); err != nil {
		return 0, err
	}

	n, err := dst.Write(w.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("write map: %w", err)
	}

	return int64(n), nil
}

func (e *Encoder) encode(w *encoding.Writer, file *binel.File) error {
	if file == nil || file.Root == nil {
		return errs.ErrNilFile
	}

	w.Grow(e.cfg.initialBufferSize)

	table := lookup.Build(file.Root)

	header := section.Header{Package: file.Package}
	header.Write(w)

	strs := section.LookupSection{Strings: table.Strings()}
	if err := strs.Write(w); err != nil {
		return err
	}

	if err := e.encodeElement(w, table, file.Root); err != nil {
		return err
	}

	e.cfg.logger.Debug("encoded map",
		"package", file.Package, "bytes", w.Len(), "lookup_entries", table.Len())

	return nil
}

func (e *Encoder) encodeElement(w *encoding.Writer, table *lookup.Table, el *binel.Element) error {
	if el.Name == "" {
		return errs.ErrEmptyElementName
	}
	if err := writeIndex(w, table, el.Name, "element name"); err != nil {
		return err
	}

	if len(el.Attributes) > section.MaxAttributes {
		return fmt.Errorf("%w: %q has %d", errs.ErrTooManyAttributes, el.Name, len(el.Attributes))
	}
	w.WriteUint8(uint8(len(el.Attributes))) //nolint:gosec

	for _, key := range el.AttrKeys() {
		if err := writeIndex(w, table, key, "attribute key"); err != nil {
			return err
		}
		if err := writeAttr(w, table, el.Attributes[key]); err != nil {
			return fmt.Errorf("%q.%s: %w", el.Name, key, err)
		}
	}

	if el.ChildCount() > section.MaxChildren {
		return fmt.Errorf("%w: %q has %d", errs.ErrTooManyChildren, el.Name, el.ChildCount())
	}
	w.WriteUint16(uint16(el.ChildCount())) //nolint:gosec

	for child := range el.Children() {
		if err := e.encodeElement(w, table, child); err != nil {
			return err
		}
	}

	return nil
}

func writeIndex(w *encoding.Writer, table *lookup.Table, s, what string) error {
	idx, ok := table.Index(s)
	if !ok || idx > section.MaxLookupEntries {
		return fmt.Errorf("%w: %s %q", errs.ErrMissingLookupEntry, what, s)
	}
	w.WriteUint16(uint16(idx)) //nolint:gosec

	return nil
}

// TagFor returns the tag the encoder writes for a when encoding against table.
func TagFor(table *lookup.Table, a binel.Attr) (format.AttrTag, error) {
	switch a.Kind() {
	case binel.KindBool:
		return format.TagBool, nil
	case binel.KindInt:
		v, _ := a.AsInt()
		switch {
		case v >= 0 && v <= math.MaxUint8:
			return format.TagUint8, nil
		case v >= math.MinInt16 && v <= math.MaxInt16:
			return format.TagInt16, nil
		default:
			return format.TagInt32, nil
		}
	case binel.KindFloat:
		return format.TagFloat32, nil
	case binel.KindText:
		s, _ := a.AsText()
		if idx, ok := table.Index(s); ok && idx <= section.MaxLookupEntries {
			return format.TagLookup, nil
		}
		if n := encoding.RLESize(s); n < len(s) && n <= math.MaxInt16 && encoding.IsASCII(s) {
			return format.TagRLE, nil
		}

		return format.TagString, nil
	default:
		return 0, errs.ErrInvalidAttrKind
	}
}

func writeAttr(w *encoding.Writer, table *lookup.Table, a binel.Attr) error {
	tag, err := TagFor(table, a)
	if err != nil {
		return err
	}
	w.WriteUint8(uint8(tag))

	switch tag {
	case format.TagBool:
		v, _ := a.AsBool()
		if v {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}
	case format.TagUint8:
		v, _ := a.AsInt()
		w.WriteUint8(uint8(v)) //nolint:gosec
	case format.TagInt16:
		v, _ := a.AsInt()
		w.WriteInt16(int16(v)) //nolint:gosec
	case format.TagInt32:
		v, _ := a.AsInt()
		w.WriteInt32(v)
	case format.TagFloat32:
		bits, _ := a.FloatBits()
		w.WriteUint32(bits)
	case format.TagLookup:
		s, _ := a.AsText()
		idx, _ := table.Index(s)
		w.WriteUint16(uint16(idx)) //nolint:gosec
	case format.TagRLE:
		s, _ := a.AsText()
		w.WriteInt16(int16(encoding.RLESize(s))) //nolint:gosec
		w.WriteRLE(s)
	case format.TagString:
		s, _ := a.AsText()
		w.WriteVarString(s)
	}

	return nil
}
