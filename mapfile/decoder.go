package mapfile

import (
	"fmt"
	"io"

	"github.com/rhelmot/arborio-sub001/binel"
	"github.com/rhelmot/arborio-sub001/encoding"
	"github.com/rhelmot/arborio-sub001/errs"
	"github.com/rhelmot/arborio-sub001/format"
	"github.com/rhelmot/arborio-sub001/section"
)

// Decoder turns map file bytes into a tree.
//
// Every failure is reported as an *errs.ParseError wrapping one of the errs
// sentinels; malformed input never causes a panic.
type Decoder struct {
	cfg *Config
}

// NewDecoder creates a Decoder.
//
// Parameters:
//   - opts: WithMaxDepth, WithLogger
//
// Returns:
//   - *Decoder: the decoder
//   - error: an option was invalid
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Decode parses a complete map file.
//
// Bytes following the root element are ignored.
func (d *Decoder) Decode(data []byte) (*binel.File, error) {
	c := encoding.NewCursor(data, d.cfg.engine)

	var header section.Header
	if err := header.Parse(c); err != nil {
		return nil, err
	}

	var table section.LookupSection
	if err := table.Parse(c); err != nil {
		return nil, err
	}

	root, err := d.decodeElement(c, &table, 1)
	if err != nil {
		return nil, err
	}

	if c.Remaining() > 0 {
		d.cfg.logger.Debug("ignoring trailing bytes after root element",
			"package", header.Package, "offset", c.Offset(), "trailing", c.Remaining())
	}
	d.cfg.logger.Debug("decoded map",
		"package", header.Package, "bytes", len(data), "lookup_entries", len(table.Strings))

	return binel.NewFile(header.Package, root), nil
}

// DecodeFrom reads r to EOF and decodes the result.
func (d *Decoder) DecodeFrom(r io.Reader) (*binel.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}

	return d.Decode(data)
}

func (d *Decoder) decodeElement(c *encoding.Cursor, table *section.LookupSection, depth int) (*binel.Element, error) {
	if depth > d.cfg.maxDepth {
		return nil, c.Fail("element", fmt.Errorf("%w: limit %d", errs.ErrMaxDepthExceeded, d.cfg.maxDepth))
	}

	start := c.Offset()
	name, err := table.Resolve(c, "element name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewParseError(start, "element name", errs.ErrEmptyElementName)
	}
	el := binel.New(name)

	attrCount, err := c.ReadUint8("attribute count")
	if err != nil {
		return nil, err
	}
	for range attrCount {
		key, err := table.Resolve(c, "attribute key")
		if err != nil {
			return nil, err
		}
		value, err := d.decodeAttr(c, table)
		if err != nil {
			return nil, err
		}
		// a repeated key overwrites the earlier value
		el.SetAttr(key, value)
	}

	childCount, err := c.ReadUint16("child count")
	if err != nil {
		return nil, err
	}
	for range childCount {
		child, err := d.decodeElement(c, table, depth+1)
		if err != nil {
			return nil, err
		}
		el.Insert(child)
	}

	return el, nil
}

func (d *Decoder) decodeAttr(c *encoding.Cursor, table *section.LookupSection) (binel.Attr, error) {
	start := c.Offset()
	raw, err := c.ReadUint8("attribute tag")
	if err != nil {
		return binel.Attr{}, err
	}

	switch tag := format.AttrTag(raw); tag {
	case format.TagBool:
		v, err := c.ReadUint8("bool value")
		return binel.Bool(v != 0), err
	case format.TagUint8:
		v, err := c.ReadUint8("u8 value")
		return binel.Int(int32(v)), err
	case format.TagInt16:
		v, err := c.ReadInt16("i16 value")
		return binel.Int(int32(v)), err
	case format.TagInt32:
		v, err := c.ReadInt32("i32 value")
		return binel.Int(v), err
	case format.TagFloat32:
		bits, err := c.ReadUint32("f32 value")
		return binel.FloatFromBits(bits), err
	case format.TagLookup:
		s, err := table.Resolve(c, "lookup value")
		return binel.Text(s), err
	case format.TagString:
		s, err := c.ReadVarString("string value")
		return binel.Text(s), err
	case format.TagRLE:
		s, err := c.ReadRLEString("rle value")
		return binel.Text(s), err
	default:
		return binel.Attr{}, errs.NewParseError(start, "attribute tag",
			fmt.Errorf("%w: 0x%02x", errs.ErrUnknownAttrTag, raw))
	}
}
