package section

import (
	"bytes"

	"github.com/rhelmot/arborio-sub001/encoding"
	"github.com/rhelmot/arborio-sub001/errs"
)

// Header is the file preamble: the magic string and the package name.
type Header struct {
	// Package identifies the map, e.g. "Celeste/1-ForsakenCity".
	Package string
}

// Parse reads the magic and package name from c.
func (h *Header) Parse(c *encoding.Cursor) error {
	start := c.Offset()
	n := min(MagicSize, c.Remaining())
	magic, err := c.ReadBytes(n, "header")
	if err != nil {
		return err
	}
	if !bytes.Equal(magic, magicBytes[:n]) {
		return errs.NewParseError(start, "header", errs.ErrInvalidHeader)
	}
	if n < MagicSize {
		return c.Fail("header", errs.ErrTruncated)
	}

	pkg, err := c.ReadVarString("package")
	if err != nil {
		return err
	}
	h.Package = pkg

	return nil
}

// Write appends the magic and package name to w.
func (h *Header) Write(w *encoding.Writer) {
	w.WriteBytes(magicBytes)
	w.WriteVarString(h.Package)
}

// HasMagic reports whether data starts with the map header.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, magicBytes)
}
