package encoding

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/rhelmot/arborio-sub001/endian"
	"github.com/rhelmot/arborio-sub001/errs"
)

// Cursor reads map fields sequentially from a byte slice.
//
// Each Read method takes a context string naming the field being read; it is
// copied into the *errs.ParseError returned on failure.
//
// Note: Cursor is NOT thread-safe.
type Cursor struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewCursor returns a Cursor positioned at the start of data.
func NewCursor(data []byte, engine endian.EndianEngine) *Cursor {
	return &Cursor{data: data, engine: engine}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

// Fail builds a ParseError at the current offset.
func (c *Cursor) Fail(context string, err error) error {
	return errs.NewParseError(c.off, context, err)
}

func (c *Cursor) take(n int, context string) ([]byte, error) {
	if n < 0 {
		return nil, c.Fail(context, errs.ErrNegativeLength)
	}
	if n > c.Remaining() {
		return nil, c.Fail(context, errs.ErrTruncated)
	}
	b := c.data[c.off : c.off+n]
	c.off += n

	return b, nil
}

// ReadUint8 reads one byte.
func (c *Cursor) ReadUint8(context string) (uint8, error) {
	b, err := c.take(1, context)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (c *Cursor) ReadUint16(context string) (uint16, error) {
	b, err := c.take(2, context)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint16(b), nil
}

// ReadInt16 reads a signed 16-bit integer.
func (c *Cursor) ReadInt16(context string) (int16, error) {
	v, err := c.ReadUint16(context)
	return int16(v), err //nolint:gosec
}

// ReadUint32 reads an unsigned 32-bit integer.
func (c *Cursor) ReadUint32(context string) (uint32, error) {
	b, err := c.take(4, context)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint32(b), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (c *Cursor) ReadInt32(context string) (int32, error) {
	v, err := c.ReadUint32(context)
	return int32(v), err //nolint:gosec
}

// ReadFloat32 reads an IEEE-754 single precision float, preserving its bits.
func (c *Cursor) ReadFloat32(context string) (float32, error) {
	b, err := c.take(4, context)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(c.engine.Uint32(b)), nil
}

// ReadUvarint reads a LEB128 unsigned varint.
func (c *Cursor) ReadUvarint(context string) (uint64, error) {
	v, n := binary.Uvarint(c.data[c.off:])
	switch {
	case n == 0:
		return 0, c.Fail(context, errs.ErrTruncated)
	case n < 0:
		return 0, c.Fail(context, errs.ErrVarintOverflow)
	}
	c.off += n

	return v, nil
}

// ReadBytes returns the next n bytes without copying.
func (c *Cursor) ReadBytes(n int, context string) ([]byte, error) {
	return c.take(n, context)
}

// ReadVarString reads a uvarint length followed by that many UTF-8 bytes.
func (c *Cursor) ReadVarString(context string) (string, error) {
	start := c.off
	n, err := c.ReadUvarint(context)
	if err != nil {
		return "", err
	}
	if n > uint64(c.Remaining()) {
		return "", c.Fail(context, errs.ErrTruncated)
	}
	b, _ := c.take(int(n), context) //nolint:gosec
	if !utf8.Valid(b) {
		return "", errs.NewParseError(start, context, errs.ErrInvalidUTF8)
	}

	return string(b), nil
}

// ReadRLEString reads an i16 byte length followed by (count, byte) pairs and
// expands them, reading each byte as a Latin-1 character. An odd trailing
// byte is not part of any pair and is left unread.
func (c *Cursor) ReadRLEString(context string) (string, error) {
	start := c.off
	n, err := c.ReadInt16(context)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", errs.NewParseError(start, context, errs.ErrNegativeLength)
	}
	payload, err := c.take(int(n)/2*2, context)
	if err != nil {
		return "", err
	}

	return DecodeRLE(payload), nil
}
