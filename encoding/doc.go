// Package encoding provides the primitive field codecs of the map format.
//
// A map file is built from a handful of field shapes, all little-endian:
//
//	u8, u16, i16, i32, f32      fixed-width integers and floats
//	varstring                   LEB128 uvarint byte length + UTF-8 bytes
//	RLE string                  i16 byte length + (count u8, byte u8) pairs
//
// Writer appends these shapes to a pooled buffer and Cursor reads them back
// from an immutable byte slice. Cursor never panics on malformed input: every
// read is bounds-checked and failures are returned as *errs.ParseError values
// carrying the offset where the read started.
//
// # Usage
//
//	w := encoding.NewWriter(endian.MapEngine())
//	defer w.Release()
//	w.WriteVarString("CELESTE MAP")
//	w.WriteUint16(3)
//
//	c := encoding.NewCursor(w.Bytes(), endian.MapEngine())
//	header, err := c.ReadVarString("header")
//	count, err := c.ReadUint16("lookup count")
//
// The package knows nothing about elements or attribute tags; those are
// assembled by the mapfile package.
package encoding
