package encoding

import (
	"encoding/binary"
	"math"

	"github.com/rhelmot/arborio-sub001/endian"
	"github.com/rhelmot/arborio-sub001/internal/pool"
)

// Writer appends map fields to a pooled byte buffer.
//
// Note: Writer is NOT thread-safe. Call Release once the bytes have been
// copied out; the buffer goes back to the pool.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter returns a Writer backed by a buffer from the map buffer pool.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:    pool.GetMapBuffer(),
		engine: engine,
	}
}

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.B = append(w.buf.B, v)
}

// WriteUint16 appends an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// WriteInt16 appends a signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(v)) //nolint:gosec
}

// WriteInt32 appends a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
}

// WriteUint32 appends an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// WriteFloat32 appends v's IEEE-754 bits.
func (w *Writer) WriteFloat32(v float32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, math.Float32bits(v))
}

// WriteUvarint appends a LEB128 unsigned varint.
func (w *Writer) WriteUvarint(v uint64) {
	w.buf.B = binary.AppendUvarint(w.buf.B, v)
}

// WriteVarString appends s prefixed by its byte length as a uvarint.
func (w *Writer) WriteVarString(s string) {
	w.buf.Grow(VarStringSize(s))
	w.WriteUvarint(uint64(len(s)))
	w.buf.B = append(w.buf.B, s...)
}

// WriteRLE appends the run-length encoding of s without a length prefix.
func (w *Writer) WriteRLE(s string) {
	w.buf.B = AppendRLE(w.buf.B, s)
}

// Grow ensures room for another n bytes.
func (w *Writer) Grow(n int) {
	if n > 0 {
		w.buf.Grow(n)
	}
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.MustWrite(b)
}

// Bytes returns the encoded data. The slice is only valid until Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Release returns the buffer to the pool. The Writer must not be used after.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutMapBuffer(w.buf)
		w.buf = nil
	}
}
