// Package endian provides the byte order used by the map format.
//
// Every fixed-width field of a map file (lookup indices, counts, int16/int32
// and float32 attribute values, RLE lengths) is little-endian. The decoder and
// encoder take the byte order through the EndianEngine interface rather than
// calling binary.LittleEndian directly, so that the same cursor and append
// helpers serve both directions:
//
//	engine := endian.MapEngine()
//	buf = engine.AppendUint16(buf, index)
//	index = engine.Uint16(buf[off:])
//
// # Thread Safety
//
// The returned EndianEngine is immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// MapEngine returns the little-endian engine fixed by the map format.
func MapEngine() EndianEngine {
	return binary.LittleEndian
}
