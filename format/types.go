package format

import "strings"

type (
	AttrTag         uint8
	CompressionType uint8
)

// Attribute value tags as they appear on the wire, one byte before each value.
const (
	TagBool    AttrTag = 0x00 // TagBool is a one byte boolean, nonzero is true.
	TagUint8   AttrTag = 0x01 // TagUint8 is an unsigned byte widened to Int.
	TagInt16   AttrTag = 0x02 // TagInt16 is a little-endian int16 widened to Int.
	TagInt32   AttrTag = 0x03 // TagInt32 is a little-endian int32.
	TagFloat32 AttrTag = 0x04 // TagFloat32 is a little-endian IEEE-754 float32.
	TagLookup  AttrTag = 0x05 // TagLookup is a u16 index into the string lookup table.
	TagString  AttrTag = 0x06 // TagString is a varint length-prefixed UTF-8 string.
	TagRLE     AttrTag = 0x07 // TagRLE is a run-length encoded string.

	MaxAttrTag = TagRLE
)

// Compression applied to stored snapshot payloads. The map format itself is
// never compressed.
const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Valid reports whether t is one of the eight known tags.
func (t AttrTag) Valid() bool {
	return t <= MaxAttrTag
}

func (t AttrTag) String() string {
	switch t {
	case TagBool:
		return "Bool"
	case TagUint8:
		return "Uint8"
	case TagInt16:
		return "Int16"
	case TagInt32:
		return "Int32"
	case TagFloat32:
		return "Float32"
	case TagLookup:
		return "Lookup"
	case TagString:
		return "String"
	case TagRLE:
		return "RLE"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-insensitive name ("none", "zstd", "s2", "lz4")
// to its CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
