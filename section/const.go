package section

import "math"

const (
	// Magic is the header string. On disk it is written as a varstring, i.e.
	// preceded by its length byte 0x0b.
	Magic = "CELESTE MAP"

	// MagicSize is the on-disk size of the header: length byte plus Magic.
	MagicSize = 1 + len(Magic)

	// MaxLookupEntries is the largest lookup table addressable by a u16 index.
	MaxLookupEntries = math.MaxUint16

	// MaxAttributes is the largest attribute count a u8 can carry.
	MaxAttributes = math.MaxUint8

	// MaxChildren is the largest child count a u16 can carry.
	MaxChildren = math.MaxUint16
)

// magicBytes is the exact 12-byte prefix of every map file.
var magicBytes = append([]byte{byte(len(Magic))}, Magic...)
