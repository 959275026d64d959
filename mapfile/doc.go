// Package mapfile reads and writes the binary map format.
//
// A map file is laid out as:
//
//	+--------------------+------------------+----------------+--------------+
//	| magic (12 bytes)   | package          | lookup table   | root element |
//	| "\x0bCELESTE MAP"  | uvarint + UTF-8  | u16 + strings  | recursive    |
//	+--------------------+------------------+----------------+--------------+
//
// An element is a u16 lookup index for its name, a u8 attribute count, the
// attributes, a u16 child count and the children. Each attribute is a u16
// lookup index for its key followed by a one-byte tag and the value. All
// multi-byte integers are little-endian.
//
// # Value encoding
//
// The Encoder always picks the narrowest form of a value:
//
//   - integers in 0..255 are written as u8, integers that fit an int16 as
//     i16, anything else as i32
//   - floats are always written as f32, bit for bit
//   - text already in the lookup table is written as a u16 reference;
//     otherwise it is run-length encoded when that is strictly shorter than
//     the raw bytes, and written as a length-prefixed string when it is not
//
// The Decoder accepts every tag regardless of which form the writer would have
// chosen, so files produced by other tools decode as long as they are well
// formed.
//
// # Usage
//
//	enc, _ := mapfile.NewEncoder()
//	data, err := enc.Encode(file)
//
//	dec, _ := mapfile.NewDecoder(mapfile.WithMaxDepth(256))
//	file, err := dec.Decode(data)
//
// Encoders and decoders hold only configuration and may be shared between
// goroutines.
package mapfile
