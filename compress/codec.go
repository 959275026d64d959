package compress

import (
	"errors"
	"fmt"

	"github.com/rhelmot/arborio-sub001/errs"
	"github.com/rhelmot/arborio-sub001/format"
)

// MaxDecodedSize bounds the output of Decompress.
const MaxDecodedSize = 256 << 20

// ErrTooLarge is returned when a payload would decompress beyond MaxDecodedSize.
var ErrTooLarge = errors.New("decompressed payload exceeds size limit")

// Compressor compresses an encoded map.
type Compressor interface {
	// Compress returns the compressed form of data. The returned slice is
	// owned by the caller; data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original bytes, or an error if data is corrupt
	// or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// ParseCodec resolves a codec by name, e.g. "zstd". Names are matched case
// insensitively and the empty name selects no compression.
//
// Returns:
//   - format.CompressionType: the parsed type
//   - Codec: its implementation
//   - error: errs.ErrInvalidCompression for an unknown name
func ParseCodec(name string) (format.CompressionType, Codec, error) {
	ct, ok := format.ParseCompression(name)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
	codec, err := GetCodec(ct)

	return ct, codec, err
}

// Ratio returns compressed/original, or 0 when original is zero.
func Ratio(original, compressed int) float64 {
	if original == 0 {
		return 0
	}

	return float64(compressed) / float64(original)
}
