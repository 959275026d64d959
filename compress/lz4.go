package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// LZ4 payload layout: uvarint original length, one mode byte, then either
// the raw bytes or an LZ4 block.
const (
	lz4ModeRaw   byte = 0
	lz4ModeBlock byte = 1
)

var errLZ4Corrupt = errors.New("lz4: corrupt payload")

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with the LZ4 block format.
//
// A block does not record its decoded size, so the payload is prefixed with
// it. Input that LZ4 cannot shrink is stored raw.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a length-prefixed LZ4 payload.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	prefix := binary.AppendUvarint(nil, uint64(len(data)))
	dst := make([]byte, len(prefix)+1+lz4.CompressBlockBound(len(data)))
	copy(dst, prefix)
	body := dst[len(prefix)+1:]

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, body)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || n >= len(data) {
		dst[len(prefix)] = lz4ModeRaw
		n = copy(body, data)
	} else {
		dst[len(prefix)] = lz4ModeBlock
	}

	return dst[:len(prefix)+1+n], nil
}

// Decompress restores a payload produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, k := binary.Uvarint(data)
	if k <= 0 || k >= len(data) {
		return nil, errLZ4Corrupt
	}
	if size > MaxDecodedSize {
		return nil, ErrTooLarge
	}
	mode, body := data[k], data[k+1:]

	switch mode {
	case lz4ModeRaw:
		if uint64(len(body)) != size {
			return nil, errLZ4Corrupt
		}

		return append([]byte(nil), body...), nil
	case lz4ModeBlock:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(n) != size {
			return nil, errLZ4Corrupt
		}

		return out, nil
	default:
		return nil, errLZ4Corrupt
	}
}
