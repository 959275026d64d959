// Package compress provides the codecs used to store map snapshots.
//
// Encoded maps are dominated by tile grids and repeated entity names, so they
// compress well with any general-purpose algorithm. Each snapshot records the
// codec it was written with; the codec is chosen per store.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): payload stored as is
//   - Zstd (format.CompressionZstd): best ratio, the default for snapshots
//   - S2 (format.CompressionS2): fast with a reasonable ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	stored, err := codec.Compress(encoded)
//	encoded, err = codec.Decompress(stored)
//
// Every codec refuses to expand a payload beyond MaxDecodedSize, so a corrupt
// or hostile snapshot cannot exhaust memory.
//
// All codecs are stateless values and safe for concurrent use; zstd encoders
// and decoders are pooled internally.
package compress
