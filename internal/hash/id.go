// Package hash provides the digests used by the snapshot store: a fast
// xxHash64 checksum for integrity checks and a BLAKE3 content address.
package hash

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ChecksumString computes the xxHash64 of s without copying it.
func ChecksumString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// ContentID returns the hex BLAKE3-256 digest of data. Identical payloads get
// identical IDs.
func ContentID(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
