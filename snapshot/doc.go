// Package snapshot keeps an on-disk history of map saves.
//
// Every Save encodes the map, compresses it with the store's codec and writes
// it under the store directory as <id>.snap, where id is the BLAKE3 digest of
// the encoded map. Saving a map identical to the newest snapshot is a no-op,
// and older snapshots with the same content share one payload file.
//
// The list of snapshots lives in manifest.cbor, written with deterministic
// CBOR. Each entry records an xxHash64 checksum of the encoded map which Load
// verifies before decoding.
//
//	store, err := snapshot.Open(dir, snapshot.WithCompression(format.CompressionZstd), snapshot.WithKeep(20))
//	entry, err := store.Save(ctx, file)
//	file, err = store.Load(ctx, entry.ID)
//
// A Store is safe for concurrent use by multiple goroutines. Two Stores must
// not share a directory.
package snapshot
