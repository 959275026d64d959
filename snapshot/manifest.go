package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/rhelmot/arborio-sub001/errs"
	"github.com/rhelmot/arborio-sub001/format"
)

const (
	manifestName    = "manifest.cbor"
	manifestVersion = 1
	payloadExt      = ".snap"
)

// Entry describes one stored snapshot.
type Entry struct {
	// ID is the hex BLAKE3 digest of the encoded map.
	ID string `cbor:"id"`
	// Package is the map's package name at save time.
	Package string `cbor:"package"`
	// Created is when the snapshot was taken, in UTC.
	Created time.Time `cbor:"created"`
	// Size is the length of the encoded map.
	Size int `cbor:"size"`
	// StoredSize is the length of the payload file.
	StoredSize int `cbor:"stored_size"`
	// Compression is the codec of the payload file.
	Compression format.CompressionType `cbor:"compression"`
	// Checksum is the xxHash64 of the encoded map.
	Checksum uint64 `cbor:"checksum"`
}

type manifest struct {
	Version int     `cbor:"version"`
	Entries []Entry `cbor:"entries"`
}

// manifestEncMode uses Core Deterministic Encoding so an unchanged history
// always serializes to the same bytes.
var manifestEncMode cbor.EncMode

var manifestDecMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	manifestEncMode, err = encOptions.EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	manifestDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

func readManifest(dir string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := manifestDecMode.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidManifestData, err)
	}
	if m.Version != manifestVersion {
		return nil, fmt.Errorf("%w: version %d", errs.ErrInvalidManifestData, m.Version)
	}

	return m.Entries, nil
}

func writeManifest(dir string, entries []Entry) error {
	data, err := manifestEncMode.Marshal(manifest{Version: manifestVersion, Entries: entries})
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	return writeAtomic(dir, manifestName, data)
}

// writeAtomic replaces dir/name through a temporary file and a rename.
func writeAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, name+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)

		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}
