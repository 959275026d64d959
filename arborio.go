// Package arborio reads and writes Celeste binary map files.
//
// A map is a tree of named elements. Each element carries typed attributes
// (bool, int32, float32 or string) and an ordered list of children. The binary
// form stores every repeated name and string once in a lookup table and picks
// the narrowest encoding for each value, so the files stay small.
//
// # Basic Usage
//
// Building and writing a map:
//
//	root := arborio.NewElement("Map")
//	root.SetAttr("Width", binel.Int(320))
//
//	room := arborio.NewElement("Room")
//	room.SetAttr("Name", binel.Text("a-00"))
//	root.Insert(room)
//
//	err := arborio.WriteFile("1-ForsakenCity.bin", binel.NewFile("1-ForsakenCity", root))
//
// Reading it back:
//
//	file, err := arborio.ReadFile("1-ForsakenCity.bin")
//	for room := range file.Root.Children() {
//	    name, _ := room.Attributes["Name"].AsText()
//	    fmt.Println(name)
//	}
//
// # Package Structure
//
// This package wraps the most common calls. The tree model lives in binel,
// the codec with its options in mapfile, and the autosave history in snapshot.
package arborio

import (
	"fmt"
	"os"

	"github.com/rhelmot/arborio-sub001/binel"
	"github.com/rhelmot/arborio-sub001/mapfile"
)

// NewElement returns an empty element named name.
func NewElement(name string) *binel.Element {
	return binel.New(name)
}

// Decode parses a map file held in memory.
//
// Parameters:
//   - data: complete file contents
//   - opts: decoder options, e.g. mapfile.WithMaxDepth
//
// Returns:
//   - *binel.File: the decoded map
//   - error: an *errs.ParseError describing where the input is malformed
func Decode(data []byte, opts ...mapfile.Option) (*binel.File, error) {
	dec, err := mapfile.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// Encode serializes file.
//
// Parameters:
//   - file: the map to write; its Root must not be nil
//   - opts: encoder options, e.g. mapfile.WithInitialBufferSize
//
// Returns:
//   - []byte: the encoded file
//   - error: the tree cannot be represented, e.g. an element has more than
//     255 attributes
func Encode(file *binel.File, opts ...mapfile.Option) ([]byte, error) {
	enc, err := mapfile.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(file)
}

// ReadFile reads and decodes the map stored at path.
func ReadFile(path string, opts ...mapfile.Option) (*binel.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	file, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return file, nil
}

// WriteFile encodes file and writes it to path with mode 0644, replacing any
// existing file. Nothing is written if encoding fails.
func WriteFile(path string, file *binel.File, opts ...mapfile.Option) error {
	data, err := Encode(file, opts...)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}
