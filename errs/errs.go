// Package errs defines the sentinel errors returned by the map codec and the
// packages built on top of it.
//
// Decode failures are always wrapped in a *ParseError carrying the byte offset
// at which the problem was detected, so callers can test the failure class with
// errors.Is and still report where the input went wrong:
//
//	file, err := arborio.Decode(data)
//	if errors.Is(err, errs.ErrTruncated) {
//	    // short read
//	}
package errs

import (
	"errors"
	"fmt"
)

// Malformed input, reported by the decoder.
var (
	ErrInvalidHeader         = errors.New("invalid map header")
	ErrTruncated             = errors.New("unexpected end of input")
	ErrLookupIndexOutOfRange = errors.New("lookup index out of range")
	ErrInvalidUTF8           = errors.New("invalid UTF-8 string")
	ErrUnknownAttrTag        = errors.New("unknown attribute tag")
	ErrVarintOverflow        = errors.New("varint overflows 64 bits")
	ErrNegativeLength        = errors.New("negative length")
	ErrMaxDepthExceeded      = errors.New("element nesting exceeds maximum depth")
	ErrEmptyElementName      = errors.New("element name is empty")
)

// Writer-side failures. ErrMissingLookupEntry indicates an internal invariant
// violation: every name and key is always added to the lookup table.
var (
	ErrMissingLookupEntry  = errors.New("string missing from lookup table")
	ErrTooManyAttributes   = errors.New("element has more than 255 attributes")
	ErrTooManyChildren     = errors.New("element has more than 65535 children")
	ErrLookupTableTooLarge = errors.New("lookup table has more than 65535 entries")
	ErrNilFile             = errors.New("nil map file or root element")
	ErrInvalidAttrKind     = errors.New("attribute has no value kind")
)

// Snapshot store failures.
var (
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrChecksumMismatch    = errors.New("snapshot checksum mismatch")
	ErrInvalidCompression  = errors.New("invalid compression type")
	ErrInvalidManifestData = errors.New("invalid snapshot manifest")
)

// ParseError describes a decode failure at a byte offset of the input.
type ParseError struct {
	// Offset is the position in the input where decoding failed.
	Offset int
	// Context names what was being decoded, e.g. "attribute value".
	Context string
	// Err is the underlying sentinel error.
	Err error
}

// NewParseError returns a *ParseError wrapping err.
func NewParseError(offset int, context string, err error) *ParseError {
	return &ParseError{Offset: offset, Context: context, Err: err}
}

func (e *ParseError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("parse error at offset %d: %v", e.Offset, e.Err)
	}

	return fmt.Sprintf("parse error at offset %d (%s): %v", e.Offset, e.Context, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
