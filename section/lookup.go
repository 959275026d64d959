package section

import (
	"fmt"

	"github.com/rhelmot/arborio-sub001/encoding"
	"github.com/rhelmot/arborio-sub001/errs"
)

// LookupSection is the string table referenced by element names, attribute
// keys and lookup-tagged attribute values.
type LookupSection struct {
	Strings []string
}

// Parse reads a u16 count followed by that many varstrings.
func (l *LookupSection) Parse(c *encoding.Cursor) error {
	count, err := c.ReadUint16("lookup count")
	if err != nil {
		return err
	}

	// Each entry takes at least one byte; reject counts the input cannot hold
	// before allocating.
	if int(count) > c.Remaining() {
		return c.Fail("lookup count", errs.ErrTruncated)
	}

	l.Strings = make([]string, count)
	for i := range l.Strings {
		s, err := c.ReadVarString("lookup entry")
		if err != nil {
			return err
		}
		l.Strings[i] = s
	}

	return nil
}

// Write appends the table. It fails if the table cannot be indexed by u16.
func (l *LookupSection) Write(w *encoding.Writer) error {
	if len(l.Strings) > MaxLookupEntries {
		return fmt.Errorf("%w: %d entries", errs.ErrLookupTableTooLarge, len(l.Strings))
	}

	w.WriteUint16(uint16(len(l.Strings))) //nolint:gosec
	for _, s := range l.Strings {
		w.WriteVarString(s)
	}

	return nil
}

// Resolve returns the string at index, failing with a ParseError positioned
// at the index field when it is out of range.
func (l *LookupSection) Resolve(c *encoding.Cursor, context string) (string, error) {
	start := c.Offset()
	idx, err := c.ReadUint16(context)
	if err != nil {
		return "", err
	}
	if int(idx) >= len(l.Strings) {
		return "", errs.NewParseError(start, context,
			fmt.Errorf("%w: %d >= %d", errs.ErrLookupIndexOutOfRange, idx, len(l.Strings)))
	}

	return l.Strings[idx], nil
}
