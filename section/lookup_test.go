package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhelmot/arborio-sub001/encoding"
	"github.com/rhelmot/arborio-sub001/endian"
	"github.com/rhelmot/arborio-sub001/errs"
)

func TestLookupSection_WriteParse(t *testing.T) {
	w := encoding.NewWriter(endian.MapEngine())
	defer w.Release()

	l := LookupSection{Strings: []string{"Map", "Width", "", "a-00"}}
	require.NoError(t, l.Write(w))
	require.Equal(t, []byte{0x04, 0x00, 0x03, 'M', 'a', 'p'}, w.Bytes()[:6])

	var got LookupSection
	require.NoError(t, got.Parse(cursor(w.Bytes())))
	require.Equal(t, l.Strings, got.Strings)
}

func TestLookupSection_Empty(t *testing.T) {
	w := encoding.NewWriter(endian.MapEngine())
	defer w.Release()

	var l LookupSection
	require.NoError(t, l.Write(w))
	require.Equal(t, []byte{0x00, 0x00}, w.Bytes())

	var got LookupSection
	require.NoError(t, got.Parse(cursor(w.Bytes())))
	require.Empty(t, got.Strings)
}

func TestLookupSection_TooLarge(t *testing.T) {
	w := encoding.NewWriter(endian.MapEngine())
	defer w.Release()

	l := LookupSection{Strings: make([]string, MaxLookupEntries+1)}
	require.ErrorIs(t, l.Write(w), errs.ErrLookupTableTooLarge)
}

func TestLookupSection_ParseErrors(t *testing.T) {
	t.Run("count larger than input", func(t *testing.T) {
		var l LookupSection
		err := l.Parse(cursor([]byte{0xFF, 0xFF, 0x00}))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("truncated entry", func(t *testing.T) {
		var l LookupSection
		err := l.Parse(cursor([]byte{0x01, 0x00, 0x05, 'a'}))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("missing count", func(t *testing.T) {
		var l LookupSection
		err := l.Parse(cursor([]byte{0x01}))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}

func TestLookupSection_Resolve(t *testing.T) {
	l := LookupSection{Strings: []string{"Map", "Width"}}

	s, err := l.Resolve(cursor([]byte{0x01, 0x00}), "name")
	require.NoError(t, err)
	require.Equal(t, "Width", s)

	_, err = l.Resolve(cursor([]byte{0x02, 0x00}), "name")
	require.ErrorIs(t, err, errs.ErrLookupIndexOutOfRange)

	var pe *errs.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 0, pe.Offset)

	_, err = l.Resolve(cursor([]byte{0x02}), "name")
	require.ErrorIs(t, err, errs.ErrTruncated)
}
