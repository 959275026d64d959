package arborio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhelmot/arborio-sub001/binel"
	"github.com/rhelmot/arborio-sub001/errs"
	"github.com/rhelmot/arborio-sub001/mapfile"
)

func sampleFile() *binel.File {
	root := NewElement("Map")
	root.SetAttr("Width", binel.Int(320))

	levels := NewElement("levels")
	for _, name := range []string{"a-00", "a-01"} {
		room := NewElement("level")
		room.SetAttr("name", binel.Text(name))
		room.SetAttr("dark", binel.Bool(false))
		solids := NewElement("solids")
		solids.SetText("00000000\n0000000011")
		room.Insert(solids)
		levels.Insert(room)
	}
	root.Insert(levels)
	root.Insert(NewElement("Style"))

	return binel.NewFile("1-ForsakenCity", root)
}

func TestEncodeDecode(t *testing.T) {
	file := sampleFile()

	data, err := Encode(file)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "1-ForsakenCity", got.Package)
	require.True(t, binel.Equal(file.Root, got.Root), binel.Diff(file.Root, got.Root))
	require.Equal(t, []string{"levels", "Style"}, got.Root.ChildNames())

	require.Nil(t, got.Root.Nested("levels/level"), "two levels share the name")
	rooms := got.Root.OptionalChild("levels").Get("level")
	require.Len(t, rooms, 2)
	text, ok := rooms[1].OptionalChild("solids").Text()
	require.True(t, ok)
	require.Equal(t, "00000000\n0000000011", text)
}

func TestDecode_Options(t *testing.T) {
	data, err := Encode(sampleFile())
	require.NoError(t, err)

	_, err = Decode(data, mapfile.WithMaxDepth(2))
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)

	_, err = Decode(data, mapfile.WithMaxDepth(-1))
	require.Error(t, err)

	_, err = Encode(sampleFile(), mapfile.WithInitialBufferSize(-1))
	require.Error(t, err)
}

func TestDecode_RejectsBadHeader(t *testing.T) {
	_, err := Decode([]byte("\x0bCELESTE PAM\x00\x00\x00"))
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.bin")

	require.NoError(t, WriteFile(path, sampleFile()))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, binel.Diff(sampleFile().Root, got.Root))

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.bin"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt file names path", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.bin")
		require.NoError(t, os.WriteFile(bad, []byte("not a map"), 0o600))

		_, err := ReadFile(bad)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
		require.Contains(t, err.Error(), bad)
	})

	t.Run("encode failure writes nothing", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.bin")
		require.ErrorIs(t, WriteFile(out, nil), errs.ErrNilFile)
		_, err := os.Stat(out)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
