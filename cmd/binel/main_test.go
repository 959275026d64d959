package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	arborio "github.com/rhelmot/arborio-sub001"
	"github.com/rhelmot/arborio-sub001/binel"
)

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("ARBORIO_CONFIG", "")

	dir := t.TempDir()
	config := filepath.Join(dir, "arborio.yaml")
	body := "log_level: warn\nsnapshot:\n  dir: " + filepath.Join(dir, "snaps") + "\n  compression: s2\n  keep: 0\n"
	require.NoError(t, os.WriteFile(config, []byte(body), 0o600))

	return &harness{t: t, dir: dir, config: config}
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

// run invokes the command with the harness config and returns stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"--config", h.config}, args...), &stdout, &stderr)

	return stdout.String(), err
}

func (h *harness) writeMap(name string, rooms ...string) string {
	h.t.Helper()
	root := arborio.NewElement("Map")
	levels := arborio.NewElement("levels")
	for _, r := range rooms {
		level := arborio.NewElement("level")
		level.SetAttr("name", binel.Text(r))
		level.SetAttr("x", binel.Int(-1200))
		level.SetAttr("musicLayer1", binel.Bool(true))
		level.SetAttr("cameraOffsetX", binel.Float(0.5))
		solids := arborio.NewElement("solids")
		solids.SetText(strings.Repeat("0", 40) + "\n" + strings.Repeat("1", 40))
		level.Insert(solids)
		levels.Insert(level)
	}
	root.Insert(levels)

	path := h.path(name)
	require.NoError(h.t, arborio.WriteFile(path, binel.NewFile("Celeste/"+name, root)))

	return path
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), nil, &stdout, &stderr)
	require.ErrorIs(t, err, errUsage)
	require.Contains(t, stderr.String(), "Commands:")

	h := newHarness(t)
	_, err = h.run("frobnicate")
	require.ErrorIs(t, err, errUsage)

	out, err := h.run("help")
	require.NoError(t, err)
	require.Contains(t, out, "snapshot restore")
}

func TestRun_DumpBuild(t *testing.T) {
	h := newHarness(t)
	bin := h.writeMap("1-ForsakenCity.bin", "a-00", "a-01")

	out, err := h.run("dump", bin)
	require.NoError(t, err)
	require.Contains(t, out, "package: Celeste/1-ForsakenCity.bin")
	require.Contains(t, out, "a-01")

	yamlPath := h.path("map.yaml")
	_, err = h.run("dump", bin, "-o", yamlPath)
	require.NoError(t, err)

	rebuilt := h.path("rebuilt.bin")
	_, err = h.run("build", yamlPath, "-o", rebuilt)
	require.NoError(t, err)

	want, err := os.ReadFile(bin)
	require.NoError(t, err)
	got, err := os.ReadFile(rebuilt)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = h.run("build", yamlPath)
	require.Error(t, err)
}

func TestRun_Stats(t *testing.T) {
	h := newHarness(t)
	bin := h.writeMap("map.bin", "a-00")

	out, err := h.run("stats", bin)
	require.NoError(t, err)
	require.Contains(t, out, "elements:       4")
	require.Contains(t, out, "max depth:      4")
	require.Contains(t, out, "Float32:")

	_, err = h.run("stats")
	require.Error(t, err)
}

func TestRun_Verify(t *testing.T) {
	h := newHarness(t)
	bin := h.writeMap("map.bin", "a-00", "b-00")

	out, err := h.run("verify", bin)
	require.NoError(t, err)
	require.Contains(t, out, "byte-identical: yes")

	bad := h.path("bad.bin")
	require.NoError(t, os.WriteFile(bad, []byte("\x0bCELESTE MAP\x00\x01"), 0o600))
	_, err = h.run("verify", bad)
	require.Error(t, err)
}

func TestRun_Snapshot(t *testing.T) {
	h := newHarness(t)
	first := h.writeMap("first.bin", "a-00")
	second := h.writeMap("second.bin", "a-00", "a-01")

	idOut, err := h.run("snapshot", "save", first)
	require.NoError(t, err)
	id := strings.TrimSpace(idOut)
	require.Len(t, id, 64)

	_, err = h.run("snapshot", "save", second)
	require.NoError(t, err)

	list, err := h.run("snapshot", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(list), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[2], id[:12])
	require.Contains(t, lines[2], "S2")

	restored := h.path("restored.bin")
	_, err = h.run("snapshot", "restore", id[:16], "-o", restored)
	require.NoError(t, err)
	want, err := os.ReadFile(first)
	require.NoError(t, err)
	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, want, got)

	out, err := h.run("snapshot", "prune", "--keep", "1")
	require.NoError(t, err)
	require.Contains(t, out, "removed 1 snapshot(s)")

	_, err = h.run("snapshot", "prune")
	require.Error(t, err)
	_, err = h.run("snapshot", "restore", id, "-o", restored)
	require.Error(t, err)
	_, err = h.run("snapshot", "rewind")
	require.Error(t, err)

	// --dir overrides the configured directory
	other := h.path("other-snaps")
	_, err = h.run("snapshot", "save", "--dir", other, first)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(other, id+".snap"))
}
