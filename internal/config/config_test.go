package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arborio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "zstd", cfg.Snapshot.Compression)
	require.Equal(t, 20, cfg.Snapshot.Keep)
	require.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", "/home/madeline")

	t.Run("overrides merge onto defaults", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
snapshot:
  compression: lz4
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, slog.LevelDebug, cfg.SlogLevel())
		require.Equal(t, "lz4", cfg.Snapshot.Compression)
		require.Equal(t, 20, cfg.Snapshot.Keep)
		require.Equal(t, "/home/madeline/.cache/arborio/snapshots", cfg.Snapshot.Dir)
	})

	t.Run("variable default", func(t *testing.T) {
		path := writeConfig(t, `
snapshot:
  dir: ${ARBORIO_TEST_UNSET:-/tmp/snaps}/maps
  keep: 0
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, "/tmp/snaps/maps", cfg.Snapshot.Dir)
		require.Equal(t, 0, cfg.Snapshot.Keep)
	})

	t.Run("invalid values are all reported", func(t *testing.T) {
		path := writeConfig(t, `
log_level: loud
snapshot:
  compression: brotli
  keep: -2
`)
		_, err := LoadFile(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "log_level")
		require.Contains(t, err.Error(), "snapshot.compression")
		require.Contains(t, err.Error(), "snapshot.keep")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "snapshot: [unclosed")
		_, err := LoadFile(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoad(t *testing.T) {
	t.Run("env unset uses defaults", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		t.Setenv("HOME", "/home/theo")
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "/home/theo/.cache/arborio/snapshots", cfg.Snapshot.Dir)
	})

	t.Run("env names file", func(t *testing.T) {
		t.Setenv(EnvVar, writeConfig(t, "log_level: error\n"))
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, slog.LevelError, cfg.SlogLevel())
	})
}
