// Package config loads the settings of the binel command.
//
// Configuration comes from a single YAML file named by the --config flag or
// the ARBORIO_CONFIG environment variable. Without either, Default is used.
// Values in the file override the defaults field by field; ${VAR} and
// ${VAR:-default} references in paths are expanded from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rhelmot/arborio-sub001/format"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "ARBORIO_CONFIG"

// Config is the command configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Snapshot configures the autosave history.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// SnapshotConfig configures the snapshot store.
type SnapshotConfig struct {
	// Dir holds snapshot payloads and the manifest.
	// Default: ${HOME}/.cache/arborio/snapshots
	Dir string `yaml:"dir"`

	// Compression is none, zstd, s2 or lz4.
	// Default: zstd
	Compression string `yaml:"compression"`

	// Keep is how many snapshots to retain after each save; 0 keeps all.
	// Default: 20
	Keep int `yaml:"keep"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Snapshot: SnapshotConfig{
			Dir:         filepath.Join("${HOME}", ".cache", "arborio", "snapshots"),
			Compression: "zstd",
			Keep:        20,
		},
	}
}

// Load reads the file named by ARBORIO_CONFIG, or returns the expanded
// defaults when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		cfg := Default()
		cfg.expandVariables()

		return cfg, nil
	}

	return LoadFile(path)
}

// LoadFile reads path on top of Default and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Snapshot.Dir == "" {
		errs = append(errs, errors.New("snapshot.dir is required"))
	}
	if _, ok := format.ParseCompression(c.Snapshot.Compression); !ok {
		errs = append(errs, fmt.Errorf("snapshot.compression: unknown codec %q", c.Snapshot.Compression))
	}
	if c.Snapshot.Keep < 0 {
		errs = append(errs, fmt.Errorf("snapshot.keep must not be negative, got %d", c.Snapshot.Keep))
	}

	return errors.Join(errs...)
}

// SlogLevel returns LogLevel as a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}

	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level: unknown level %q", s)
	}
}

func (c *Config) expandVariables() {
	c.Snapshot.Dir = expandVars(c.Snapshot.Dir)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}

		return parts[2]
	})
}
