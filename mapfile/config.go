package mapfile

import (
	"fmt"
	"log/slog"

	"github.com/rhelmot/arborio-sub001/endian"
	"github.com/rhelmot/arborio-sub001/internal/options"
)

// DefaultMaxDepth bounds element nesting accepted by a Decoder.
const DefaultMaxDepth = 512

// Config holds the settings shared by Encoder and Decoder.
type Config struct {
	logger            *slog.Logger
	maxDepth          int
	initialBufferSize int
	engine            endian.EndianEngine
}

// Option configures an Encoder or a Decoder.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
		engine:   endian.MapEngine(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Logger returns the configured logger.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// MaxDepth returns the deepest element nesting a Decoder accepts.
func (c *Config) MaxDepth() int {
	return c.maxDepth
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMaxDepth bounds how deeply elements may nest before decoding fails
// with errs.ErrMaxDepthExceeded. The root element is at depth 1.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithInitialBufferSize reserves size bytes in the output buffer before
// encoding. Callers that know the approximate output size avoid regrowth.
func WithInitialBufferSize(size int) Option {
	return options.New(func(c *Config) error {
		if size < 0 {
			return fmt.Errorf("initial buffer size must not be negative, got %d", size)
		}
		c.initialBufferSize = size

		return nil
	})
}
