package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rhelmot/arborio-sub001/binel"
	"github.com/rhelmot/arborio-sub001/compress"
	"github.com/rhelmot/arborio-sub001/errs"
	"github.com/rhelmot/arborio-sub001/format"
	"github.com/rhelmot/arborio-sub001/internal/hash"
	"github.com/rhelmot/arborio-sub001/internal/options"
	"github.com/rhelmot/arborio-sub001/mapfile"
)

// Store is a directory of map snapshots.
type Store struct {
	mu sync.Mutex

	dir         string
	compression format.CompressionType
	codec       compress.Codec
	keep        int
	logger      *slog.Logger
	now         func() time.Time

	enc *mapfile.Encoder
	dec *mapfile.Decoder

	entries []Entry // oldest first
}

// Option configures a Store.
type Option = options.Option[*Store]

// WithCompression selects the codec for new snapshots. Existing snapshots
// keep the codec they were written with.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(s *Store) error {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		s.compression = ct
		s.codec = codec

		return nil
	})
}

// WithKeep prunes the history to the newest n snapshots after every save.
// Zero keeps everything.
func WithKeep(n int) Option {
	return options.New(func(s *Store) error {
		if n < 0 {
			return fmt.Errorf("keep must not be negative, got %d", n)
		}
		s.keep = n

		return nil
	})
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// WithClock overrides time.Now for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return options.NoError(func(s *Store) {
		if now != nil {
			s.now = now
		}
	})
}

// Open opens the store in dir, creating the directory if needed.
//
// Parameters:
//   - dir: store directory
//   - opts: WithCompression (default zstd), WithKeep, WithLogger, WithClock
//
// Returns:
//   - *Store: the opened store
//   - error: invalid option, unreadable directory or corrupt manifest
func Open(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		dir:         dir,
		compression: format.CompressionZstd,
		codec:       compress.NewZstdCompressor(),
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	var err error
	if s.enc, err = mapfile.NewEncoder(mapfile.WithLogger(s.logger)); err != nil {
		return nil, err
	}
	if s.dec, err = mapfile.NewDecoder(mapfile.WithLogger(s.logger)); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	if s.entries, err = readManifest(dir); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	s.logger.Debug("opened snapshot store", "dir", dir, "entries", len(s.entries))

	return s, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save stores a snapshot of file and returns its entry.
//
// If file encodes to the same bytes as the newest snapshot, that entry is
// returned and nothing is written.
func (s *Store) Save(ctx context.Context, file *binel.File) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	data, err := s.enc.Encode(file)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	id := hash.ContentID(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.entries); n > 0 && s.entries[n-1].ID == id {
		s.logger.Debug("snapshot unchanged", "id", id)
		return s.entries[n-1], nil
	}

	entry := Entry{
		ID:       id,
		Package:  file.Package,
		Created:  s.now().UTC().Round(0),
		Size:     len(data),
		Checksum: hash.Checksum(data),
	}

	if prev, ok := s.findLocked(id); ok {
		// payload already on disk, possibly with another codec
		entry.Compression = prev.Compression
		entry.StoredSize = prev.StoredSize
	} else {
		stored, err := s.codec.Compress(data)
		if err != nil {
			return Entry{}, fmt.Errorf("compressing snapshot: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return Entry{}, err
		}
		if err := writeAtomic(s.dir, id+payloadExt, stored); err != nil {
			return Entry{}, fmt.Errorf("writing snapshot payload: %w", err)
		}
		entry.Compression = s.compression
		entry.StoredSize = len(stored)
	}

	s.entries = append(s.entries, entry)
	if err := writeManifest(s.dir, s.entries); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return Entry{}, err
	}

	s.logger.Info("saved snapshot",
		"id", shortID(id), "package", entry.Package, "size", entry.Size,
		"stored", entry.StoredSize, "compression", entry.Compression)

	if s.keep > 0 {
		if _, err := s.pruneLocked(s.keep); err != nil {
			return entry, err
		}
	}

	return entry, nil
}

// List returns all snapshots, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.entries)
	slices.Reverse(out)

	return out
}

// Latest returns the newest snapshot.
func (s *Store) Latest() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Entry{}, false
	}

	return s.entries[len(s.entries)-1], true
}

// Resolve finds the snapshot whose ID is id or starts with id. A prefix
// matching two different snapshots is an error.
func (s *Store) Resolve(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolveLocked(id)
}

// Load reads, verifies and decodes the snapshot named by id or an
// unambiguous prefix of it.
func (s *Store) Load(ctx context.Context, id string) (*binel.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	entry, err := s.resolveLocked(id)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	stored, err := os.ReadFile(s.payloadPath(entry.ID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: payload of %s is missing", errs.ErrSnapshotNotFound, shortID(entry.ID))
	}
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(entry.Compression)
	if err != nil {
		return nil, err
	}
	data, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", shortID(entry.ID), err)
	}
	if len(data) != entry.Size || hash.Checksum(data) != entry.Checksum {
		return nil, fmt.Errorf("%w: %s", errs.ErrChecksumMismatch, shortID(entry.ID))
	}

	return s.dec.Decode(data)
}

// Prune keeps the newest keep snapshots and deletes the rest, including
// payload files no remaining snapshot refers to.
//
// Returns:
//   - int: number of entries removed
//   - error: invalid keep or I/O failure
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative, got %d", keep)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pruneLocked(keep)
}

func (s *Store) pruneLocked(keep int) (int, error) {
	drop := len(s.entries) - keep
	if drop <= 0 {
		return 0, nil
	}

	removed := s.entries[:drop]
	kept := slices.Clone(s.entries[drop:])
	if err := writeManifest(s.dir, kept); err != nil {
		return 0, err
	}
	s.entries = kept

	live := make(map[string]bool, len(kept))
	for _, e := range kept {
		live[e.ID] = true
	}
	var errList []error
	for _, e := range removed {
		if live[e.ID] {
			continue
		}
		live[e.ID] = true // delete once
		if err := os.Remove(s.payloadPath(e.ID)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errList = append(errList, err)
		}
	}

	s.logger.Debug("pruned snapshots", "removed", drop, "kept", len(kept))

	return drop, errors.Join(errList...)
}

func (s *Store) findLocked(id string) (Entry, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].ID == id {
			return s.entries[i], true
		}
	}

	return Entry{}, false
}

func (s *Store) resolveLocked(id string) (Entry, error) {
	if id == "" {
		return Entry{}, fmt.Errorf("%w: empty id", errs.ErrSnapshotNotFound)
	}
	if e, ok := s.findLocked(id); ok {
		return e, nil
	}

	var match Entry
	found := false
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if !strings.HasPrefix(e.ID, id) {
			continue
		}
		if found && e.ID != match.ID {
			return Entry{}, fmt.Errorf("snapshot id prefix %q is ambiguous", id)
		}
		if !found {
			match, found = e, true
		}
	}
	if !found {
		return Entry{}, fmt.Errorf("%w: %s", errs.ErrSnapshotNotFound, id)
	}

	return match, nil
}

func (s *Store) payloadPath(id string) string {
	return filepath.Join(s.dir, id+payloadExt)
}

// shortID abbreviates an ID for logs and messages.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}

	return id
}
