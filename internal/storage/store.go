// Package storage persists the todo.txt file. Every operation reads the file
// fresh, mutations rewrite it whole and atomically, and a SQLite index kept in
// a separate state directory serves read-only queries.
package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"

	"github.com/leeovery/jadwal/internal/storage/sqlite"
)

const defaultLockTimeout = 5 * time.Second

// Store reads and writes one todo.txt file.
type Store struct {
	path        string
	stateDir    string
	lockTimeout time.Duration
	logger      *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout sets how long to wait for another process to release the lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithLogger routes the store's debug trace to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStateDir sets the directory holding the lock file and the SQLite index.
func WithStateDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.stateDir = dir
		}
	}
}

// NewStore creates a Store for the todo file at path. The file does not need
// to exist yet.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("todo file path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving todo file path: %w", err)
	}

	s := &Store{
		path:        abs,
		lockTimeout: defaultLockTimeout,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stateDir == "" {
		s.stateDir = DefaultStateDir(abs)
	}
	return s, nil
}

// DefaultStateDir returns a per-file directory under the user cache dir. It is
// kept outside the synced repository so the lock and index are never committed.
func DefaultStateDir(todoPath string) string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	sum := sha256.Sum256([]byte(todoPath))
	return filepath.Join(base, "jadwal", fmt.Sprintf("%x", sum[:6]))
}

// Path returns the absolute path of the todo file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the non-blank lines of the todo file. A missing or unreadable
// file yields no lines: an empty list is a normal starting state.
func (s *Store) Load() []string {
	lines, _, err := s.read()
	if err != nil {
		s.logger.Warn("could not read todo file, treating it as empty", "path", s.path, "err", err)
		return nil
	}
	return lines
}

// Save replaces the todo file with lines in one step: readers see either the
// old content or the new, never a mix.
func (s *Store) Save(lines []string) error {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	_, statErr := os.Stat(s.path)
	if err := atomic.WriteFile(s.path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(s.path), err)
	}
	if errors.Is(statErr, fs.ErrNotExist) {
		if err := os.Chmod(s.path, 0644); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", filepath.Base(s.path), err)
		}
	}
	s.logger.Debug("write: saved todo file", "lines", len(lines))
	return nil
}

// Mutate runs fn on the current lines under an exclusive lock and saves the
// result when it differs. An error from fn aborts without writing. Unlike
// Load, a read failure other than a missing file aborts, so an unreadable file
// is never overwritten.
func (s *Store) Mutate(fn func(lines []string) ([]string, error)) error {
	return s.Exclusive(func() error {
		lines, _, err := s.read()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filepath.Base(s.path), err)
		}
		s.logger.Debug("read: loaded todo file", "lines", len(lines))

		modified, err := fn(slices.Clone(lines))
		if err != nil {
			return err
		}
		if slices.Equal(lines, modified) {
			s.logger.Debug("write: no changes, skipping")
			return nil
		}

		if err := s.Save(modified); err != nil {
			return err
		}
		s.refreshCache()
		return nil
	})
}

// Query runs fn against the SQLite index under a shared lock, rebuilding the
// index first if the file changed since it was built.
func (s *Store) Query(fn func(db *sql.DB) error) error {
	fl, err := s.lock(true)
	if err != nil {
		return err
	}
	defer s.unlock(fl, "shared")

	lines, raw, err := s.read()
	if err != nil {
		s.logger.Warn("could not read todo file, treating it as empty", "path", s.path, "err", err)
		lines, raw = nil, nil
	}

	cache, err := sqlite.EnsureFresh(s.cachePath(), lines, raw, s.logger)
	if err != nil {
		return fmt.Errorf("failed to ensure cache freshness: %w", err)
	}
	defer cache.Close()

	return fn(cache.DB())
}

// Exclusive runs fn while holding the exclusive lock, for operations such as
// a git pull that rewrite the file outside Mutate.
func (s *Store) Exclusive(fn func() error) error {
	fl, err := s.lock(false)
	if err != nil {
		return err
	}
	defer s.unlock(fl, "exclusive")
	return fn()
}

func (s *Store) lock(shared bool) (*flock.Flock, error) {
	kind := "exclusive"
	if shared {
		kind = "shared"
	}
	if err := os.MkdirAll(s.stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	fl := flock.New(filepath.Join(s.stateDir, "lock"))
	s.logger.Debug("lock: acquiring " + kind + " lock")

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	var locked bool
	var err error
	if shared {
		locked, err = fl.TryRLockContext(ctx, 10*time.Millisecond)
	} else {
		locked, err = fl.TryLockContext(ctx, 10*time.Millisecond)
	}
	if err != nil || !locked {
		return nil, fmt.Errorf("could not acquire lock on %s - another jadwal process may be running", filepath.Base(s.path))
	}
	s.logger.Debug("lock: " + kind + " lock acquired")
	return fl, nil
}

func (s *Store) unlock(fl *flock.Flock, kind string) {
	fl.Unlock()
	s.logger.Debug("lock: " + kind + " lock released")
}

// refreshCache rebuilds the index after a write. Failures only cost a rebuild
// on the next query, so they are logged and ignored.
func (s *Store) refreshCache() {
	lines, raw, err := s.read()
	if err != nil {
		s.logger.Warn("failed to re-read todo file for cache update", "err", err)
		return
	}
	cache, err := sqlite.EnsureFresh(s.cachePath(), lines, raw, s.logger)
	if err != nil {
		s.logger.Warn("failed to update cache", "err", err)
		return
	}
	cache.Close()
	s.logger.Debug("cache: rebuild complete")
}

func (s *Store) cachePath() string {
	return filepath.Join(s.stateDir, "cache.db")
}

// read returns the non-blank lines and the raw content. A missing file is
// not an error.
func (s *Store) read() ([]string, []byte, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return splitLines(raw), raw, nil
}

func splitLines(raw []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
