// Package sqlite provides an auto-rebuilding SQLite index over the todo.txt
// lines. The index is expendable and always rebuildable from the file, which
// stays the only source of truth.
package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/leeovery/jadwal/internal/task"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
  position INTEGER PRIMARY KEY,
  line TEXT NOT NULL,
  done INTEGER NOT NULL DEFAULT 0,
  priority TEXT,
  creation_date TEXT,
  completion_date TEXT,
  description TEXT NOT NULL DEFAULT '',
  project TEXT,
  context TEXT,
  special_tag TEXT
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project);
CREATE INDEX IF NOT EXISTS idx_tasks_context ON tasks(context);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
`

const hashKey = "todo_hash"

// Cache wraps the SQLite database holding the parsed lines.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// NewCache opens or creates a cache at dbPath and initializes the schema.
func NewCache(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db, dbPath: dbPath}, nil
}

// DB returns the underlying *sql.DB for direct queries.
func (c *Cache) DB() *sql.DB {
	return c.db
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Rebuild replaces the cached rows with lines and records the hash of the raw
// file content, in a single transaction.
func (c *Cache) Rebuild(lines []string, rawContent []byte) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks
	  (position, line, done, priority, creation_date, completion_date, description, project, context, special_tag)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		t := task.Parse(line)
		_, err := stmt.Exec(
			i,
			line,
			t.Done,
			nullString(t.Priority),
			nullString(t.CreationDate),
			nullString(t.CompletionDate),
			t.Description,
			nullString(t.Project),
			nullString(t.Context),
			nullString(t.SpecialTag),
		)
		if err != nil {
			return fmt.Errorf("failed to insert line %d: %w", i+1, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)",
		hashKey, computeHash(rawContent),
	); err != nil {
		return fmt.Errorf("failed to store %s: %w", hashKey, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rebuild transaction: %w", err)
	}
	return nil
}

// IsFresh reports whether the cache was built from rawContent.
func (c *Cache) IsFresh(rawContent []byte) (bool, error) {
	var stored string
	err := c.db.QueryRow("SELECT value FROM metadata WHERE key = ?", hashKey).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", hashKey, err)
	}
	return stored == computeHash(rawContent), nil
}

// EnsureFresh opens the cache at dbPath and rebuilds it when it is stale. A
// missing or corrupted cache file is recreated from scratch.
func EnsureFresh(dbPath string, lines []string, rawContent []byte, logger *log.Logger) (*Cache, error) {
	if logger == nil {
		logger = log.Default()
	}

	cache, err := tryOpen(dbPath)
	if err != nil {
		logger.Debug("cache unusable, recreating", "path", dbPath, "err", err)
		return recreateAndRebuild(dbPath, lines, rawContent)
	}

	fresh, err := cache.IsFresh(rawContent)
	if err != nil {
		cache.Close()
		logger.Warn("cache freshness check failed, recreating", "err", err)
		return recreateAndRebuild(dbPath, lines, rawContent)
	}
	if fresh {
		logger.Debug("cache is fresh", "lines", len(lines))
		return cache, nil
	}

	logger.Debug("cache is stale, rebuilding", "lines", len(lines))
	if err := cache.Rebuild(lines, rawContent); err != nil {
		cache.Close()
		return nil, fmt.Errorf("failed to rebuild cache: %w", err)
	}
	return cache, nil
}

func tryOpen(dbPath string) (*Cache, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("cache db does not exist: %w", err)
	}

	cache, err := NewCache(dbPath)
	if err != nil {
		return nil, err
	}
	for _, table := range []string{"tasks", "metadata"} {
		if _, err := cache.db.Exec("SELECT 1 FROM " + table + " LIMIT 0"); err != nil {
			cache.Close()
			return nil, fmt.Errorf("%s table unusable: %w", table, err)
		}
	}
	return cache, nil
}

func recreateAndRebuild(dbPath string, lines []string, rawContent []byte) (*Cache, error) {
	os.Remove(dbPath)

	cache, err := NewCache(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create new cache: %w", err)
	}
	if err := cache.Rebuild(lines, rawContent); err != nil {
		cache.Close()
		return nil, fmt.Errorf("failed to rebuild new cache: %w", err)
	}
	return cache, nil
}

func computeHash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
