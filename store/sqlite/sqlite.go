/*
Package sqlite provides a SQLite-backed implementation of settings.Store.

PURPOSE:
  Persists the three settings keys (salary, rates, inputs) in a single
  key-value table. The same pattern applies to PostgreSQL - only minor SQL
  dialect differences.

SCHEMA:
  settings: key TEXT PRIMARY KEY, value TEXT (JSON), updated_at TEXT

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The write volume here is a handful
  of rows touched on user edits, so coarse locking costs nothing.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/bonus.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). A migration tool would be overkill for
  one table.

SEE ALSO:
  - settings/settings.go: Interface definition
  - settings/store/memory.go: In-memory implementation for testing
  - store/redis/redis.go: Redis implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/bonus-engine/settings"
)

// Store implements settings.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check that Store implements settings.Store
var _ settings.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SETTINGS STORE (settings.Store interface)
// =============================================================================

// Load returns the stored JSON text for a key.
func (s *Store) Load(ctx context.Context, key settings.Key) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", string(key),
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", settings.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return value, nil
}

// Save stores the JSON text under the key, replacing any prior value.
func (s *Store) Save(ctx context.Context, key settings.Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		string(key), value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key settings.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM settings WHERE key = ?", string(key)); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// Reset clears every settings key.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM settings"); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}
