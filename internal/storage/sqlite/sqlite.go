// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// The store opens lazily: New does not touch the filesystem, and the first
// operation (whichever it is) opens the database file and creates the schema
// exactly once, even under concurrent first use.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tavolo/tavolo/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	path string

	once    sync.Once
	db      *sql.DB
	openErr error
}

// New creates a SQLiteStore for the given database path without opening it.
// The file and schema are created on first use.
func New(dbPath string) *SQLiteStore {
	return &SQLiteStore{path: dbPath}
}

// init opens the database and creates the schema, exactly once per store.
// Every public operation calls it before touching the database. An open
// failure is remembered and returned to all subsequent operations; the
// store does not retry.
func (s *SQLiteStore) init() error {
	s.once.Do(func() {
		s.db, s.openErr = open(s.path)
	})
	if s.openErr != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, s.openErr)
	}
	return nil
}

func open(dbPath string) (*sql.DB, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection. Safe to call on a store that was
// never used.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// unavailable wraps a driver error as a storage.ErrUnavailable so callers
// can match on the error kind without knowing the backend.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", storage.ErrUnavailable, op, err)
}

// execContext runs init then a single statement, mapping failures to
// storage.ErrUnavailable.
func (s *SQLiteStore) execContext(ctx context.Context, op, query string, args ...any) error {
	if err := s.init(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return unavailable(op, err)
	}
	return nil
}
