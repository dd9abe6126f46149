package storage

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/pdxmph/todo-tui/internal/db"
)

// SQLiteBackend stores values in the kv table of a SQLite database
// The database is locked via <path>.lock for as long as the backend is open
type SQLiteBackend struct {
	db  *db.DB
	flk *flock.Flock
}

// NewSQLiteBackend takes the database lock and opens (creating if needed) the database at path
func NewSQLiteBackend(opts Options) (*SQLiteBackend, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("sqlite backend needs a database path")
	}

	flk, err := lockPath(opts.Path + lockFileSuffix)
	if err != nil {
		return nil, err
	}

	database, err := db.OpenOrInit(opts.Path, opts.Logger)
	if err != nil {
		flk.Unlock()
		return nil, err
	}
	return &SQLiteBackend{db: database, flk: flk}, nil
}

// Name returns the backend identifier
func (s *SQLiteBackend) Name() string {
	return "sqlite"
}

// Get returns the stored value
func (s *SQLiteBackend) Get(key string) (string, bool, error) {
	return s.db.GetValue(key)
}

// Set overwrites the stored value
func (s *SQLiteBackend) Set(key, value string) error {
	return s.db.SetValue(key, value)
}

// Close closes the database and releases the lock
func (s *SQLiteBackend) Close() error {
	err := s.db.Close()
	if uerr := s.flk.Unlock(); err == nil {
		err = uerr
	}
	return err
}

func init() {
	Register("sqlite", func(opts Options) (KV, error) { return NewSQLiteBackend(opts) })
}
