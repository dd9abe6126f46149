package storage

import (
	"errors"

	"github.com/charmbracelet/log"
)

var (
	// ErrLocked is returned when another process already owns the store
	ErrLocked = errors.New("store is locked by another process")

	// ErrUnknownBackend is returned when no factory is registered under a name
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// KV is a string key/value store that the task list is persisted into
type KV interface {
	// Name returns the backend identifier (e.g., "sqlite", "file")
	Name() string

	// Get returns the value under key and whether it was present
	Get(key string) (string, bool, error)

	// Set overwrites the value under key
	Set(key, value string) error

	// Close releases the backend's resources
	Close() error
}

// Options configures backend construction
type Options struct {
	// Path is the database file for sqlite or the directory for file
	Path   string
	Logger *log.Logger
}

// BackendFactory is a function that creates a new instance of a KV backend
type BackendFactory func(opts Options) (KV, error)
