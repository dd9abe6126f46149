package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

const (
	lockFileName   = ".lock"
	lockFileSuffix = ".lock"
)

// FileBackend stores each key as <dir>/<key>.json
// The directory is locked for as long as the backend is open
type FileBackend struct {
	dir string
	flk *flock.Flock
}

// NewFileBackend creates dir if needed and takes its lock
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("file backend needs a directory")
	}
	flk, err := lockPath(filepath.Join(dir, lockFileName))
	if err != nil {
		return nil, err
	}

	return &FileBackend{dir: dir, flk: flk}, nil
}

// lockPath takes an exclusive lock on path, creating its directory first
// It returns ErrLocked when another process holds the lock
func lockPath(path string) (*flock.Flock, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}

	flk := flock.New(path)
	locked, err := flk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return flk, nil
}

// Name returns the backend identifier
func (f *FileBackend) Name() string {
	return "file"
}

// Get returns the stored value
func (f *FileBackend) Get(key string) (string, bool, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), true, nil
}

// Set overwrites the stored value via a temp file and rename
func (f *FileBackend) Set(key, value string) error {
	path, err := f.pathFor(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Close releases the directory lock
func (f *FileBackend) Close() error {
	return f.flk.Unlock()
}

func (f *FileBackend) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func init() {
	Register("file", func(opts Options) (KV, error) { return NewFileBackend(opts.Path) })
}
