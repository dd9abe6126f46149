package storage

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// AutoBackend selects the first backend in preference order that opens
const AutoBackend = "auto"

// backendPreference is the order tried for AutoBackend
var backendPreference = []string{"sqlite", "file", "memory"}

// Manager handles backend selection and owns the opened backend
type Manager struct {
	backend KV
}

// NewManager opens the named backend
// If backendName is empty or AutoBackend, it tries backends in order of preference
func NewManager(backendName string, opts Options) (*Manager, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	if backendName != "" && backendName != AutoBackend {
		backend, err := CreateBackend(backendName, opts)
		if err != nil {
			return nil, fmt.Errorf("creating backend %s: %w", backendName, err)
		}
		return &Manager{backend: backend}, nil
	}

	for _, name := range backendPreference {
		backend, err := CreateBackend(name, opts)
		if err != nil {
			opts.Logger.Warn("storage backend unavailable", "backend", name, "err", err)
			continue
		}
		if name == "memory" {
			opts.Logger.Warn("falling back to memory storage; tasks will not survive a restart")
		}
		return &Manager{backend: backend}, nil
	}

	return nil, fmt.Errorf("no storage backend available")
}

// Backend returns the current backend
func (m *Manager) Backend() KV {
	return m.backend
}

// Name returns the name of the current backend
func (m *Manager) Name() string {
	return m.backend.Name()
}

// Close closes the current backend
func (m *Manager) Close() error {
	return m.backend.Close()
}
