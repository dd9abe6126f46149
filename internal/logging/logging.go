// Package logging sets up the leveled file logger used while the TUI owns the terminal
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the file logger
type Options struct {
	Path            string
	Level           string
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns default options for a log file at path
func DefaultOptions(path string) Options {
	return Options{
		Path:            path,
		Level:           "info",
		ReportTimestamp: true,
		Prefix:          "todo",
	}
}

// Logger pairs a logger with the file it writes to
type Logger struct {
	*log.Logger
	file *os.File
}

// New opens (appending) the log file and returns a logger writing to it
func New(opts Options) (*Logger, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{Logger: newLogger(f, level, opts), file: f}, nil
}

// NewWithWriter returns a logger writing to w
// Close is a no-op
func NewWithWriter(w io.Writer, level log.Level) *Logger {
	return &Logger{Logger: newLogger(w, level, Options{Prefix: "todo"})}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithWriter(io.Discard, log.FatalLevel)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newLogger(w io.Writer, level log.Level, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}
