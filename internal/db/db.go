package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection
type DB struct {
	conn   *sql.DB
	logger *log.Logger
}

// Open creates a new database connection
// A nil logger uses the default logger
func Open(dbPath string, logger *log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.Default()
	}

	// Check if DB exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found at %s\nRun 'todo-tui -init' to create it", dbPath)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn, logger: logger}

	// Run any pending migrations
	if err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// OpenOrInit opens the database, creating it first when it does not exist yet
func OpenOrInit(dbPath string, logger *log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.Default()
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		logger.Info("Creating database", "path", dbPath)
		if err := Initialize(dbPath); err != nil {
			return nil, err
		}
	}
	return Open(dbPath, logger)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// GetValue returns the value stored under key and whether it was present
func (db *DB) GetValue(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying value for %s: %w", key, err)
	}
	return value, true, nil
}

// SetValue overwrites the value stored under key
func (db *DB) SetValue(key, value string) error {
	query := `
		INSERT INTO kv (key, value, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := db.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("storing value for %s: %w", key, err)
	}
	return nil
}

// ListEntries returns all entries ordered by key
func (db *DB) ListEntries() ([]Entry, error) {
	rows, err := db.conn.Query(`SELECT key, value, created_at, updated_at FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
