package db

import (
	"database/sql"
	"time"
)

// Entry represents one key/value row
type Entry struct {
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt sql.NullTime // NULL for rows written before the updated_at migration
}

// LastWrite returns when the entry was last written
func (e Entry) LastWrite() time.Time {
	if e.UpdatedAt.Valid {
		return e.UpdatedAt.Time
	}
	return e.CreatedAt
}
