package db

import "fmt"

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	if err := db.runKVTableMigration(); err != nil {
		return err
	}

	if err := db.runUpdatedAtMigration(); err != nil {
		return err
	}

	return nil
}

// runKVTableMigration creates the kv table in databases that predate it
func (db *DB) runKVTableMigration() error {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name = 'kv'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for kv table: %w", err)
	}

	if count == 0 {
		db.logger.Info("Running migration: creating kv table")

		_, err := db.conn.Exec(`
			CREATE TABLE kv (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return fmt.Errorf("creating kv table: %w", err)
		}
	}

	return nil
}

func (db *DB) runUpdatedAtMigration() error {
	// Check if the updated_at column exists
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('kv')
		WHERE name = 'updated_at'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for updated_at column: %w", err)
	}

	if count < 1 {
		db.logger.Info("Running migration: adding updated_at column")

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("starting transaction: %w", err)
		}
		defer tx.Rollback()

		// SQLite rejects non-constant defaults on ALTER TABLE ADD COLUMN
		_, err = tx.Exec(`ALTER TABLE kv ADD COLUMN updated_at DATETIME`)
		if err != nil && err.Error() != "duplicate column name: updated_at" {
			return fmt.Errorf("adding updated_at column: %w", err)
		}

		_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_kv_updated_at ON kv (updated_at DESC)`)
		if err != nil {
			return fmt.Errorf("creating updated_at index: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration: %w", err)
		}

		db.logger.Info("Migration completed successfully")
	}

	return nil
}
