package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent so it runs on
// each open.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		source       TEXT NOT NULL DEFAULT '',
		generated_on TEXT NOT NULL DEFAULT '',
		day_count    INTEGER NOT NULL DEFAULT 0 CHECK(day_count >= 0),
		item_count   INTEGER NOT NULL DEFAULT 0 CHECK(item_count >= 0),
		document     BLOB NOT NULL,
		imported_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS snapshot_day_stats (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		day_index   INTEGER NOT NULL,
		day_label   TEXT NOT NULL DEFAULT '',
		total       INTEGER NOT NULL DEFAULT 0,
		focus       INTEGER NOT NULL DEFAULT 0,
		spot        INTEGER NOT NULL DEFAULT 0,
		transit     INTEGER NOT NULL DEFAULT 0,
		food        INTEGER NOT NULL DEFAULT 0,
		shopping    INTEGER NOT NULL DEFAULT 0,
		backup      INTEGER NOT NULL DEFAULT 0,
		other       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (snapshot_id, day_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_imported ON snapshots(imported_at)`,

	// Added after the first release; ignored on fresh databases.
	`ALTER TABLE snapshots ADD COLUMN subtitle TEXT NOT NULL DEFAULT ''`,
}
