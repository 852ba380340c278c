package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))
}

func TestMigrate_CreatesTables(t *testing.T) {
	conn := openTestDB(t)

	for _, table := range []string{"snapshots", "snapshot_day_stats"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_SubtitleColumn(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.Exec(`INSERT INTO snapshots (id, title, document, imported_at) VALUES ('a', 't', x'7b7d', 'now')`)
	require.NoError(t, err)

	var subtitle string
	require.NoError(t, conn.QueryRow(`SELECT subtitle FROM snapshots WHERE id = 'a'`).Scan(&subtitle))
	assert.Equal(t, "", subtitle)
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	conn := openTestDB(t)

	var fk int
	require.NoError(t, conn.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	_, err := conn.Exec(`INSERT INTO snapshot_day_stats (snapshot_id, day_index) VALUES ('missing', 0)`)
	assert.Error(t, err, "orphan day stats must be rejected")
}

func TestMigrate_DayCountCheckConstraint(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.Exec(`INSERT INTO snapshots (id, title, day_count, document, imported_at) VALUES ('b', 't', -1, x'7b7d', 'now')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/tripboard.db"
	conn, err := OpenDB(path)
	require.NoError(t, err)
	defer conn.Close()

	var mode string
	require.NoError(t, conn.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
