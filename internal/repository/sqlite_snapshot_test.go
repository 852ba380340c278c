package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/tripboard/internal/domain"
	"github.com/alexanderramin/tripboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := t.Context()

	snap := testutil.NewTestSnapshot("關西親子遊")
	snap.Subtitle = "2 大 2 小"
	require.NoError(t, repo.Create(ctx, snap))

	got, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Title, got.Title)
	assert.Equal(t, "2 大 2 小", got.Subtitle)
	assert.Equal(t, snap.Source, got.Source)
	assert.Equal(t, snap.DayCount, got.DayCount)
	assert.Equal(t, snap.ItemCount, got.ItemCount)
	assert.Equal(t, snap.Document, got.Document)
	assert.True(t, snap.ImportedAt.Equal(got.ImportedAt))
}

func TestSnapshotRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(t.Context(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRepo_List_NewestFirstWithoutDocument(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := t.Context()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	older := testutil.NewTestSnapshot("older", testutil.WithImportedAt(base))
	newer := testutil.NewTestSnapshot("newer", testutil.WithImportedAt(base.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	assert.Equal(t, "older", list[1].Title)
	assert.Nil(t, list[0].Document)
}

func TestSnapshotRepo_ListByIDPrefix(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := t.Context()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSnapshot("a", testutil.WithSnapshotID("abc12345-0000"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSnapshot("b", testutil.WithSnapshotID("abd99999-0000"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSnapshot("c", testutil.WithSnapshotID("a_c00000-0000"))))

	got, err := repo.ListByIDPrefix(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Title)

	got, err = repo.ListByIDPrefix(ctx, "ab")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Underscore is matched literally, not as a wildcard.
	got, err = repo.ListByIDPrefix(ctx, "a_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Title)
}

func TestSnapshotRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(database)
	stats := NewSQLiteDayStatRepo(database)
	ctx := t.Context()

	snap := testutil.NewTestSnapshot("gone")
	require.NoError(t, repo.Create(ctx, snap))
	require.NoError(t, stats.CreateBatch(ctx, []domain.DayStat{{SnapshotID: snap.ID, DayIndex: 0, Total: 1}}))

	require.NoError(t, repo.Delete(ctx, snap.ID))

	_, err := repo.GetByID(ctx, snap.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	left, err := stats.ListBySnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Empty(t, left, "day stats cascade with their snapshot")

	assert.ErrorIs(t, repo.Delete(ctx, snap.ID), ErrNotFound)
}

func TestSnapshotRepo_DuplicateID(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := t.Context()

	snap := testutil.NewTestSnapshot("dup")
	require.NoError(t, repo.Create(ctx, snap))
	assert.Error(t, repo.Create(ctx, snap))
}

func TestSnapshotRepo_QueryFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT .* FROM snapshots ORDER BY").WillReturnError(errors.New("database is locked"))

	_, err = NewSQLiteSnapshotRepo(conn).List(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing snapshots")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepo_ScanFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"id", "title"}).AddRow("x", "y")
	mock.ExpectQuery("SELECT .* FROM snapshots ORDER BY").WillReturnRows(rows)

	_, err = NewSQLiteSnapshotRepo(conn).List(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning snapshot")
}

func TestSnapshotRepo_DeleteExecFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("DELETE FROM snapshots").WithArgs("id-1").WillReturnError(errors.New("readonly"))

	err = NewSQLiteSnapshotRepo(conn).Delete(t.Context(), "id-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
