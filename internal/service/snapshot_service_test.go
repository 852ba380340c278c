package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripboard/internal/domain"
	"github.com/alexanderramin/tripboard/internal/importer"
	"github.com/alexanderramin/tripboard/internal/repository"
	"github.com/alexanderramin/tripboard/internal/testutil"
)

type snapshotFixture struct {
	svc       SnapshotService
	snapshots *repository.SQLiteSnapshotRepo
	rec       *recordingObserver
}

func newSnapshotFixture(t *testing.T) snapshotFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	snapshots := repository.NewSQLiteSnapshotRepo(database)
	rec := &recordingObserver{}
	svc := NewSnapshotService(newTripService(), snapshots, repository.NewSQLiteDayStatRepo(database),
		testutil.NewTestUoW(database), rec)
	return snapshotFixture{svc: svc, snapshots: snapshots, rec: rec}
}

func TestSnapshotService_SaveAndGet(t *testing.T) {
	f := newSnapshotFixture(t)
	ctx := t.Context()

	snap, err := f.svc.Save(ctx, kansaiPath)
	require.NoError(t, err)
	assert.Equal(t, "關西親子遊", snap.Title)
	assert.Equal(t, 4, snap.DayCount)
	assert.Equal(t, 13, snap.ItemCount)

	got, stats, err := f.svc.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, "2 大 2 小 · 京都 / 奈良 / 大阪", got.Subtitle)
	require.Len(t, stats, 4)
	assert.Equal(t, "Day 2 清水寺 / 祇園", stats[1].DayLabel)
	assert.Equal(t, 5, stats[1].Total)
	assert.Equal(t, 1, stats[1].Counts[domain.BucketFocus])
	assert.Equal(t, 1, stats[1].Counts[domain.BucketShopping])

	require.NotEmpty(t, f.rec.events)
	assert.Equal(t, "save-snapshot", f.rec.events[0].Name)
}

func TestSnapshotService_GetByPrefix(t *testing.T) {
	f := newSnapshotFixture(t)
	ctx := t.Context()

	snap, err := f.svc.Save(ctx, kansaiPath)
	require.NoError(t, err)

	got, _, err := f.svc.Get(ctx, snap.ShortID())
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.NotEmpty(t, got.Document, "prefix lookups return the full snapshot")
}

func TestSnapshotService_AmbiguousPrefix(t *testing.T) {
	f := newSnapshotFixture(t)
	ctx := t.Context()

	require.NoError(t, f.snapshots.Create(ctx, testutil.NewTestSnapshot("a", testutil.WithSnapshotID("dup-1"))))
	require.NoError(t, f.snapshots.Create(ctx, testutil.NewTestSnapshot("b", testutil.WithSnapshotID("dup-2"))))

	_, _, err := f.svc.Get(ctx, "dup")
	assert.ErrorIs(t, err, ErrAmbiguousRef)
}

func TestSnapshotService_NotFound(t *testing.T) {
	f := newSnapshotFixture(t)

	_, _, err := f.svc.Get(t.Context(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, _, err = f.svc.Get(t.Context(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotService_Report(t *testing.T) {
	f := newSnapshotFixture(t)
	ctx := t.Context()

	snap, err := f.svc.Save(ctx, kansaiPath)
	require.NoError(t, err)

	report, err := f.svc.Report(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "snapshot:"+snap.ShortID(), report.Source)
	assert.Equal(t, snap.DayCount, report.Summary.DayCount)
}

func TestSnapshotService_ListAndDelete(t *testing.T) {
	f := newSnapshotFixture(t)
	ctx := t.Context()

	first, err := f.svc.Save(ctx, kansaiPath)
	require.NoError(t, err)
	_, err = f.svc.Save(ctx, kansaiPath)
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, f.svc.Delete(ctx, first.ID))
	list, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, f.svc.Delete(ctx, first.ID), repository.ErrNotFound)
}

func TestSnapshotService_SaveLoadFailure(t *testing.T) {
	f := newSnapshotFixture(t)

	_, err := f.svc.Save(t.Context(), "testdata/absent.json")
	require.ErrorIs(t, err, importer.ErrLoadFailed)

	list, err := f.svc.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSnapshotService_SaveRollsBackOnDayStatFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	snapshots := repository.NewSQLiteSnapshotRepo(database)
	boom := errors.New("disk I/O error")

	// Write 1 is the snapshot header, write 3 is the second day.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	svc := NewSnapshotService(newTripService(), snapshots, repository.NewSQLiteDayStatRepo(database), uow)

	_, err := svc.Save(t.Context(), kansaiPath)
	require.ErrorIs(t, err, boom)

	list, err := snapshots.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, list, "snapshot header is rolled back with its day stats")
}
