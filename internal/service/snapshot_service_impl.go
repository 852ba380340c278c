package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tripboard/internal/db"
	"github.com/alexanderramin/tripboard/internal/domain"
	"github.com/alexanderramin/tripboard/internal/repository"
)

type snapshotService struct {
	trips     TripService
	snapshots repository.SnapshotRepo
	stats     repository.DayStatRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
}

func NewSnapshotService(
	trips TripService,
	snapshots repository.SnapshotRepo,
	stats repository.DayStatRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SnapshotService {
	return &snapshotService{
		trips:     trips,
		snapshots: snapshots,
		stats:     stats,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *snapshotService) Save(ctx context.Context, source string) (snap *domain.Snapshot, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"source": source}
	defer func() { observe(ctx, s.observer, "save-snapshot", startedAt, fields, err) }()

	report, err := s.trips.Build(ctx, source)
	if err != nil {
		return nil, err
	}

	snap = &domain.Snapshot{
		ID:          uuid.New().String(),
		Title:       report.Page.Title,
		Subtitle:    report.Trip.Subtitle,
		Source:      source,
		GeneratedOn: report.Trip.GeneratedOn,
		DayCount:    report.Summary.DayCount,
		ItemCount:   report.Summary.Counts.Total(),
		Document:    report.Raw,
		ImportedAt:  s.now().Truncate(time.Second),
	}
	stats := make([]domain.DayStat, 0, len(report.Summary.Days))
	for _, d := range report.Summary.Days {
		stats = append(stats, domain.DayStat{
			SnapshotID: snap.ID,
			DayIndex:   d.Index,
			DayLabel:   d.Label,
			Total:      d.Total,
			Counts:     d.Counts,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSnapshotRepo(tx).Create(ctx, snap); err != nil {
			return fmt.Errorf("creating snapshot: %w", err)
		}
		if err := repository.NewSQLiteDayStatRepo(tx).CreateBatch(ctx, stats); err != nil {
			return fmt.Errorf("creating day stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["snapshot_id"] = snap.ID
	fields["days"] = snap.DayCount
	return snap, nil
}

func (s *snapshotService) List(ctx context.Context) ([]*domain.Snapshot, error) {
	return s.snapshots.List(ctx)
}

func (s *snapshotService) Get(ctx context.Context, ref string) (*domain.Snapshot, []domain.DayStat, error) {
	snap, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.stats.ListBySnapshot(ctx, snap.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading day stats: %w", err)
	}
	return snap, stats, nil
}

func (s *snapshotService) Report(ctx context.Context, ref string) (*Report, error) {
	snap, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.trips.BuildFromBytes(ctx, snap.Document, "snapshot:"+snap.ShortID())
}

func (s *snapshotService) Delete(ctx context.Context, ref string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ref": ref}
	defer func() { observe(ctx, s.observer, "delete-snapshot", startedAt, fields, err) }()

	snap, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	fields["snapshot_id"] = snap.ID
	return s.snapshots.Delete(ctx, snap.ID)
}

// resolve accepts a full snapshot ID or a prefix that names exactly one.
func (s *snapshotService) resolve(ctx context.Context, ref string) (*domain.Snapshot, error) {
	if ref == "" {
		return nil, fmt.Errorf("snapshot reference is empty: %w", repository.ErrNotFound)
	}
	snap, err := s.snapshots.GetByID(ctx, ref)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	matches, err := s.snapshots.ListByIDPrefix(ctx, ref)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("snapshot %s: %w", ref, repository.ErrNotFound)
	case 1:
		return s.snapshots.GetByID(ctx, matches[0].ID)
	default:
		return nil, fmt.Errorf("%w: %q matches %d snapshots", ErrAmbiguousRef, ref, len(matches))
	}
}
