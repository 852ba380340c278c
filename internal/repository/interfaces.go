package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/tripboard/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type SnapshotRepo interface {
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	// ListByIDPrefix returns snapshots whose ID starts with prefix, newest first.
	ListByIDPrefix(ctx context.Context, prefix string) ([]*domain.Snapshot, error)
	// List returns snapshot headers without their documents, newest first.
	List(ctx context.Context) ([]*domain.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

type DayStatRepo interface {
	CreateBatch(ctx context.Context, stats []domain.DayStat) error
	ListBySnapshot(ctx context.Context, snapshotID string) ([]domain.DayStat, error)
}
