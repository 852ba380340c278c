package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/tripboard/internal/aggregate"
	"github.com/alexanderramin/tripboard/internal/classify"
	"github.com/alexanderramin/tripboard/internal/domain"
	"github.com/alexanderramin/tripboard/internal/view"
)

// ErrAmbiguousRef is returned when a snapshot ID prefix matches more than
// one snapshot.
var ErrAmbiguousRef = errors.New("ambiguous snapshot reference")

// Report is one pass of the pipeline over a trip document.
type Report struct {
	Source     string
	Raw        []byte
	Trip       *domain.Trip
	Classified *classify.Trip
	Summary    *aggregate.TripSummary
	Page       *view.Page
	// Findings are validation problems that did not stop the pipeline.
	Findings []error
}

type TripService interface {
	// Build loads source and runs the full pipeline. Load failures wrap
	// importer.ErrLoadFailed.
	Build(ctx context.Context, source string) (*Report, error)
	// BuildFromBytes runs the pipeline over an already read document.
	BuildFromBytes(ctx context.Context, raw []byte, source string) (*Report, error)
}

type SnapshotService interface {
	Save(ctx context.Context, source string) (*domain.Snapshot, error)
	List(ctx context.Context) ([]*domain.Snapshot, error)
	// Get resolves ref as a full ID or a unique ID prefix.
	Get(ctx context.Context, ref string) (*domain.Snapshot, []domain.DayStat, error)
	// Report re-runs the pipeline over the stored document.
	Report(ctx context.Context, ref string) (*Report, error)
	Delete(ctx context.Context, ref string) error
}
