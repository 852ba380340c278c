package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tripboard/internal/aggregate"
	"github.com/alexanderramin/tripboard/internal/classify"
	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/importer"
	"github.com/alexanderramin/tripboard/internal/view"
)

type tripService struct {
	loader   *importer.Loader
	content  config.ContentConfig
	observer UseCaseObserver
}

func NewTripService(
	loader *importer.Loader,
	content config.ContentConfig,
	observers ...UseCaseObserver,
) TripService {
	if loader == nil {
		loader = importer.NewLoader()
	}
	return &tripService{
		loader:   loader,
		content:  content,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *tripService) Build(ctx context.Context, source string) (report *Report, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"source": source}
	defer func() { observe(ctx, s.observer, "build-trip", startedAt, fields, err) }()

	doc, raw, err := s.loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	report = s.run(doc, raw, source)
	fields["days"] = report.Summary.DayCount
	fields["items"] = report.Summary.Counts.Total()
	fields["findings"] = len(report.Findings)
	return report, nil
}

func (s *tripService) BuildFromBytes(ctx context.Context, raw []byte, source string) (report *Report, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"source": source, "bytes": len(raw)}
	defer func() { observe(ctx, s.observer, "build-trip-bytes", startedAt, fields, err) }()

	doc, err := importer.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", importer.ErrLoadFailed, source, err)
	}
	return s.run(doc, raw, source), nil
}

func (s *tripService) run(doc *importer.TripDocument, raw []byte, source string) *Report {
	trip := importer.Convert(doc)
	classified := classify.ClassifyTrip(trip)
	summary := aggregate.Summarize(classified, aggregate.Options{
		TightFallback: s.content.TightFallback,
		WalkFallback:  s.content.WalkFallback,
	})
	return &Report{
		Source:     source,
		Raw:        raw,
		Trip:       trip,
		Classified: classified,
		Summary:    summary,
		Page:       view.Build(classified, summary, s.content),
		Findings:   importer.ValidateTripDocument(doc),
	}
}
