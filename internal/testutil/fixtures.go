package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/tripboard/internal/aggregate"
	"github.com/alexanderramin/tripboard/internal/classify"
	"github.com/alexanderramin/tripboard/internal/domain"
	"github.com/google/uuid"
)

var testSnapshotCounter atomic.Int64

// Item options
type ItemOption func(*domain.Item)

// WithBucket sets the explicit bucket string as it would appear in a
// document.
func WithBucket(raw string) ItemOption {
	return func(it *domain.Item) {
		it.RawBucket = raw
		it.Bucket, _ = domain.ParseBucket(raw)
	}
}

func WithNote(n string) ItemOption {
	return func(it *domain.Item) {
		it.Note = n
	}
}

func WithArea(a string) ItemOption {
	return func(it *domain.Item) {
		it.Area = a
	}
}

func WithTags(tags ...string) ItemOption {
	return func(it *domain.Item) {
		it.Tags = tags
	}
}

func WithSlot(s domain.TimeSlot) ItemOption {
	return func(it *domain.Item) {
		it.Slot = s
	}
}

func NewTestItem(title string, opts ...ItemOption) domain.Item {
	it := domain.Item{Title: title, Tags: []string{}, KidActivities: []string{}}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// Day options
type DayOption func(*domain.Day)

func WithItems(items ...domain.Item) DayOption {
	return func(d *domain.Day) {
		d.Items = append(d.Items, items...)
	}
}

func WithHighlights(titles ...string) DayOption {
	return func(d *domain.Day) {
		d.Highlights = titles
	}
}

func WithWarning(level, title, detail string) DayOption {
	return func(d *domain.Day) {
		d.Warnings = append(d.Warnings, domain.Warning{Level: level, Title: title, Detail: detail})
	}
}

func NewTestDay(label string, opts ...DayOption) domain.Day {
	d := domain.Day{Label: label, Items: []domain.Item{}, Highlights: []string{}, Warnings: []domain.Warning{}}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Trip options
type TripOption func(*domain.Trip)

func WithDays(days ...domain.Day) TripOption {
	return func(t *domain.Trip) {
		t.Days = append(t.Days, days...)
	}
}

func WithEnrichment(title string, e domain.Enrichment) TripOption {
	return func(t *domain.Trip) {
		t.Enrichment[title] = e
	}
}

func WithTransportCard(k, v string) TripOption {
	return func(t *domain.Trip) {
		t.TransportCards = append(t.TransportCards, domain.TransportCard{Key: k, Value: v})
	}
}

// NewTestTrip builds a trip and numbers its days in order.
func NewTestTrip(title string, opts ...TripOption) *domain.Trip {
	t := &domain.Trip{
		Title:          title,
		GeneratedOn:    "2025-03-01",
		Days:           []domain.Day{},
		Enrichment:     map[string]domain.Enrichment{},
		TransportCards: []domain.TransportCard{},
	}
	for _, opt := range opts {
		opt(t)
	}
	for i := range t.Days {
		t.Days[i].Index = i
	}
	return t
}

// Pipeline runs classification and aggregation with the default fallbacks.
func Pipeline(trip *domain.Trip) (*classify.Trip, *aggregate.TripSummary) {
	ct := classify.ClassifyTrip(trip)
	return ct, aggregate.Summarize(ct, aggregate.DefaultOptions())
}

// KyotoTrip is a small two-day trip touching every section of the page.
func KyotoTrip() *domain.Trip {
	return NewTestTrip("京都小旅行",
		WithDays(
			NewTestDay("Day 1 東山",
				WithItems(
					NewTestItem("清水寺", WithBucket("景點"), WithArea("東山"), WithSlot(domain.SlotMorning), WithTags("世界遺產")),
					NewTestItem("湯豆腐午餐", WithBucket("餐食"), WithSlot(domain.SlotNoon)),
					NewTestItem("", WithBucket("其他"), WithNote("早點回飯店")),
				),
				WithHighlights("清水寺"),
				WithWarning("注意", "步行量大", "坡道多"),
			),
			NewTestDay("Day 2 大阪",
				WithItems(
					NewTestItem("大阪城", WithBucket("景點")),
					NewTestItem("雨天備案：海遊館", WithBucket("備案/警示"), WithArea("大阪港")),
				),
				WithWarning("高", "跨區移動", "京都到大阪"),
			),
		),
		WithEnrichment("清水寺", domain.Enrichment{Category: "寺院", Area: "東山", Ticket: "500 円"}),
		WithTransportCard("ICOCA", "每人一張"),
		WithTransportCard("JR", "https://www.westjr.co.jp/"),
	)
}

// Snapshot options
type SnapshotOption func(*domain.Snapshot)

func WithImportedAt(t time.Time) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.ImportedAt = t
	}
}

func WithSnapshotID(id string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.ID = id
	}
}

func NewTestSnapshot(title string, opts ...SnapshotOption) *domain.Snapshot {
	n := testSnapshotCounter.Add(1)
	s := &domain.Snapshot{
		ID:          uuid.New().String(),
		Title:       title,
		Source:      fmt.Sprintf("trip-%d.json", n),
		GeneratedOn: "2025-03-01",
		DayCount:    2,
		ItemCount:   5,
		Document:    []byte(`{"title":"` + title + `"}`),
		ImportedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
