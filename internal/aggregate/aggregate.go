// Package aggregate folds classified itinerary items into per-day and
// whole-trip summaries.
package aggregate

import (
	"github.com/alexanderramin/tripboard/internal/classify"
	"github.com/alexanderramin/tripboard/internal/domain"
)

// Options carries the fallback copy used when a list comes out empty.
type Options struct {
	TightFallback string
	WalkFallback  string
}

// DefaultOptions returns the stock fallback messages.
func DefaultOptions() Options {
	return Options{
		TightFallback: "沒有跨區緊湊日，節奏相對寬鬆。",
		WalkFallback:  "步行多的日子：上午跑重點、下午留室內或休息，每 90 分鐘補水/點心。",
	}
}

// DaySummary is the aggregated view of one day.
type DaySummary struct {
	Index     int                   `json:"index"`
	Label     string                `json:"label"`
	Total     int                   `json:"total"`
	Counts    BucketCounts          `json:"counts"`
	Percent   map[domain.Bucket]int `json:"percent"`
	WalkHeavy int                   `json:"walk_heavy"`
	QueueRisk int                   `json:"queue_risk"`
	Route     []string              `json:"route"`
	Tight     bool                  `json:"tight"`
	Slots     []SlotGroup           `json:"-"`
}

// TripSummary is the aggregated view of the whole itinerary.
type TripSummary struct {
	DayCount   int          `json:"day_count"`
	Days       []DaySummary `json:"days"`
	Counts     BucketCounts `json:"counts"`
	Busiest    []DayRef     `json:"busiest"`
	TightDays  []DayRef     `json:"tight_days"`
	TightNote  string       `json:"tight_note,omitempty"`
	Food       FoodSummary  `json:"food"`
	Walk       WalkSummary  `json:"walk"`
	QueueRisk  int          `json:"queue_risk"`
	MaxDayLoad int          `json:"max_day_load"`
}

// SummarizeDay aggregates a single classified day.
func SummarizeDay(day *classify.Day) DaySummary {
	counts := newBucketCounts()
	s := DaySummary{
		Index: day.Source.Index,
		Label: day.Source.Label,
	}
	for _, it := range day.Items {
		counts[it.Bucket]++
		if it.WalkHeavy {
			s.WalkHeavy++
		}
		if it.QueueRisk {
			s.QueueRisk++
		}
	}
	s.Counts = counts
	s.Total = counts.Total()
	s.Percent = counts.Percentages()
	s.Route = ExtractRoute(day)
	s.Tight = IsTightDay(day)
	s.Slots = GroupBySlot(day)
	return s
}

// Summarize aggregates a classified trip.
func Summarize(trip *classify.Trip, opts Options) *TripSummary {
	s := &TripSummary{
		DayCount: len(trip.Days),
		Days:     make([]DaySummary, 0, len(trip.Days)),
		Counts:   newBucketCounts(),
	}
	for i := range trip.Days {
		ds := SummarizeDay(&trip.Days[i])
		s.Counts.Add(ds.Counts)
		s.QueueRisk += ds.QueueRisk
		if ds.Total > s.MaxDayLoad {
			s.MaxDayLoad = ds.Total
		}
		s.Days = append(s.Days, ds)
	}

	s.Busiest = BusiestDays(s.Days)
	s.TightDays = TightDays(s.Days)
	if len(s.TightDays) == 0 {
		s.TightNote = opts.TightFallback
	}
	s.Food = SummarizeFood(trip.Days)
	s.Walk = SummarizeWalk(trip.Days, opts.WalkFallback)
	return s
}
