// Package classify files itinerary items into buckets and tags them with
// secondary walk-heavy and queue-risk markers.
package classify

import (
	"github.com/alexanderramin/tripboard/internal/domain"
)

// Result is the classification of a single item.
type Result struct {
	Bucket    domain.Bucket
	Rule      string // name of the rule that decided the bucket, "fallback" if none
	WalkHeavy bool
	QueueRisk bool
}

// Item pairs a source item with its classification.
type Item struct {
	Source domain.Item
	Result
}

// Day is a source day with its items classified in document order.
type Day struct {
	Source *domain.Day
	Items  []Item
}

// Trip is the classified form of a whole itinerary.
type Trip struct {
	Source *domain.Trip
	Days   []Day
}

// Classify files a single item. day may be nil, in which case the
// highlight and day-warning rules cannot fire.
func Classify(it *domain.Item, day *domain.Day) Result {
	in := Input{Item: it, Day: day}
	res := Result{
		Bucket:    domain.BucketOther,
		Rule:      "fallback",
		WalkHeavy: IsWalkHeavy(it),
		QueueRisk: IsQueueRisk(it, day),
	}
	for _, r := range BucketRules {
		if !r.Match(in) {
			continue
		}
		res.Rule = r.Name
		res.Bucket = r.Bucket
		if res.Bucket == "" {
			res.Bucket = it.Bucket
		}
		break
	}
	return res
}

// ClassifyDay classifies every item of day in order.
func ClassifyDay(day *domain.Day) Day {
	out := Day{Source: day, Items: make([]Item, 0, len(day.Items))}
	for i := range day.Items {
		it := &day.Items[i]
		out.Items = append(out.Items, Item{Source: *it, Result: Classify(it, day)})
	}
	return out
}

// ClassifyTrip classifies every day of trip.
func ClassifyTrip(trip *domain.Trip) *Trip {
	out := &Trip{Source: trip, Days: make([]Day, 0, len(trip.Days))}
	for i := range trip.Days {
		out.Days = append(out.Days, ClassifyDay(&trip.Days[i]))
	}
	return out
}

// Label returns the source day's label.
func (d *Day) Label() string { return d.Source.Label }

// InBucket returns the day's items filed under b, in document order.
func (d *Day) InBucket(b domain.Bucket) []Item {
	var out []Item
	for _, it := range d.Items {
		if it.Bucket == b {
			out = append(out, it)
		}
	}
	return out
}
