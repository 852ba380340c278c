package importer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/tripboard/internal/domain"
)

// ValidateTripDocument reports suspicious content in a trip document.
// Findings are advisory: a document with findings still renders, with the
// affected fields falling back to their defaults.
func ValidateTripDocument(doc *TripDocument) []error {
	var errs []error

	titles := make(map[string]bool)
	for i, d := range doc.Days {
		errs = append(errs, validateDay(i, &d, titles)...)
	}

	keys := make([]string, 0, len(doc.Enrichment))
	for k := range doc.Enrichment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !titles[k] {
			errs = append(errs, fmt.Errorf("enrichment[%q]: matches no item title", k))
		}
	}

	for i, c := range doc.TransportCards {
		if domain.StrFromPtr(c.K) == "" && domain.StrFromPtr(c.V) == "" {
			errs = append(errs, fmt.Errorf("transport_cards[%d]: empty card", i))
		}
	}

	return errs
}

func validateDay(i int, d *DayDocument, titles map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("days[%d]", i)

	if domain.StrFromPtr(d.DayLabel) == "" {
		errs = append(errs, fmt.Errorf("%s.day_label is empty", prefix))
	}

	dayTitles := make(map[string]bool)
	for j, it := range d.Items {
		itemPrefix := fmt.Sprintf("%s.items[%d]", prefix, j)
		title := domain.StrFromPtr(it.Title)
		if title != "" {
			dayTitles[title] = true
			titles[title] = true
		}
		if raw := domain.StrFromPtr(it.Bucket); raw != "" {
			if _, ok := domain.ParseBucket(raw); !ok {
				errs = append(errs, fmt.Errorf("%s.bucket: unknown value %q", itemPrefix, raw))
			}
		}
		if raw := domain.StrFromPtr(it.TimeSlot); raw != "" {
			if _, ok := domain.ParseTimeSlot(raw); !ok {
				errs = append(errs, fmt.Errorf("%s.time_slot: unknown value %q", itemPrefix, raw))
			}
		}
	}

	for _, h := range domain.CleanStrings(d.Highlights) {
		if !dayTitles[h] {
			errs = append(errs, fmt.Errorf("%s.highlights: %q matches no item title on this day", prefix, h))
		}
	}

	for j, w := range d.Warnings {
		if domain.StrFromPtr(w.Title) == "" && domain.StrFromPtr(w.Detail) == "" {
			errs = append(errs, fmt.Errorf("%s.warnings[%d]: empty warning", prefix, j))
		}
	}

	return errs
}
