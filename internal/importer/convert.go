package importer

import (
	"github.com/alexanderramin/tripboard/internal/domain"
)

const defaultTripTitle = "行程"

// Convert turns a decoded document into a domain.Trip, applying defaults
// for every absent field. Unknown bucket or slot strings are kept in the
// raw field and left unset in the typed one.
func Convert(doc *TripDocument) *domain.Trip {
	trip := &domain.Trip{
		Title:          domain.CoalesceStr(domain.StrFromPtr(doc.Title), defaultTripTitle),
		Subtitle:       domain.StrFromPtr(doc.Subtitle),
		GeneratedOn:    domain.StrFromPtr(doc.GeneratedOn),
		Days:           make([]domain.Day, 0, len(doc.Days)),
		Enrichment:     make(map[string]domain.Enrichment, len(doc.Enrichment)),
		TransportCards: make([]domain.TransportCard, 0, len(doc.TransportCards)),
	}

	for i, d := range doc.Days {
		trip.Days = append(trip.Days, convertDay(i, &d))
	}

	for title, e := range doc.Enrichment {
		trip.Enrichment[title] = domain.Enrichment{
			Category:    domain.StrFromPtr(e.Category),
			Area:        domain.StrFromPtr(e.Area),
			TimeSuggest: domain.StrFromPtr(e.TimeSuggest),
			BestTime:    domain.StrFromPtr(e.BestTime),
			Ticket:      domain.StrFromPtr(e.Ticket),
			KidTip:      domain.StrFromPtr(e.KidTip),
			Cover:       domain.StrFromPtr(e.Cover),
		}
	}

	for _, c := range doc.TransportCards {
		trip.TransportCards = append(trip.TransportCards, domain.TransportCard{
			Key:   domain.StrFromPtr(c.K),
			Value: domain.StrFromPtr(c.V),
		})
	}

	return trip
}

func convertDay(i int, d *DayDocument) domain.Day {
	day := domain.Day{
		Index:      i,
		Label:      domain.StrFromPtr(d.DayLabel),
		Items:      make([]domain.Item, 0, len(d.Items)),
		Highlights: domain.CleanStrings(d.Highlights),
		Warnings:   make([]domain.Warning, 0, len(d.Warnings)),
	}

	for _, it := range d.Items {
		raw := domain.StrFromPtr(it.Bucket)
		bucket, _ := domain.ParseBucket(raw)
		slot, ok := domain.ParseTimeSlot(domain.StrFromPtr(it.TimeSlot))
		if !ok {
			slot = domain.SlotNone
		}
		day.Items = append(day.Items, domain.Item{
			Title:         domain.StrFromPtr(it.Title),
			Note:          domain.StrFromPtr(it.Note),
			RawBucket:     raw,
			Bucket:        bucket,
			Area:          domain.StrFromPtr(it.Area),
			Tags:          domain.CleanStrings(it.Tags),
			Slot:          slot,
			KidActivities: domain.CleanStrings(it.KidActivities),
		})
	}

	for _, w := range d.Warnings {
		day.Warnings = append(day.Warnings, domain.Warning{
			Level:  domain.StrFromPtr(w.Level),
			Title:  domain.StrFromPtr(w.Title),
			Detail: domain.StrFromPtr(w.Detail),
		})
	}

	return day
}
