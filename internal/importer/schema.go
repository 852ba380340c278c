package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// TripDocument is the top-level JSON structure of an itinerary data file.
// Every field is optional; Convert applies defaults.
type TripDocument struct {
	Title          *string                       `json:"title,omitempty"`
	Subtitle       *string                       `json:"subtitle,omitempty"`
	GeneratedOn    *string                       `json:"generated_on,omitempty"`
	Days           []DayDocument                 `json:"days,omitempty"`
	Enrichment     map[string]EnrichmentDocument `json:"enrichment,omitempty"`
	TransportCards []TransportCardDocument       `json:"transport_cards,omitempty"`
}

// DayDocument defines one day of the itinerary.
type DayDocument struct {
	DayLabel   *string           `json:"day_label,omitempty"`
	Items      []ItemDocument    `json:"items,omitempty"`
	Highlights []string          `json:"highlights,omitempty"`
	Warnings   []WarningDocument `json:"warnings,omitempty"`
}

// ItemDocument defines a single itinerary entry.
type ItemDocument struct {
	Title         *string  `json:"title,omitempty"`
	Note          *string  `json:"note,omitempty"`
	Bucket        *string  `json:"bucket,omitempty"`
	Area          *string  `json:"area,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	TimeSlot      *string  `json:"time_slot,omitempty"`
	KidActivities []string `json:"kid_activities,omitempty"`
}

// EnrichmentDocument is keyed by item title in TripDocument.Enrichment.
type EnrichmentDocument struct {
	Category    *string `json:"category,omitempty"`
	Area        *string `json:"area,omitempty"`
	TimeSuggest *string `json:"time_suggest,omitempty"`
	BestTime    *string `json:"best_time,omitempty"`
	Ticket      *string `json:"ticket,omitempty"`
	KidTip      *string `json:"kid_tip,omitempty"`
	Cover       *string `json:"cover,omitempty"`
}

// WarningDocument is a free-text caution attached to a day.
type WarningDocument struct {
	Level  *string `json:"level,omitempty"`
	Title  *string `json:"title,omitempty"`
	Detail *string `json:"detail,omitempty"`
}

// TransportCardDocument is a key/value transport note.
type TransportCardDocument struct {
	K *string `json:"k,omitempty"`
	V *string `json:"v,omitempty"`
}

// Decode parses a trip document from r. The document must be the only
// JSON value in r.
func Decode(r io.Reader) (*TripDocument, error) {
	var doc TripDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing trip document: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("parsing trip document: trailing data")
	}
	return &doc, nil
}
