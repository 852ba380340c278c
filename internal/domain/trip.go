package domain

import "strings"

// Trip is a fully loaded itinerary document. All fields are populated with
// defaults at load time; a Trip is never mutated after construction.
type Trip struct {
	Title          string
	Subtitle       string
	GeneratedOn    string
	Days           []Day
	Enrichment     map[string]Enrichment
	TransportCards []TransportCard
}

// EnrichmentFor looks up supplementary metadata by exact title match.
// Untitled items never match.
func (t *Trip) EnrichmentFor(title string) (Enrichment, bool) {
	if title == "" {
		return Enrichment{}, false
	}
	e, ok := t.Enrichment[title]
	return e, ok
}

// ItemCount returns the number of items across all days.
func (t *Trip) ItemCount() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Items)
	}
	return n
}

type Day struct {
	Index      int
	Label      string
	Items      []Item
	Highlights []string
	Warnings   []Warning
}

// IsHighlighted reports whether title is in the day's highlight list.
func (d *Day) IsHighlighted(title string) bool {
	if title == "" {
		return false
	}
	for _, h := range d.Highlights {
		if h == title {
			return true
		}
	}
	return false
}

// HasWarningTitled reports whether any warning title contains substr.
func (d *Day) HasWarningTitled(substr string) bool {
	for _, w := range d.Warnings {
		if strings.Contains(w.Title, substr) {
			return true
		}
	}
	return false
}

// WarningsTitled returns the warnings whose title contains substr.
func (d *Day) WarningsTitled(substr string) []Warning {
	var out []Warning
	for _, w := range d.Warnings {
		if strings.Contains(w.Title, substr) {
			out = append(out, w)
		}
	}
	return out
}

type Item struct {
	Title string
	Note  string
	// RawBucket is the bucket string as written in the document.
	RawBucket     string
	Bucket        Bucket // empty when RawBucket is absent or unrecognised
	Area          string
	Tags          []string
	Slot          TimeSlot
	KidActivities []string
}

// Text returns title and note joined for keyword matching.
func (it *Item) Text() string {
	return it.Title + " " + it.Note
}

// Enrichment is supplementary metadata keyed by item title.
type Enrichment struct {
	Category    string
	Area        string
	TimeSuggest string
	BestTime    string
	Ticket      string
	KidTip      string
	Cover       string
}

type Warning struct {
	Level  string
	Title  string
	Detail string
}

// TransportCard is a key/value note about getting around.
type TransportCard struct {
	Key   string
	Value string
}

// IsLink reports whether the card's value should render as a hyperlink.
func (c TransportCard) IsLink() bool {
	return strings.HasPrefix(c.Value, "http")
}
