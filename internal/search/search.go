// Package search filters the day cards of a rendered itinerary page the
// same way the in-page search box does.
package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Match is a day card whose text contains the query.
type Match struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Index holds the day cards of one rendered page.
type Index struct {
	cards []card
}

type card struct {
	Match
	text string
}

// NewIndex parses a rendered page.
func NewIndex(r io.Reader) (*Index, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	idx := &Index{}
	doc.Find(".day").Each(func(_ int, s *goquery.Selection) {
		idx.cards = append(idx.cards, card{
			Match: Match{
				ID:    s.AttrOr("id", ""),
				Label: strings.TrimSpace(s.Find(".dayHead h3").First().Text()),
			},
			text: strings.ToLower(s.Text()),
		})
	})
	return idx, nil
}

// Len returns the number of day cards.
func (idx *Index) Len() int { return len(idx.cards) }

// Filter returns the cards containing q, case-insensitively, in page order.
// A blank query matches every card.
func (idx *Index) Filter(q string) []Match {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]Match, 0, len(idx.cards))
	for _, c := range idx.cards {
		if q == "" || strings.Contains(c.text, q) {
			out = append(out, c.Match)
		}
	}
	return out
}
