package aggregate

import (
	"sort"

	"github.com/alexanderramin/tripboard/internal/classify"
)

// BusiestDaysShown is how many of the fullest days are reported.
const BusiestDaysShown = 2

const tightWarningMarker = "跨區"

// DayRef identifies a day in rankings and lists.
type DayRef struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Total int    `json:"total"`
}

// BusiestDays ranks days by item count, descending. Ties keep document
// order.
func BusiestDays(days []DaySummary) []DayRef {
	refs := make([]DayRef, 0, len(days))
	for _, d := range days {
		refs = append(refs, DayRef{Index: d.Index, Label: d.Label, Total: d.Total})
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Total > refs[j].Total
	})
	if len(refs) > BusiestDaysShown {
		refs = refs[:BusiestDaysShown]
	}
	return refs
}

// IsTightDay reports whether the day carries a cross-district warning.
func IsTightDay(d *classify.Day) bool {
	return d.Source.HasWarningTitled(tightWarningMarker)
}

// TightDays lists days flagged by a cross-district warning, in order.
func TightDays(days []DaySummary) []DayRef {
	var refs []DayRef
	for _, d := range days {
		if d.Tight {
			refs = append(refs, DayRef{Index: d.Index, Label: d.Label, Total: d.Total})
		}
	}
	return refs
}
