package aggregate

import (
	"fmt"

	"github.com/alexanderramin/tripboard/internal/classify"
)

// MaxWalkTips caps the warning-derived walking tips.
const MaxWalkTips = 8

const walkWarningMarker = "步行"

// DayCount is a per-day tally used by the bar charts.
type DayCount struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WalkSummary tallies walk-heavy items per day.
type WalkSummary struct {
	PerDay []DayCount `json:"per_day"`
	Max    int        `json:"max"`
	Tips   []string   `json:"tips"`
}

// SummarizeWalk counts walk-heavy items per day and collects one tip for
// every day carrying a walking warning. When no day qualifies, fallbackTip
// is the only tip.
func SummarizeWalk(days []classify.Day, fallbackTip string) WalkSummary {
	s := WalkSummary{PerDay: make([]DayCount, 0, len(days))}
	for _, d := range days {
		n := 0
		for _, it := range d.Items {
			if it.WalkHeavy {
				n++
			}
		}
		s.PerDay = append(s.PerDay, DayCount{Index: d.Source.Index, Label: d.Source.Label, Count: n})
		if n > s.Max {
			s.Max = n
		}

		if len(s.Tips) >= MaxWalkTips {
			continue
		}
		if ws := d.Source.WarningsTitled(walkWarningMarker); len(ws) > 0 {
			s.Tips = append(s.Tips, walkTip(d.Source.Label, ws[0].Title, ws[0].Detail))
		}
	}
	if len(s.Tips) == 0 && fallbackTip != "" {
		s.Tips = []string{fallbackTip}
	}
	return s
}

func walkTip(label, title, detail string) string {
	if detail == "" {
		return fmt.Sprintf("%s：%s", label, title)
	}
	return fmt.Sprintf("%s：%s（%s）", label, title, detail)
}
