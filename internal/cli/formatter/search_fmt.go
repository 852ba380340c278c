package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripboard/internal/search"
)

// FormatMatches renders the day cards matching query out of total.
func FormatMatches(query string, matches []search.Match, total int) string {
	var b strings.Builder
	if len(matches) == 0 {
		b.WriteString(Dim(fmt.Sprintf("No day matches %q.", query)) + "\n")
		return b.String()
	}
	for _, m := range matches {
		b.WriteString(fmt.Sprintf("  %s  %s\n", StyleAqua.Render(m.ID), m.Label))
	}
	b.WriteString(Dim(fmt.Sprintf("%d of %d days match %q", len(matches), total, query)) + "\n")
	return b.String()
}
