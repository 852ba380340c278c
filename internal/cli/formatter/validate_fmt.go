package formatter

import (
	"fmt"
	"strings"
)

// FormatFindings renders validation findings for a source. An empty list
// renders a single OK line.
func FormatFindings(source string, findings []error) string {
	var b strings.Builder
	if len(findings) == 0 {
		b.WriteString(StyleGreen.Render("✔ "+source) + Dim("  no problems found") + "\n")
		return b.String()
	}

	noun := "finding"
	if len(findings) != 1 {
		noun = "findings"
	}
	b.WriteString(StyleYellow.Render(fmt.Sprintf("⚠ %s", source)) + Dim(fmt.Sprintf("  %d %s", len(findings), noun)) + "\n")
	for _, f := range findings {
		b.WriteString("  " + StyleYellow.Render("•") + " " + f.Error() + "\n")
	}
	b.WriteString(Dim("  findings do not block rendering; affected fields fall back to defaults") + "\n")
	return b.String()
}
