package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// BarCells returns how many of width cells a value fills against max. Any
// non-zero value fills at least one cell.
func BarCells(value, max, width int) int {
	if max <= 0 || value <= 0 || width <= 0 {
		return 0
	}
	filled := (value*width + max - 1) / max
	if filled > width {
		filled = width
	}
	return filled
}

// RenderBar renders value against max as a fixed-width bar followed by the
// value, e.g. "████░░░░  3".
func RenderBar(value, max, width int, style lipgloss.Style) string {
	filled := BarCells(value, max, width)
	empty := width - filled
	if empty < 0 {
		empty = 0
	}
	return fmt.Sprintf("%s%s %2d",
		style.Render(strings.Repeat(filledBlock, filled)),
		StyleDim.Render(strings.Repeat(emptyBlock, empty)),
		value)
}

// RenderPercent renders a share as a bracketed bar with its percentage.
func RenderPercent(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}
	filled := pct * width / 100
	bar := StyleAqua.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("[%s] %3d%%", bar, pct)
}
