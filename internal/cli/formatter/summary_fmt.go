package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tripboard/internal/aggregate"
	"github.com/alexanderramin/tripboard/internal/domain"
	"github.com/alexanderramin/tripboard/internal/view"
)

const (
	summaryBarWidth   = 12
	summaryLabelWidth = 24
)

// bucketColumns are the short table headers for each bucket, in section order.
var bucketColumns = map[domain.Bucket]string{
	domain.BucketFocus:    "重點",
	domain.BucketSpot:     "景點",
	domain.BucketTransit:  "交通",
	domain.BucketFood:     "餐食",
	domain.BucketShopping: "逛街",
	domain.BucketBackup:   "備案",
	domain.BucketOther:    "其他",
}

// FormatSummary renders the terminal dashboard for a trip: hero stats, a
// per-day bucket table and the insight lists.
func FormatSummary(page *view.Page, sum *aggregate.TripSummary) string {
	var b strings.Builder

	if page.Subtitle != "" {
		b.WriteString(Dim(page.Subtitle) + "\n")
	}
	b.WriteString(Dim(page.Generated) + "\n\n")

	stats := make([]string, 0, len(page.Stats))
	for _, s := range page.Stats {
		stats = append(stats, fmt.Sprintf("%s %s", Dim(s.Key), Bold(s.Value)))
	}
	b.WriteString(strings.Join(stats, "   ") + "\n\n")

	b.WriteString(formatDayTable(sum))

	if len(page.Insights.Busiest) > 0 {
		b.WriteString("\n" + Header("最滿的兩天") + "\n")
		b.WriteString(formatBars(page.Insights.Busiest, sum.MaxDayLoad, StyleYellow))
	}

	b.WriteString("\n" + Header("跨區緊湊日") + "\n")
	if len(page.Insights.Tight) > 0 {
		b.WriteString(Bullets(page.Insights.Tight))
	} else {
		b.WriteString("  " + Dim(page.Insights.TightNote) + "\n")
	}

	b.WriteString("\n" + Header(fmt.Sprintf("餐食分布（%d）", page.Insights.FoodTotal)) + "\n")
	b.WriteString(formatBars(page.Insights.Food, maxValue(page.Insights.Food), StyleRed))
	if len(page.Insights.FoodExamples) > 0 {
		b.WriteString(Dim("  例："+strings.Join(page.Insights.FoodExamples, "、")) + "\n")
	}

	b.WriteString("\n" + Header("步行量") + "\n")
	b.WriteString(formatBars(page.Insights.Walk, sum.Walk.Max, StyleGreen))
	b.WriteString(Bullets(page.Insights.WalkTips))

	if len(page.Insights.Routes) > 0 {
		b.WriteString("\n" + Header("路線") + "\n")
		for _, r := range page.Insights.Routes {
			b.WriteString(fmt.Sprintf("  %s  %s\n", Bold(r.Day), strings.Join(r.Stops, " → ")))
		}
	}

	if sum.QueueRisk > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("  排隊風險：%d 項", sum.QueueRisk)) + "\n")
	}

	return RenderBox(page.Title, b.String())
}

func formatDayTable(sum *aggregate.TripSummary) string {
	headers := []string{"日"}
	align := []Align{AlignLeft}
	for _, bk := range domain.Buckets {
		headers = append(headers, bucketColumns[bk])
		align = append(align, AlignRight)
	}
	headers = append(headers, "步行", "合計", "")
	align = append(align, AlignRight, AlignRight, AlignLeft)

	rows := make([][]string, 0, len(sum.Days)+1)
	for _, d := range sum.Days {
		row := []string{Truncate(d.Label, summaryLabelWidth)}
		for _, bk := range domain.Buckets {
			row = append(row, countCell(bk, d.Counts.Get(bk)))
		}
		load := RenderBar(d.Total, sum.MaxDayLoad, summaryBarWidth, StyleAqua)
		if d.Tight {
			load += " " + StyleRed.Render("跨區")
		}
		row = append(row, strconv.Itoa(d.WalkHeavy), Bold(strconv.Itoa(d.Total)), load)
		rows = append(rows, row)
	}

	total := []string{Bold("全程")}
	for _, bk := range domain.Buckets {
		total = append(total, countCell(bk, sum.Counts.Get(bk)))
	}
	walk := 0
	for _, d := range sum.Walk.PerDay {
		walk += d.Count
	}
	total = append(total, strconv.Itoa(walk), Bold(strconv.Itoa(sum.Counts.Total())), "")
	rows = append(rows, total)

	return RenderTableAligned(headers, rows, align)
}

func countCell(b domain.Bucket, n int) string {
	if n == 0 {
		return Dim("·")
	}
	return BucketStyle(b).Render(strconv.Itoa(n))
}

func formatBars(rows []view.BarRow, max int, style lipgloss.Style) string {
	var b strings.Builder
	width := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Label); w > width {
			width = w
		}
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r.Label))
		b.WriteString(fmt.Sprintf("  %s%s  %s\n", r.Label, pad, RenderBar(r.Value, max, summaryBarWidth, style)))
	}
	return b.String()
}

func maxValue(rows []view.BarRow) int {
	m := 0
	for _, r := range rows {
		if r.Value > m {
			m = r.Value
		}
	}
	return m
}
