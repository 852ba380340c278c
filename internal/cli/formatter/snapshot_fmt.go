package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alexanderramin/tripboard/internal/domain"
)

// FormatSnapshotList renders saved snapshots, newest first as given.
func FormatSnapshotList(snaps []*domain.Snapshot, now time.Time) string {
	if len(snaps) == 0 {
		return Dim("No snapshots saved yet. Run `tripboard snapshot save <source>`.") + "\n"
	}

	headers := []string{"ID", "TITLE", "DAYS", "ITEMS", "SIZE", "SAVED"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		size := Dim("--")
		if s.Document != nil {
			size = humanize.Bytes(uint64(len(s.Document)))
		}
		rows = append(rows, []string{
			StyleAqua.Render(s.ShortID()),
			Bold(Truncate(s.Title, 28)),
			strconv.Itoa(s.DayCount),
			strconv.Itoa(s.ItemCount),
			size,
			Dim(humanize.RelTime(s.ImportedAt, now, "ago", "from now")),
		})
	}
	return RenderTableAligned(headers, rows, align)
}

// FormatSnapshot renders a single snapshot with its stored per-day stats.
func FormatSnapshot(s *domain.Snapshot, stats []domain.DayStat) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:      "), s.ID))
	if s.Subtitle != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Subtitle:"), s.Subtitle))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Source:  "), s.Source))
	if s.GeneratedOn != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Created: "), s.GeneratedOn))
	}
	b.WriteString(fmt.Sprintf("%s %s (%s)\n", Dim("Saved:   "),
		s.ImportedAt.Local().Format("2006-01-02 15:04"), humanize.Time(s.ImportedAt)))
	b.WriteString(fmt.Sprintf("%s %d days, %s items, %s\n", Dim("Size:    "),
		s.DayCount, humanize.Comma(int64(s.ItemCount)), humanize.Bytes(uint64(len(s.Document)))))

	if len(stats) > 0 {
		b.WriteString("\n")
		headers := []string{"日"}
		align := []Align{AlignLeft}
		for _, bk := range domain.Buckets {
			headers = append(headers, bucketColumns[bk])
			align = append(align, AlignRight)
		}
		headers = append(headers, "合計")
		align = append(align, AlignRight)

		rows := make([][]string, 0, len(stats))
		for _, st := range stats {
			row := []string{Truncate(st.DayLabel, summaryLabelWidth)}
			for _, bk := range domain.Buckets {
				row = append(row, countCell(bk, st.Counts[bk]))
			}
			row = append(row, Bold(strconv.Itoa(st.Total)))
			rows = append(rows, row)
		}
		b.WriteString(RenderTableAligned(headers, rows, align))
	}

	return RenderBox(s.Title, b.String())
}
