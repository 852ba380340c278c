package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/alexanderramin/tripboard/internal/view"
)

// ErrFontRequired is returned by PDF when no font file is given. The core
// PDF fonts cannot draw CJK text, so a UTF-8 TrueType font must be supplied.
var ErrFontRequired = errors.New("a UTF-8 TrueType font is required for PDF export")

const pdfFont = "trip"

// PDF writes a printable itinerary: header, hero stats, then every day with
// its warnings and bucket sections.
func PDF(w io.Writer, p *view.Page, fontPath string) error {
	if fontPath == "" {
		return ErrFontRequired
	}
	if _, err := os.Stat(fontPath); err != nil {
		return fmt.Errorf("reading font: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(p.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddUTF8Font(pdfFont, "", fontPath)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	pdf.AddPage()

	pdf.SetFont(pdfFont, "", 18)
	pdf.MultiCell(0, 9, p.Title, "", "", false)
	pdf.SetFont(pdfFont, "", 10)
	if p.Subtitle != "" {
		pdf.MultiCell(0, 5, p.Subtitle, "", "", false)
	}
	pdf.MultiCell(0, 5, p.Generated, "", "", false)
	pdf.Ln(3)

	stats := make([]string, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, s.Key+" "+s.Value)
	}
	pdf.SetFont(pdfFont, "", 11)
	pdf.MultiCell(0, 6, strings.Join(stats, "   "), "", "", false)
	pdf.Ln(4)

	for _, d := range p.Days {
		writeDay(pdf, &d)
	}

	if len(p.Transport) > 0 {
		pdf.SetFont(pdfFont, "", 13)
		pdf.MultiCell(0, 7, "交通", "", "", false)
		pdf.SetFont(pdfFont, "", 10)
		for _, t := range p.Transport {
			pdf.MultiCell(0, 5, "• "+strings.TrimPrefix(t.Key+"："+t.Value, "："), "", "", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func writeDay(pdf *gofpdf.Fpdf, d *view.DayCard) {
	pdf.SetFont(pdfFont, "", 14)
	pdf.MultiCell(0, 8, d.Label, "B", "", false)
	pdf.Ln(1)

	pdf.SetFont(pdfFont, "", 10)
	if len(d.Highlights) > 0 {
		pdf.MultiCell(0, 5, "今日重點："+strings.Join(d.Highlights, "、"), "", "", false)
	}
	if len(d.Route) > 0 {
		pdf.MultiCell(0, 5, "路線："+strings.Join(d.Route, " → "), "", "", false)
	}
	for _, w := range d.Warnings {
		line := "! " + w.Head
		if w.Detail != "" {
			line += "：" + w.Detail
		}
		pdf.MultiCell(0, 5, line, "", "", false)
	}

	for _, s := range d.Sections {
		pdf.Ln(1)
		pdf.SetFont(pdfFont, "", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("%s（%d 項）", s.Label, len(s.Items)), "", "", false)
		pdf.SetFont(pdfFont, "", 10)
		for _, it := range s.Items {
			name := it.Name
			if name == "" {
				name = "備註"
			}
			line := "• " + name
			if it.Note != "" {
				line += "：" + it.Note
			}
			pdf.SetX(15)
			pdf.MultiCell(0, 5, line, "", "", false)
		}
	}
	pdf.Ln(4)
}
