// Package render writes a view.Page as a self-contained HTML document or a
// printable PDF.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alexanderramin/tripboard/internal/view"
)

// DefaultLoadError is shown when the itinerary cannot be loaded.
const DefaultLoadError = "資料載入失敗，請確認 data.json 與檔案路徑。"

//go:embed assets
var assets embed.FS

var (
	pageCSS = template.CSS(mustRead("assets/style.css"))
	pageJS  = template.JS(mustRead("assets/app.js"))

	templates = template.Must(template.New("tripboard").
			Funcs(template.FuncMap{"join": strings.Join}).
			ParseFS(assets, "assets/*.html.tmpl"))
)

func mustRead(name string) string {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("render: missing embedded asset %s: %v", name, err))
	}
	return string(b)
}

type pageData struct {
	Page *view.Page
	CSS  template.CSS
	JS   template.JS
}

type failureData struct {
	Title   string
	Message string
	CSS     template.CSS
}

// Page writes the full interactive page. Output is buffered so a template
// error never leaves a half-written document behind.
func Page(w io.Writer, p *view.Page) error {
	return execute(w, "page", pageData{Page: p, CSS: pageCSS, JS: pageJS})
}

// Failure writes the page shown when loading failed: a single message and
// no day cards. An empty msg uses DefaultLoadError.
func Failure(w io.Writer, msg string) error {
	if msg == "" {
		msg = DefaultLoadError
	}
	return execute(w, "failure", failureData{Title: "行程", Message: msg, CSS: pageCSS})
}

func execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
