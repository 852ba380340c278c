package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/tripboard/internal/cli/formatter"
	"github.com/alexanderramin/tripboard/internal/importer"
	"github.com/alexanderramin/tripboard/internal/render"
	"github.com/alexanderramin/tripboard/internal/watch"
)

// maxParallelRenders bounds concurrent document renders.
const maxParallelRenders = 4

// errPageFailed marks a document that loaded but could not be rendered. Its
// output still receives the failure page.
var errPageFailed = errors.New("page could not be rendered")

// renderPage is swapped in tests to force a rendering failure.
var renderPage = render.Page

type renderJob struct {
	source string
	output string
}

func newRenderCmd(app *App) *cobra.Command {
	var (
		output    string
		force     bool
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "render <source>...",
		Short: "Render itinerary documents to HTML pages",
		Long: `Render one or more itinerary documents (file paths, "-" for stdin, or
http(s) URLs) to self-contained HTML pages.

With one source, -o names the output file. With several, -o names the
output directory and each page is written as <name>.html.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := planRenderJobs(args, output, app.settings().OutputPath)
			if err != nil {
				return err
			}
			jobs, err = app.confirmOverwrites(jobs, force)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to render."))
				return nil
			}

			ctx := cmd.Context()
			if err := app.renderAll(ctx, cmd.OutOrStdout(), jobs); err != nil && !watchMode {
				return err
			}
			if !watchMode {
				return nil
			}
			return app.watchRenders(ctx, cmd.OutOrStdout(), jobs)
		},
	}

	outputFlag(cmd.Flags(), &output, "", "Output file, or directory when rendering several sources")
	forceFlag(cmd.Flags(), &force, "Overwrite existing files without asking")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-render when a local source changes")

	return cmd
}

// planRenderJobs pairs each source with its output path.
func planRenderJobs(sources []string, output, defaultOutput string) ([]renderJob, error) {
	if len(sources) == 1 {
		if output == "" {
			output = defaultOutput
		}
		return []renderJob{{source: sources[0], output: output}}, nil
	}

	dir := output
	if dir == "" {
		dir = "."
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("output %s is a file; rendering %d sources needs a directory", dir, len(sources))
	}

	jobs := make([]renderJob, 0, len(sources))
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		if src == "-" {
			return nil, fmt.Errorf("stdin can only be rendered on its own")
		}
		out := filepath.Join(dir, pageName(src))
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, src, out)
		}
		seen[out] = src
		jobs = append(jobs, renderJob{source: src, output: out})
	}
	return jobs, nil
}

// pageName derives "<name>.html" from a file path or URL.
func pageName(source string) string {
	base := filepath.Base(source)
	if importer.IsRemote(source) {
		if u, err := url.Parse(source); err == nil {
			base = path.Base(u.Path)
		}
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "index"
	}
	return base + ".html"
}

// confirmOverwrites drops jobs whose output exists and the user declined
// to replace. Without a terminal an existing output requires --force.
func (a *App) confirmOverwrites(jobs []renderJob, force bool) ([]renderJob, error) {
	if force {
		return jobs, nil
	}
	kept := jobs[:0]
	for _, j := range jobs {
		if _, err := os.Stat(j.output); errors.Is(err, os.ErrNotExist) {
			kept = append(kept, j)
			continue
		}
		if !a.interactive() {
			return nil, fmt.Errorf("%s already exists (use --force to overwrite)", j.output)
		}
		ok, err := a.confirm(fmt.Sprintf("Overwrite %s?", j.output))
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, j)
		}
	}
	return kept, nil
}

// renderAll renders jobs concurrently. A source that fails to load still
// produces its failure page; load and render errors are reported after every
// job ran.
func (a *App) renderAll(ctx context.Context, out io.Writer, jobs []renderJob) error {
	var (
		mu       sync.Mutex
		pageErrs []error
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for _, j := range jobs {
		g.Go(func() error {
			line, err := a.renderOne(ctx, j)
			if err != nil && !wroteFailurePage(err) {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				pageErrs = append(pageErrs, err)
			}
			fmt.Fprintln(out, line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(pageErrs...)
}

func wroteFailurePage(err error) bool {
	return errors.Is(err, importer.ErrLoadFailed) || errors.Is(err, errPageFailed)
}

// renderOne writes a single page and returns the status line for it.
func (a *App) renderOne(ctx context.Context, j renderJob) (string, error) {
	logger := a.logger().With(zap.String("source", j.source))

	var buf bytes.Buffer
	report, pageErr := a.Trips.Build(ctx, j.source)
	if pageErr != nil && !errors.Is(pageErr, importer.ErrLoadFailed) {
		return "", pageErr
	}
	if pageErr == nil {
		for _, f := range report.Findings {
			logger.Warn("document finding", zap.Error(f))
		}
		if err := renderPage(&buf, report.Page); err != nil {
			logger.Error("rendering page", zap.Error(err))
			pageErr = fmt.Errorf("%w: %s: %w", errPageFailed, j.source, err)
		}
	}
	if pageErr != nil {
		buf.Reset()
		if err := render.Failure(&buf, a.settings().Content.LoadError); err != nil {
			return "", err
		}
	}

	if dir := filepath.Dir(j.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(j.output, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", j.output, err)
	}
	logger.Debug("page written", zap.String("output", j.output), zap.Int("bytes", buf.Len()))

	if pageErr != nil {
		reason := "load failed"
		if errors.Is(pageErr, errPageFailed) {
			reason = "render failed"
		}
		return formatter.StyleRed.Render("✘ ") + fmt.Sprintf("%s → %s %s", j.source, j.output,
			formatter.Dim("("+reason+", wrote error page)")), pageErr
	}
	return formatter.StyleGreen.Render("✔ ") + fmt.Sprintf("%s → %s %s", j.source, j.output,
		formatter.Dim(fmt.Sprintf("(%d days, %s)", report.Summary.DayCount, humanize.Bytes(uint64(buf.Len()))))), nil
}

// watchRenders re-renders a job whenever its local source settles after a
// change. Remote sources are rendered once and not watched.
func (a *App) watchRenders(ctx context.Context, out io.Writer, jobs []renderJob) error {
	byPath := make(map[string]renderJob, len(jobs))
	var paths []string
	for _, j := range jobs {
		if j.source == "-" || importer.IsRemote(j.source) {
			a.logger().Warn("not watching remote source", zap.String("source", j.source))
			continue
		}
		abs, err := filepath.Abs(j.source)
		if err != nil {
			return err
		}
		byPath[abs] = j
		paths = append(paths, j.source)
	}
	if len(paths) == 0 {
		return fmt.Errorf("--watch needs at least one local file source")
	}

	var mu sync.Mutex
	w, err := watch.New(paths, a.watchDebounce(), a.logger(), func(ctx context.Context, p string) {
		j, ok := byPath[p]
		if !ok {
			return
		}
		line, err := a.renderOne(ctx, j)
		mu.Lock()
		defer mu.Unlock()
		if line != "" {
			fmt.Fprintln(out, line)
		}
		if err != nil {
			a.logger().Error("re-render failed", zap.String("source", j.source), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Watching %d file(s). Press Ctrl+C to stop.", len(paths))))
	return w.Run(ctx)
}

func (a *App) watchDebounce() time.Duration {
	d, err := time.ParseDuration(a.settings().Server.WatchDebounce)
	if err != nil || d <= 0 {
		return watch.DefaultDebounce
	}
	return d
}
