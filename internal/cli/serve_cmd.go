package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/tripboard/internal/cli/formatter"
	"github.com/alexanderramin/tripboard/internal/importer"
	"github.com/alexanderramin/tripboard/internal/server"
	"github.com/alexanderramin/tripboard/internal/watch"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr      string
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "serve <source>",
		Short: "Serve the trip page and its JSON data over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}
			source := args[0]
			if source == "-" {
				return fmt.Errorf("serve needs a file or URL source, not stdin")
			}

			srv := server.New(app.Trips, source, server.Options{
				AllowedOrigins: cfg.Server.AllowedOrigins,
				LoadError:      cfg.Content.LoadError,
			}, app.logger())

			ctx := cmd.Context()
			if err := srv.Reload(ctx); err != nil {
				if !errors.Is(err, importer.ErrLoadFailed) {
					return err
				}
				// Keep serving: the page shows the load error until the
				// source is fixed.
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("warning: "+err.Error()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", source, addr)

			var w *watch.Watcher
			if watchMode {
				if importer.IsRemote(source) {
					return fmt.Errorf("--watch needs a local file source")
				}
				var err error
				w, err = watch.New([]string{source}, app.watchDebounce(), app.logger(), func(ctx context.Context, _ string) {
					if err := srv.Reload(ctx); err != nil {
						app.logger().Warn("reload failed", zap.Error(err))
					}
				})
				if err != nil {
					return err
				}
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(ctx, addr)
			})
			if w != nil {
				g.Go(func() error {
					return w.Run(ctx)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Reload when the source file changes")

	return cmd
}
