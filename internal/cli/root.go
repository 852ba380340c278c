package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/service"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Trips     service.TripService
	Snapshots service.SnapshotService

	Config     *config.Config
	ConfigPath string

	Logger *zap.Logger
	// Level is the logger's level; --verbose lowers it to debug.
	Level *zap.AtomicLevel

	// IsInteractive reports whether prompts and the TUI may be used.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title string) (bool, error)
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) settings() *config.Config {
	if a.Config == nil {
		a.Config = config.Default()
	}
	return a.Config
}

// NewRootCmd creates the top-level "tripboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "tripboard",
		Short: "Turn an itinerary JSON document into an interactive trip page",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.Level != nil {
				app.Level.SetLevel(zapcore.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newRenderCmd(app),
		newSummaryCmd(app),
		newValidateCmd(app),
		newSearchCmd(app),
		newServeCmd(app),
		newBrowseCmd(app),
		newExportCmd(app),
		newSnapshotCmd(app),
		newConfigCmd(app),
	)

	return root
}

// outputFlag registers the shared -o/--output flag.
func outputFlag(fs *pflag.FlagSet, p *string, def, usage string) {
	fs.StringVarP(p, "output", "o", def, usage)
}

// forceFlag registers the shared -f/--force flag.
func forceFlag(fs *pflag.FlagSet, p *bool, usage string) {
	fs.BoolVarP(p, "force", "f", false, usage)
}
