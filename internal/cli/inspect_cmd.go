package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripboard/internal/cli/formatter"
	"github.com/alexanderramin/tripboard/internal/render"
	"github.com/alexanderramin/tripboard/internal/search"
)

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <source>",
		Short: "Show the trip dashboard in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Trips.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(report.Page, report.Summary))
			return nil
		},
	}
}

func newValidateCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <source>",
		Short: "Check an itinerary document for suspicious content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Trips.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFindings(args[0], report.Findings))
			if strict && len(report.Findings) > 0 {
				return fmt.Errorf("%d finding(s) in %s", len(report.Findings), args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when there are findings")

	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <source> <query>",
		Short: "List the days whose card mentions query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Trips.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := render.Page(&buf, report.Page); err != nil {
				return err
			}
			idx, err := search.NewIndex(&buf)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMatches(args[1], idx.Filter(args[1]), idx.Len()))
			return nil
		},
	}
}
