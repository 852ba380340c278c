package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripboard/internal/cli/formatter"
	"github.com/alexanderramin/tripboard/internal/render"
)

func newSnapshotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "Save and revisit versions of an itinerary",
	}

	cmd.AddCommand(
		newSnapshotSaveCmd(app),
		newSnapshotListCmd(app),
		newSnapshotShowCmd(app),
		newSnapshotRenderCmd(app),
		newSnapshotDeleteCmd(app),
	)

	return cmd
}

func (a *App) requireSnapshots() error {
	if a.Snapshots == nil {
		return fmt.Errorf("snapshot storage is not available")
	}
	return nil
}

func newSnapshotSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <source>",
		Short: "Store the current document and its per-day counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSnapshots(); err != nil {
				return err
			}
			snap, err := app.Snapshots.Save(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s %s %s\n",
				formatter.StyleAqua.Render(snap.ShortID()),
				formatter.Bold(snap.Title),
				formatter.Dim(fmt.Sprintf("(%d days, %d items)", snap.DayCount, snap.ItemCount)))
			return nil
		},
	}
}

func newSnapshotListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved snapshots, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSnapshots(); err != nil {
				return err
			}
			snaps, err := app.Snapshots.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshotList(snaps, time.Now()))
			return nil
		},
	}
}

func newSnapshotShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a snapshot and its per-day counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSnapshots(); err != nil {
				return err
			}
			snap, stats, err := app.Snapshots.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSnapshot(snap, stats))
			return nil
		},
	}
}

func newSnapshotRenderCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a saved snapshot to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSnapshots(); err != nil {
				return err
			}
			report, err := app.Snapshots.Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := render.Page(&buf, report.Page); err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", report.Source, output)
			return nil
		},
	}

	outputFlag(cmd.Flags(), &output, "", "Output file (default stdout)")

	return cmd
}

func newSnapshotDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSnapshots(); err != nil {
				return err
			}
			ctx := cmd.Context()
			snap, _, err := app.Snapshots.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s without --force", snap.ShortID())
				}
				ok, err := app.confirm(fmt.Sprintf("Delete snapshot %s (%s)?", snap.ShortID(), snap.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Kept."))
					return nil
				}
			}
			if err := app.Snapshots.Delete(ctx, snap.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", snap.ShortID())
			return nil
		},
	}

	forceFlag(cmd.Flags(), &force, "Delete without asking")

	return cmd
}
