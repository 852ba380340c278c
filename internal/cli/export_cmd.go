package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripboard/internal/cli/formatter"
	"github.com/alexanderramin/tripboard/internal/render"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the itinerary in other formats",
	}
	cmd.AddCommand(newExportPDFCmd(app))
	return cmd
}

func newExportPDFCmd(app *App) *cobra.Command {
	var (
		output string
		font   string
	)

	cmd := &cobra.Command{
		Use:   "pdf <source>",
		Short: "Write a printable PDF itinerary",
		Long: `Write a printable PDF itinerary. PDF output embeds a UTF-8 TrueType
font, so --font must point at a TTF that covers the document's script
(for CJK text, e.g. Noto Sans TC).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if font == "" {
				font = os.Getenv("TRIPBOARD_PDF_FONT")
			}
			report, err := app.Trips.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := render.PDF(&buf, report.Page, font); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔ ")+
				fmt.Sprintf("%s → %s %s", args[0], output, formatter.Dim("("+humanize.Bytes(uint64(buf.Len()))+")")))
			return nil
		},
	}

	outputFlag(cmd.Flags(), &output, "itinerary.pdf", "Output PDF path")
	cmd.Flags().StringVar(&font, "font", "", "UTF-8 TTF font file (default $TRIPBOARD_PDF_FONT)")

	return cmd
}
