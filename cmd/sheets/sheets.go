// Package sheets normalizes a ledger read from a Google Sheets range
package sheets

import (
	"context"
	"fmt"
	"io"

	"gagyebu/ledger-csv/cmd/common"
	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/sheetsource"

	"github.com/spf13/cobra"
)

var (
	spreadsheet string
	sheetRange  string
)

// Cmd represents the sheets command
var Cmd = &cobra.Command{
	Use:   "sheets",
	Short: "Normalize a household ledger kept in Google Sheets",
	Long: `Sheets reads a range of a Google spreadsheet with the configured service
account (GOOGLE_APPLICATION_CREDENTIALS) or API key (GOOGLE_API_KEY), runs it
through the same header detection and classification as file inputs and writes
the canonical ledger.

Example:
  ledger-csv sheets --spreadsheet https://docs.google.com/spreadsheets/d/<id>/edit --range '가계부!A1:J' -o ledger.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		src, err := c.NewSheetSource(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		return Run(cmd.Context(), c, src, spreadsheet, sheetRange, root.SharedFlags.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	Cmd.Flags().StringVar(&spreadsheet, "spreadsheet", "", "Spreadsheet ID or URL")
	Cmd.Flags().StringVar(&sheetRange, "range", "A1:Z", "Range in A1 notation, optionally prefixed by the sheet name")
	_ = Cmd.MarkFlagRequired("spreadsheet")
}

// Run fetches the range from src, normalizes it and writes the ledger.
func Run(ctx context.Context, c *container.Container, src *sheetsource.Source, spreadsheet, rng, output string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := src.Fetch(ctx, spreadsheet, rng)
	if err != nil {
		return err
	}

	ledger, notices, err := c.GetNormalizer().Normalize(ctx, table)
	if err != nil {
		return err
	}
	c.GetLogger().Info("Normalized sheet",
		logging.F(logging.FieldSource, table.Source),
		logging.F(logging.FieldCount, len(ledger)))

	common.ReportNotices(stderr, notices)
	return common.WriteLedger(c, ledger, output, stdout)
}
