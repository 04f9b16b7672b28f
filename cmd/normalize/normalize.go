// Package normalize handles the single-file normalize command
package normalize

import (
	"context"
	"io"
	"path/filepath"

	"gagyebu/ledger-csv/cmd/common"
	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/fileutils"
	"gagyebu/ledger-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the normalize command
var Cmd = &cobra.Command{
	Use:   "normalize [file...]",
	Short: "Normalize expense spreadsheets into a canonical ledger",
	Long: `Normalize reads one or more CSV/XLSX expense exports, resolves their header
row (or falls back to positional columns), drops title and subtotal rows, parses
dates and amounts, fills blank categories from the keyword table and writes the
ledger in canonical column order.

Several inputs are appended in the order given; duplicates are kept.
The ledger is written to --output (CSV, or XLSX by extension) or to stdout.
When --output is a directory the file is named after the first input, as CSV.

Example:
  ledger-csv normalize -i 2026-01.xlsx -o ledger.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), root.Inputs(args), root.SharedFlags.Output,
			cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Run normalizes inputs and writes the merged ledger.
func Run(ctx context.Context, c *container.Container, inputs []string, output string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := common.LoadInputs(ctx, c, inputs)
	if err != nil {
		return err
	}

	common.ReportNotices(stderr, result.Notices)
	if output != "" && fileutils.DirectoryExists(output) {
		output = filepath.Join(output, fileutils.ReplaceExtension(filepath.Base(result.Files[0].Path), ".csv"))
	}
	if err := common.WriteLedger(c, result.Ledger, output, stdout); err != nil {
		return err
	}

	c.GetLogger().Info("Normalization completed",
		logging.F(logging.FieldCount, len(result.Ledger)),
		logging.F("files", len(result.Files)),
		logging.F("notices", len(result.Notices)))
	return nil
}
