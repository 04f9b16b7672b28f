// Package summary prints category and month totals for one or more ledgers
package summary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/cmd/common"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/logging"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary [file...]",
	Short: "Summarize spending by category and month",
	Long: `Summary normalizes the inputs and reports gross, discount and net totals per
major category, per (major, minor) pair and per month, together with every
category notice raised while reading. The text format prints won amounts with
thousands separators.

Example:
  ledger-csv summary -i exports/ --format yaml -o report.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), root.Inputs(args), format, root.SharedFlags.Output, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&format, "format", "json", "Report format (json, yaml or text)")
}

// Run writes the report to output, or to stdout when output is empty.
func Run(ctx context.Context, c *container.Container, inputs []string, format, output string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format = strings.ToLower(format)

	result, err := common.LoadInputs(ctx, c, inputs)
	if err != nil {
		return err
	}

	var sources []string
	for _, f := range result.Files {
		if f.Err == nil {
			sources = append(sources, f.Path)
		}
	}

	gen := c.GetReportGenerator()
	summary := gen.Summarize(result.Ledger, result.Notices, strings.Join(sources, ","))
	data, err := gen.GenerateReport(summary, format)
	if err != nil {
		return err
	}

	if output == "" {
		if !bytes.HasSuffix(data, []byte("\n")) {
			data = append(data, '\n')
		}
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0600); err != nil {
		return fmt.Errorf("failed to write report %s: %w", output, err)
	}
	c.GetLogger().Info("Report written",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldCount, len(result.Ledger)))
	return nil
}
