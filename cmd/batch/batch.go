// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gagyebu/ledger-csv/cmd/common"
	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/internal/batch"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/fileutils"
	"gagyebu/ledger-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Options controls one batch run.
type Options struct {
	Inputs     []string
	OutputDir  string
	Name       string
	Format     string
	SplitMonth bool
}

var opts Options

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch [file|dir...]",
	Short: "Batch process files into consolidated ledgers",
	Long: `Batch process every CSV/XLSX file of the input directories and files, appending
their ledgers in order, and write the result to another directory.

Without --split-month a single file named after the covered date range is
written; with it, one file per calendar month ({name}_YYYY-MM) plus
{name}_unknown for undated records.

Example:
  ledger-csv batch -i exports/ -o ledgers/ --split-month`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := opts
		o.Inputs = root.Inputs(args)
		o.OutputDir = root.SharedFlags.Output
		written, err := Run(cmd.Context(), root.GetContainer(), o, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		root.Log.Info(fmt.Sprintf("Batch processing completed. %d files created.", len(written)))
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&opts.Name, "name", "ledger", "Base name of the output files")
	Cmd.Flags().StringVar(&opts.Format, "format", "csv", "Output format (csv or xlsx)")
	Cmd.Flags().BoolVar(&opts.SplitMonth, "split-month", false, "Write one file per calendar month")
}

// Run merges the inputs and writes the consolidated files. It returns the
// paths written.
func Run(ctx context.Context, c *container.Container, o Options, stderr io.Writer) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.OutputDir == "" {
		return nil, fmt.Errorf("output directory must be specified")
	}
	ext, err := extensionFor(o.Format)
	if err != nil {
		return nil, err
	}
	if err := fileutils.EnsureDirectoryExists(o.OutputDir); err != nil {
		return nil, err
	}

	logger := c.GetLogger()
	result, err := common.LoadInputs(ctx, c, o.Inputs)
	if err != nil {
		return nil, err
	}
	for _, f := range result.Failed() {
		fmt.Fprintf(stderr, "skipped %s: %v\n", f.Path, f.Err)
	}
	common.ReportNotices(stderr, result.Notices)

	aggregator := c.GetAggregator()
	groups := []batch.MonthGroup{{Month: result.Range.String(), Ledger: result.Ledger}}
	if o.SplitMonth {
		groups = aggregator.SplitByMonth(result.Ledger)
	}

	var written []string
	for _, g := range groups {
		path := filepath.Join(o.OutputDir, aggregator.GenerateOutputFilename(o.Name, g.Month, ext))
		if err := c.GetExporter().WriteFile(g.Ledger, path); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("Created consolidated file",
			logging.F(logging.FieldMonth, g.Month),
			logging.F(logging.FieldCount, len(g.Ledger)),
			logging.F(logging.FieldOutputFile, path))
		written = append(written, path)
	}
	return written, nil
}

func extensionFor(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return ".csv", nil
	case "xlsx", "excel":
		return ".xlsx", nil
	}
	return "", fmt.Errorf("unsupported output format: %s (expected csv or xlsx)", format)
}
