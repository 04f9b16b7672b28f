// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"gagyebu/ledger-csv/internal/batch"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/fileutils"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
)

// InputExtensions are the file types picked up from input directories.
var InputExtensions = []string{".csv", ".tsv", ".xlsx", ".xlsm"}

// LoadInputs expands directories among paths and merges every file's ledger
// in order. It fails when no input is given or every file failed to load.
func LoadInputs(ctx context.Context, c *container.Container, paths []string) (batch.MergeResult, error) {
	if len(paths) == 0 {
		return batch.MergeResult{}, fmt.Errorf("at least one input file is required")
	}

	files, err := fileutils.ExpandInputs(paths, InputExtensions...)
	if err != nil {
		return batch.MergeResult{}, err
	}
	if len(files) == 0 {
		return batch.MergeResult{}, fmt.Errorf("no supported input files found in %v", paths)
	}

	result, err := c.GetAggregator().Merge(ctx, files, c.LoadFile)
	if err != nil {
		return result, err
	}
	if failed := result.Failed(); len(failed) == len(files) {
		return result, fmt.Errorf("no input could be read: %w", failed[0].Err)
	}
	return result, nil
}

// WriteLedger writes the ledger to output, or as CSV to stdout when output is
// empty.
func WriteLedger(c *container.Container, ledger models.Ledger, output string, stdout io.Writer) error {
	if output == "" {
		return c.GetExporter().WriteCSV(ledger, stdout)
	}
	if err := c.GetExporter().WriteFile(ledger, output); err != nil {
		return err
	}
	c.GetLogger().Info("Ledger written",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldCount, len(ledger)))
	return nil
}

// ReportNotices prints each notice on its own line.
func ReportNotices(w io.Writer, notices []models.Notice) {
	for _, n := range notices {
		fmt.Fprintf(w, "notice: %s\n", n)
	}
}
