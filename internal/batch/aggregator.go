// Package batch merges the ledgers of several input files and splits a ledger
// into calendar months.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gagyebu/ledger-csv/internal/dateutils"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
)

// UnknownMonth is the month key of records without a date.
const UnknownMonth = "unknown"

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// MonthOf returns the YYYY-MM month of r, or UnknownMonth when it is undated.
func MonthOf(r models.Record) string {
	if !r.HasDate() {
		return UnknownMonth
	}
	return dateutils.MonthKey(r.Date)
}

// RangeOf returns the date range covered by the dated records of a ledger.
func RangeOf(l models.Ledger) DateRange {
	start, end := l.DateRange()
	return DateRange{Start: start, End: end}
}

// LoadFunc reads and normalizes one input file.
type LoadFunc func(ctx context.Context, path string) (models.Ledger, []models.Notice, error)

// FileResult records what one input file contributed to a merge.
type FileResult struct {
	Path  string
	Count int
	Err   error
}

// MergeResult is the outcome of merging several files.
type MergeResult struct {
	Ledger  models.Ledger
	Notices []models.Notice
	Files   []FileResult
	Range   DateRange
}

// Failed returns the files that could not be loaded.
func (r MergeResult) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// MonthGroup is the slice of a ledger falling in one calendar month.
type MonthGroup struct {
	Month  string
	Ledger models.Ledger
}

// BatchAggregator merges and splits ledgers.
type BatchAggregator struct {
	logger logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	if logger == nil {
		logger = logging.Default()
	}
	return &BatchAggregator{
		logger: logger,
	}
}

// Merge loads every file in order and appends the ledgers. A file that fails
// to load is skipped and reported in the result. Duplicates are kept; notice
// indexes are rebased onto the merged ledger.
func (ba *BatchAggregator) Merge(ctx context.Context, files []string, load LoadFunc) (MergeResult, error) {
	var result MergeResult

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		ba.logger.Debug("Processing file", logging.F(logging.FieldFile, filepath.Base(file)))

		ledger, notices, err := load(ctx, file)
		if err != nil {
			ba.logger.WithError(err).Error("Failed to load file", logging.F(logging.FieldFile, file))
			result.Files = append(result.Files, FileResult{Path: file, Err: err})
			continue
		}

		offset := len(result.Ledger)
		for _, n := range notices {
			n.Index += offset
			result.Notices = append(result.Notices, n)
		}
		result.Ledger = append(result.Ledger, ledger...)
		result.Files = append(result.Files, FileResult{Path: file, Count: len(ledger)})

		ba.logger.Debug("Loaded records from file",
			logging.F(logging.FieldCount, len(ledger)),
			logging.F(logging.FieldFile, filepath.Base(file)))
	}

	ba.detectAndLogDuplicates(result.Ledger)
	result.Range = RangeOf(result.Ledger)

	ba.logger.Info("Merged ledgers",
		logging.F(logging.FieldCount, len(result.Ledger)),
		logging.F("files", len(files)),
		logging.F("failed", len(result.Failed())))

	return result, nil
}

// SplitByMonth groups records by their YYYY-MM month, keeping input order
// within each group. Months are returned in ascending order with undated
// records last under UnknownMonth.
func (ba *BatchAggregator) SplitByMonth(l models.Ledger) []MonthGroup {
	index := make(map[string]int)
	var groups []MonthGroup

	for _, r := range l {
		key := MonthOf(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{Month: key})
		}
		groups[i].Ledger = append(groups[i].Ledger, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Month == UnknownMonth {
			return false
		}
		if groups[j].Month == UnknownMonth {
			return true
		}
		return groups[i].Month < groups[j].Month
	})

	ba.logger.Debug("Split ledger by month", logging.F(logging.FieldCount, len(groups)))
	return groups
}

// GenerateOutputFilename names the file of one month group:
// {base}_{month}{ext}. An empty month yields {base}{ext}.
func (ba *BatchAggregator) GenerateOutputFilename(base, month, ext string) string {
	base = sanitize(base)
	if month == "" {
		return base + ext
	}
	return fmt.Sprintf("%s_%s%s", base, month, ext)
}

// detectAndLogDuplicates warns about records sharing date, gross and
// description. Nothing is removed.
func (ba *BatchAggregator) detectAndLogDuplicates(l models.Ledger) {
	type key struct {
		date        string
		gross       string
		description string
	}
	seen := make(map[key]bool, len(l))
	duplicateCount := 0

	for _, r := range l {
		k := key{
			date:        r.Date.Format("2006-01-02"),
			gross:       r.Gross.String(),
			description: strings.ToLower(strings.TrimSpace(r.Description)),
		}
		if seen[k] {
			duplicateCount++
			ba.logger.Debug("Potential duplicate record",
				logging.F("date", k.date),
				logging.F("amount", k.gross),
				logging.F("description", r.Description))
			continue
		}
		seen[k] = true
	}

	if duplicateCount > 0 {
		ba.logger.Warn("Found potential duplicate records", logging.F(logging.FieldCount, duplicateCount))
	}
}

func sanitize(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		return "ledger"
	}
	return name
}
