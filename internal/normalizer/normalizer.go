// Package normalizer turns a raw spreadsheet extract into a typed ledger:
// header resolution, row filtering, date and money coercion, keyword
// classification of blank categories and pairing enforcement.
//
// Normalize is a pure function of its input and the tables it was built with;
// running it on Ledger.ToRawTable output reproduces the same ledger.
package normalizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gagyebu/ledger-csv/internal/categorizer"
	"gagyebu/ledger-csv/internal/currencyutils"
	"gagyebu/ledger-csv/internal/dateutils"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/shopspring/decimal"
)

var (
	errUnrecognizedDate = errors.New("unrecognized date")
	errNotANumber       = errors.New("not a number")
)

// Options tune header detection and amount parsing.
type Options struct {
	// HeaderScanRows is how many leading rows are searched for a header.
	HeaderScanRows int
	// MinHeaderMatches is how many cells of a row must be known aliases for it
	// to count as the header row.
	MinHeaderMatches int
	// CurrencySuffixes are stripped from the end of amounts.
	CurrencySuffixes []string
}

// DefaultOptions returns the standard detection settings.
func DefaultOptions() Options {
	return Options{
		HeaderScanRows:   10,
		MinHeaderMatches: 2,
		CurrencySuffixes: currencyutils.DefaultSuffixes,
	}
}

// Normalizer holds the tables and collaborators for Normalize. It keeps no
// per-call state and is safe for concurrent use.
type Normalizer struct {
	tables      taxonomy.Tables
	categorizer *categorizer.Categorizer
	amounts     currencyutils.AmountParser
	opts        Options
	logger      logging.Logger
}

// NewNormalizer builds a Normalizer over copies of tables. A nil categorizer
// uses first-match keyword classification with an empty default bucket.
func NewNormalizer(tables taxonomy.Tables, cat *categorizer.Categorizer, opts Options, logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Default()
	}
	tables = tables.Clone()
	if cat == nil {
		cat = categorizer.NewKeywordCategorizer(tables.Rules, logger)
	}
	def := DefaultOptions()
	if opts.HeaderScanRows <= 0 {
		opts.HeaderScanRows = def.HeaderScanRows
	}
	if opts.MinHeaderMatches <= 0 {
		opts.MinHeaderMatches = def.MinHeaderMatches
	}
	return &Normalizer{
		tables:      tables,
		categorizer: cat,
		amounts:     currencyutils.NewAmountParser(opts.CurrencySuffixes),
		opts:        opts,
		logger:      logger,
	}
}

// Tree returns the category tree the normalizer enforces.
func (n *Normalizer) Tree() taxonomy.Tree {
	return n.tables.Tree
}

// Normalize converts table into a ledger. Unreadable cells degrade to blank
// values and non-transaction rows are dropped; the only error is an input
// holding values that are not cells at all, or a cancelled context.
func (n *Normalizer) Normalize(ctx context.Context, table models.RawTable) (models.Ledger, []models.Notice, error) {
	if err := checkCells(table); err != nil {
		return nil, nil, err
	}

	header := n.ResolveHeader(table)

	ledger := make(models.Ledger, 0, len(table.Rows))
	var notices []models.Notice
	dropped := 0

	for r := header.DataStart; r < len(table.Rows); r++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		row := rowView{table: table, row: r, header: header}
		if row.allBlank() {
			dropped++
			continue
		}
		gross, ok := n.amounts.ParseCell(row.cell(models.FieldGross))
		if !ok {
			n.logger.WithFields(
				logging.F(logging.FieldRow, r),
				logging.F(logging.FieldReason, "gross amount is not a number"),
			).Debug("Dropping row")
			dropped++
			continue
		}

		rec, recNotices := n.buildRecord(ctx, row, gross, len(ledger))
		ledger = append(ledger, rec)
		notices = append(notices, recNotices...)
	}

	n.logger.WithFields(
		logging.F(logging.FieldSource, table.Source),
		logging.F("header_row", header.HeaderRow),
		logging.F(logging.FieldCount, len(ledger)),
		logging.F("dropped", dropped),
		logging.F("notices", len(notices)),
	).Debug("Normalized table")

	return ledger, notices, nil
}

func (n *Normalizer) buildRecord(ctx context.Context, row rowView, gross decimal.Decimal, index int) (models.Record, []models.Notice) {
	rec := models.Record{
		PaymentMethod: row.text(models.FieldPaymentMethod),
		Description:   row.text(models.FieldDescription),
		Gross:         gross,
		Major:         row.text(models.FieldMajor),
		Minor:         row.text(models.FieldMinor),
		Note:          row.text(models.FieldNote),
	}

	dateCell := row.cell(models.FieldDate)
	if date, ok := dateutils.ParseCell(dateCell); ok {
		rec.Date = date
	} else if !models.IsBlank(dateCell) {
		n.logger.WithError(&parsererror.ParseError{
			Field: string(models.FieldDate),
			Value: models.CellText(dateCell),
			Err:   errUnrecognizedDate,
		}).WithField(logging.FieldRow, row.row).Debug("Leaving record undated")
	}

	discountCell := row.cell(models.FieldDiscount)
	if discount, ok := n.amounts.ParseCell(discountCell); ok {
		rec.Discount = discount.Abs()
	} else if !models.IsBlank(discountCell) {
		n.logger.WithError(&parsererror.ParseError{
			Field: string(models.FieldDiscount),
			Value: models.CellText(discountCell),
			Err:   errNotANumber,
		}).WithField(logging.FieldRow, row.row).Debug("Treating discount as zero")
	}

	// Negative gross marks a refund or cancellation: it nets to zero.
	if currencyutils.IsNegative(rec.Gross) {
		rec.Gross = rec.Gross.Abs()
		rec.Discount = rec.Gross
	}

	if net, ok := n.amounts.ParseCell(row.cell(models.FieldNet)); ok && !net.Equal(rec.Net()) {
		n.logger.WithFields(
			logging.F(logging.FieldRow, row.row),
			logging.F("given", net.String()),
			logging.F("computed", rec.Net().String()),
		).Debug("Recomputed net amount")
	}

	if rec.Major == "" || rec.Minor == "" {
		n.classify(ctx, row, &rec)
	}

	return rec, n.enforce(&rec, index)
}

// classify fills blank category fields. A blank minor under a set major only
// takes the classifier's minor when the classifier agrees on the major.
func (n *Normalizer) classify(ctx context.Context, row rowView, rec *models.Record) {
	tx := categorizer.Transaction{
		PaymentMethod: rec.PaymentMethod,
		Amount:        rec.Gross.String(),
		Date:          dateutils.FormatDate(rec.Date, ""),
		Note:          rec.Note,
	}
	// Non-text descriptions are not classified.
	if desc, ok := row.cell(models.FieldDescription).(string); ok {
		tx.Description = desc
	}

	res := n.categorizer.Categorize(ctx, tx)
	if res.Pair.IsZero() {
		return
	}
	switch {
	case rec.Major == "":
		rec.Major = res.Pair.Major
		if rec.Minor == "" {
			rec.Minor = res.Pair.Minor
		}
	case rec.Minor == "" && rec.Major == res.Pair.Major:
		rec.Minor = res.Pair.Minor
	}
}

// enforce applies the pairing rule and reports what it changed.
func (n *Normalizer) enforce(rec *models.Record, index int) []models.Notice {
	if rec.Major == "" {
		if rec.Minor == "" {
			return nil
		}
		notice := models.Notice{Index: index, Kind: models.NoticeOrphanMinor, Previous: rec.Minor}
		rec.Minor = ""
		n.logger.WithField(logging.FieldNotice, notice.String()).Debug("Cleared minor category")
		return []models.Notice{notice}
	}
	if !n.tables.Tree.HasMajor(rec.Major) {
		return []models.Notice{{
			Index: index,
			Kind:  models.NoticeUnknownMajor,
			Major: rec.Major,
			Minor: rec.Minor,
		}}
	}
	minor, corrected := n.tables.Tree.Enforce(rec.Major, rec.Minor)
	if !corrected {
		return nil
	}
	notice := models.Notice{
		Index:    index,
		Kind:     models.NoticeMinorCorrected,
		Major:    rec.Major,
		Minor:    minor,
		Previous: rec.Minor,
	}
	rec.Minor = minor
	n.logger.WithField(logging.FieldNotice, notice.String()).Debug("Corrected minor category")
	return []models.Notice{notice}
}

// rowView reads one data row through the header resolution.
type rowView struct {
	table  models.RawTable
	row    int
	header HeaderResolution
}

func (v rowView) cell(f models.Field) models.Cell {
	c, ok := v.header.Column(f)
	if !ok {
		return nil
	}
	return v.table.At(v.row, c)
}

func (v rowView) text(f models.Field) string {
	return strings.TrimSpace(models.CellText(v.cell(f)))
}

func (v rowView) allBlank() bool {
	for _, c := range v.header.Columns {
		if !models.IsBlank(v.table.At(v.row, c)) {
			return false
		}
	}
	return true
}

// checkCells rejects tables holding values no reader produces.
func checkCells(table models.RawTable) error {
	for r, row := range table.Rows {
		for c, cell := range row {
			if !models.IsSupportedCell(cell) {
				return &parsererror.InvalidFormatError{
					Source:         table.Source,
					ExpectedFormat: "rows of text, number, boolean, date or blank cells",
					Msg:            fmt.Sprintf("row %d column %d holds an unsupported %T value", r, c, cell),
				}
			}
		}
	}
	return nil
}
