// Package common provides the ledger export shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gagyebu/ledger-csv/internal/dateutils"
	"gagyebu/ledger-csv/internal/fileutils"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// LedgerRow is one exported ledger line. Tags carry the canonical Korean
// headers in canonical column order.
type LedgerRow struct {
	Date          string `csv:"날짜"`
	PaymentMethod string `csv:"결제수단"`
	Description   string `csv:"지출 내용"`
	Gross         string `csv:"결제금액"`
	Major         string `csv:"대분류"`
	Minor         string `csv:"소분류"`
	Discount      string `csv:"할인"`
	Net           string `csv:"실지출"`
	Note          string `csv:"비고"`
}

// Exporter writes ledgers as CSV or XLSX.
type Exporter struct {
	delimiter  rune
	dateFormat string
	logger     logging.Logger
}

// NewExporter creates an Exporter. A zero delimiter means ',' and an empty
// date format means YYYY-MM-DD.
func NewExporter(delimiter rune, dateFormat string, logger logging.Logger) *Exporter {
	if delimiter == 0 {
		delimiter = ','
	}
	if dateFormat == "" {
		dateFormat = dateutils.DateLayoutISO
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Exporter{delimiter: delimiter, dateFormat: dateFormat, logger: logger}
}

// ToRows renders the ledger into export rows. Amounts are plain decimals and
// undated records get an empty date.
func (e *Exporter) ToRows(ledger models.Ledger) []LedgerRow {
	rows := make([]LedgerRow, len(ledger))
	for i, r := range ledger {
		rows[i] = LedgerRow{
			Date:          dateutils.FormatDate(r.Date, e.dateFormat),
			PaymentMethod: r.PaymentMethod,
			Description:   r.Description,
			Gross:         r.Gross.String(),
			Major:         r.Major,
			Minor:         r.Minor,
			Discount:      r.Discount.String(),
			Net:           r.Net().String(),
			Note:          r.Note,
		}
	}
	return rows
}

// WriteCSV writes the ledger with a canonical header row.
func (e *Exporter) WriteCSV(ledger models.Ledger, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.delimiter

	rows := e.ToRows(ledger)
	if len(rows) == 0 {
		// gocsv writes nothing at all for an empty slice
		if err := csvWriter.Write(headerLine()); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes the ledger to path, as XLSX when the extension says so and
// as CSV otherwise.
func (e *Exporter) WriteFile(ledger models.Ledger, path string) error {
	logger := e.logger.WithFields(
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(ledger)),
	)
	logger.Info("Writing ledger")

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		err = e.WriteXLSX(ledger, file)
	default:
		err = e.WriteCSV(ledger, file)
	}
	if err != nil {
		logger.WithError(err).Error("Failed to write ledger")
		return err
	}
	return nil
}

func headerLine() []string {
	out := make([]string, len(models.CanonicalFields))
	for i, f := range models.CanonicalFields {
		out[i] = string(f)
	}
	return out
}
