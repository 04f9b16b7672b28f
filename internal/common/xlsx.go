package common

import (
	"fmt"
	"io"

	"gagyebu/ledger-csv/internal/models"

	"github.com/xuri/excelize/v2"
)

// LedgerSheet is the worksheet name used for XLSX exports.
const LedgerSheet = "가계부"

// xlsxDateFormat is the Excel number format matching DateLayoutISO.
const xlsxDateFormat = "yyyy-mm-dd"

// WriteXLSX writes the ledger as a single-sheet workbook. Dates are real date
// cells and amounts are numbers, so the export reads back losslessly.
func (e *Exporter) WriteXLSX(ledger models.Ledger, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", LedgerSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	header := make([]interface{}, len(models.CanonicalFields))
	for i, field := range models.CanonicalFields {
		header[i] = string(field)
	}
	if err := f.SetSheetRow(LedgerSheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	dateFmt := xlsxDateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("error creating date style: %w", err)
	}

	for i, r := range ledger {
		row := []interface{}{
			nil,
			r.PaymentMethod,
			r.Description,
			r.Gross.InexactFloat64(),
			r.Major,
			r.Minor,
			r.Discount.InexactFloat64(),
			r.Net().InexactFloat64(),
			r.Note,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(LedgerSheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
		if !r.HasDate() {
			continue
		}
		if err := f.SetCellValue(LedgerSheet, cell, r.Date); err != nil {
			return fmt.Errorf("error writing date of row %d: %w", i, err)
		}
		if err := f.SetCellStyle(LedgerSheet, cell, cell, dateStyle); err != nil {
			return fmt.Errorf("error styling date of row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
