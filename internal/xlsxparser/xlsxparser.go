// Package xlsxparser reads one worksheet of an Excel workbook into a raw table.
package xlsxparser

import (
	"fmt"
	"io"
	"strconv"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parser"
	"gagyebu/ledger-csv/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Parser reads worksheets using raw cell values, so that date cells arrive as
// serial numbers instead of locale-formatted text.
type Parser struct {
	parser.BaseParser
	sheet string
}

// NewParser creates an XLSX parser. An empty sheet selects the first worksheet.
func NewParser(sheet string, logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		sheet:      sheet,
	}
}

// Parse implements parser.Parser.
func (p *Parser) Parse(r io.Reader) (models.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.RawTable{}, &parsererror.InvalidFormatError{
			Source:         "xlsx",
			ExpectedFormat: "XLSX workbook",
			Msg:            "cannot open workbook",
			Err:            err,
		}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.GetLogger().WithError(cerr).Warn("Failed to close workbook")
		}
	}()

	sheet, err := p.pickSheet(f)
	if err != nil {
		return models.RawTable{}, err
	}

	values, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.RawTable{}, &parsererror.InvalidFormatError{
			Source:         "xlsx",
			ExpectedFormat: "XLSX worksheet",
			Msg:            fmt.Sprintf("cannot read sheet '%s'", sheet),
			Err:            err,
		}
	}

	rows := make([][]models.Cell, len(values))
	for i, vals := range values {
		row := make([]models.Cell, len(vals))
		for j, v := range vals {
			row[j] = p.typedCell(f, sheet, i, j, v)
		}
		rows[i] = row
	}

	p.GetLogger().WithFields(
		logging.F("sheet", sheet),
		logging.F(logging.FieldCount, len(rows)),
	).Debug("Read worksheet rows")

	return models.RawTable{Source: "xlsx:" + sheet, Rows: rows}, nil
}

func (p *Parser) pickSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", &parsererror.InvalidFormatError{
			Source:         "xlsx",
			ExpectedFormat: "workbook with at least one worksheet",
			Msg:            "no worksheets",
		}
	}
	if p.sheet == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == p.sheet {
			return s, nil
		}
	}
	return "", &parsererror.InvalidFormatError{
		Source:         "xlsx",
		ExpectedFormat: fmt.Sprintf("one of %v", sheets),
		Msg:            fmt.Sprintf("sheet '%s' not found", p.sheet),
	}
}

// typedCell restores the value kind that raw reading flattens to text. String
// cells stay strings even when they look numeric.
func (p *Parser) typedCell(f *excelize.File, sheet string, row, col int, value string) models.Cell {
	if value == "" {
		return nil
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return value
	}
	kind, err := f.GetCellType(sheet, ref)
	if err != nil {
		return value
	}

	switch kind {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeDate:
		return value
	case excelize.CellTypeBool:
		return value == "1" || value == "TRUE" || value == "true"
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}
