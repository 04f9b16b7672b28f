// Package csvparser reads delimited text exports into raw tables. Files that
// are not valid UTF-8 are decoded as EUC-KR (CP949), the default encoding of
// most Korean bank and card exports.
package csvparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parser"
	"gagyebu/ledger-csv/internal/parsererror"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser reads CSV into a RawTable of string cells. Rows may differ in length.
type Parser struct {
	parser.BaseParser
	delimiter rune
}

// NewParser creates a CSV parser. A zero delimiter means ','.
func NewParser(delimiter rune, logger logging.Logger) *Parser {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		delimiter:  delimiter,
	}
}

// Parse implements parser.Parser.
func (p *Parser) Parse(r io.Reader) (models.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.RawTable{}, &parsererror.InvalidFormatError{
			Source:         "csv",
			ExpectedFormat: "CSV",
			Msg:            "read failed",
			Err:            err,
		}
	}

	data, err = p.decode(data)
	if err != nil {
		return models.RawTable{}, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]models.Cell
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.RawTable{}, &parsererror.InvalidFormatError{
				Source:         "csv",
				ExpectedFormat: fmt.Sprintf("CSV delimited by %q", p.delimiter),
				Msg:            "malformed record",
				Err:            err,
			}
		}
		row := make([]models.Cell, len(record))
		for i, v := range record {
			row[i] = v
		}
		rows = append(rows, row)
	}

	p.GetLogger().WithFields(
		logging.F(logging.FieldDelimiter, string(p.delimiter)),
		logging.F(logging.FieldCount, len(rows)),
	).Debug("Read CSV rows")

	return models.RawTable{Source: "csv", Rows: rows}, nil
}

// decode strips a UTF-8 BOM, or converts EUC-KR input to UTF-8. Input holding
// NUL bytes is rejected as binary.
func (p *Parser) decode(data []byte) ([]byte, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, &parsererror.InvalidFormatError{
			Source:         "csv",
			ExpectedFormat: "CSV text",
			Msg:            "input looks binary",
		}
	}
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], nil
	}
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			Source:         "csv",
			ExpectedFormat: "UTF-8 or EUC-KR text",
			Msg:            "undecodable text",
			Err:            err,
		}
	}
	p.GetLogger().Debug("Decoded CSV input as EUC-KR")
	return decoded, nil
}
