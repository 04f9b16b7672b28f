package factory

import (
	"fmt"

	"gagyebu/ledger-csv/internal/csvparser"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/parser"
	"gagyebu/ledger-csv/internal/xlsxparser"
)

// Options carries the per-format reader settings.
type Options struct {
	// Delimiter is the CSV field separator; zero means ','.
	Delimiter rune
	// Sheet is the worksheet to read from a workbook; empty means the first one.
	Sheet string
}

// GetParserWithLogger returns a new parser for the given type with the provided
// logger for dependency injection.
func GetParserWithLogger(parserType parser.ParserType, logger logging.Logger, opts Options) (parser.Parser, error) {
	switch parserType {
	case parser.CSV:
		return csvparser.NewParser(opts.Delimiter, logger), nil
	case parser.XLSX:
		return xlsxparser.NewParser(opts.Sheet, logger), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", parserType)
	}
}

// GetParserForFile picks the parser from the file extension.
func GetParserForFile(path string, logger logging.Logger, opts Options) (parser.Parser, error) {
	parserType, err := parser.DetectType(path)
	if err != nil {
		return nil, err
	}
	return GetParserWithLogger(parserType, logger, opts)
}
