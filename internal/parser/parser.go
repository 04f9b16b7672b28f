// Package parser defines the reader interface shared by every input format and
// the helpers the concrete readers embed.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
)

// Parser reads one spreadsheet container into an untyped table. Readers do no
// interpretation beyond splitting cells; the normalizer owns everything else.
// Input that cannot be read as rows of cells yields a
// *parsererror.InvalidFormatError.
type Parser interface {
	Parse(r io.Reader) (models.RawTable, error)
}

// LoggerConfigurable is implemented by parsers whose logger can be swapped.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// ParserType names an input format.
type ParserType string

const (
	CSV  ParserType = "csv"
	XLSX ParserType = "xlsx"
)

// ParseType validates a user-supplied format name.
func ParseType(s string) (ParserType, error) {
	switch ParserType(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case XLSX, "excel", "xlsm":
		return XLSX, nil
	}
	return "", fmt.Errorf("unknown parser type: %s", s)
}

// DetectType picks the format from a file extension.
func DetectType(path string) (ParserType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return CSV, nil
	case ".xlsx", ".xlsm":
		return XLSX, nil
	}
	return "", fmt.Errorf("cannot detect input format of '%s' (expected .csv or .xlsx)", path)
}

// BaseParser carries the logger for parser implementations to embed.
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser. A nil logger falls back to
// logging.Default().
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.Default()
	}
	return BaseParser{logger: logger}
}

// SetLogger implements LoggerConfigurable.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	if b.logger == nil {
		b.logger = logging.Default()
	}
	return b.logger
}
