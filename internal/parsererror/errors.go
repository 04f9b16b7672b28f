// Package parsererror defines the typed errors shared by the readers, the
// normalizer and the editor.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNotTabular is the sentinel wrapped by InvalidFormatError when the input
// cannot be read as rows of cells at all.
var ErrNotTabular = errors.New("input is not tabular")

// ParseError describes one cell that could not be coerced. The normalizer
// recovers from these locally; they only surface in debug logs.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError is returned when a source cannot be interpreted as a table.
type InvalidFormatError struct {
	Source         string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid format in '%s': %s. Expected: %s", e.Source, e.Msg, e.ExpectedFormat)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	if e.Err == nil {
		return ErrNotTabular
	}
	return e.Err
}

// Is lets errors.Is(err, ErrNotTabular) match every InvalidFormatError.
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrNotTabular
}

// ValidationError reports a taxonomy or configuration file that is internally
// inconsistent.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// CategorizationError wraps a strategy failure. Strategies never let it abort a row.
type CategorizationError struct {
	Description string
	Strategy    string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q using %s: %v", e.Description, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// IndexError is returned by edits addressing a record that does not exist.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("record index %d out of range [0,%d)", e.Index, e.Len)
}
