// Package dateutils coerces spreadsheet date cells to calendar dates.
package dateutils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gagyebu/ledger-csv/internal/models"

	"github.com/araddon/dateparse"
)

// Date layouts tried for textual cells, in this order.
const (
	DateLayoutISO         = "2006-01-02"
	DateLayoutDotted      = "2006.01.02"
	DateLayoutSlashed     = "2006/01/02"
	DateLayoutUS          = "01/02/2006"
	DateLayoutFull        = "2006-01-02 15:04:05"
	DateLayoutDottedShort = "2006.01.02 15:04"
	DateLayoutKorean      = "2006년 1월 2일"
	DateLayoutKoreanTight = "2006년1월2일"
)

// CommonFormats is the ordered list of textual layouts. The first layout that
// parses wins.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutDotted,
	DateLayoutSlashed,
	DateLayoutUS,
	DateLayoutFull,
	DateLayoutDottedShort,
	DateLayoutKorean,
	DateLayoutKoreanTight,
}

// Spreadsheet serial numbers are day offsets from this epoch. Numbers outside
// (SerialMin, SerialMax) are not treated as serials.
var (
	SerialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	SerialMin   = 1.0
	SerialMax   = 100000.0
)

var (
	whitespace         = regexp.MustCompile(`\s+`)
	trailingAnnotation = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
	errEmptyDate       = errors.New("empty date")
)

// ParseCell runs the full date coercion chain on one cell. It returns false
// when the cell is blank or cannot be read as a date; callers store that as an
// undated record rather than an error.
func ParseCell(cell models.Cell) (time.Time, bool) {
	switch v := cell.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return TruncateToDate(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return TruncateToDate(*v), true
	case float64:
		if t, ok := FromSerial(v); ok {
			return t, true
		}
	case float32:
		if t, ok := FromSerial(float64(v)); ok {
			return t, true
		}
	case int:
		if t, ok := FromSerial(float64(v)); ok {
			return t, true
		}
	case int64:
		if t, ok := FromSerial(float64(v)); ok {
			return t, true
		}
	}

	t, _, err := ParseDate(models.CellText(cell))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate parses textual dates. It strips a trailing parenthesized note such
// as a weekday, then tries serial numbers, CommonFormats and finally
// dateparse.ParseAny. The returned layout is "serial" or "dateparse" for those
// two branches.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", errEmptyDate
	}

	if f, err := strconv.ParseFloat(dateStr, 64); err == nil {
		if t, ok := FromSerial(f); ok {
			return t, "serial", nil
		}
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return TruncateToDate(t), format, nil
		}
	}

	if t, err := parseAny(dateStr); err == nil {
		return TruncateToDate(t), "dateparse", nil
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// parseAny wraps dateparse.ParseAny, which panics on a few malformed inputs.
func parseAny(s string) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dateparse: %v", r)
		}
	}()
	return dateparse.ParseAny(s)
}

// FromSerial converts a spreadsheet serial day number. Fractions (time of day)
// are truncated.
func FromSerial(serial float64) (time.Time, bool) {
	if !(serial > SerialMin && serial < SerialMax) {
		return time.Time{}, false
	}
	return SerialEpoch.AddDate(0, 0, int(serial)), true
}

// CleanDateString trims, collapses inner whitespace and drops a trailing
// parenthesized annotation: "2026.01.01 (목)" becomes "2026.01.01".
func CleanDateString(dateStr string) string {
	dateStr = whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
	return strings.TrimSpace(trailingAnnotation.ReplaceAllString(dateStr, ""))
}

// TruncateToDate keeps the calendar date of t, as midnight UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats date using layout, DateLayoutISO when layout is empty.
// The zero time formats as "".
func FormatDate(date time.Time, layout string) string {
	if date.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// MonthKey returns the YYYY-MM bucket of date.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}
