package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cell is one untyped spreadsheet value. Readers only ever produce nil, string,
// bool, the Go integer and float kinds, decimal.Decimal or time.Time.
type Cell = interface{}

// RawTable is the reader output: rows of cells, not necessarily of equal length.
type RawTable struct {
	Source string
	Rows   [][]Cell
}

// Width returns the length of the longest row.
func (t RawTable) Width() int {
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At returns the cell at (row, col), or nil when the row is shorter than col.
func (t RawTable) At(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// IsSupportedCell reports whether c is one of the value kinds a Cell may hold.
func IsSupportedCell(c Cell) bool {
	switch c.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		decimal.Decimal, time.Time, *time.Time:
		return true
	}
	return false
}

// IsBlank reports whether c is nil, or text that is empty after trimming.
func IsBlank(c Cell) bool {
	switch v := c.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *time.Time:
		return v == nil || v.IsZero()
	case time.Time:
		return v.IsZero()
	}
	return false
}

// CellText renders c as text. Numbers use the shortest exact representation and
// times render as YYYY-MM-DD.
func CellText(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case decimal.Decimal:
		return v.String()
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02")
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02")
	}
	return ""
}
