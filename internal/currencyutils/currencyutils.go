// Package currencyutils coerces money cells to decimals.
package currencyutils

import (
	"fmt"
	"math"
	"strings"

	"gagyebu/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultSuffixes are the currency units stripped from the end of an amount.
var DefaultSuffixes = []string{"원", "KRW"}

// AmountParser strips thousands separators and a trailing currency unit before
// parsing. The zero value uses DefaultSuffixes.
type AmountParser struct {
	Suffixes []string
}

// NewAmountParser creates a parser for the given suffixes. An empty list falls
// back to DefaultSuffixes.
func NewAmountParser(suffixes []string) AmountParser {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	return AmountParser{Suffixes: append([]string(nil), suffixes...)}
}

func (p AmountParser) suffixes() []string {
	if len(p.Suffixes) == 0 {
		return DefaultSuffixes
	}
	return p.Suffixes
}

// ParseAmount parses one textual amount such as "12,000원" or "-5000".
// Blank text is an error.
func (p AmountParser) ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := p.StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': empty", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount removes whitespace at the ends, every thousands separator,
// a leading won sign and one trailing currency suffix.
func (p AmountParser) StandardizeAmount(amountStr string) string {
	s := strings.ReplaceAll(strings.TrimSpace(amountStr), ",", "")
	for _, suffix := range p.suffixes() {
		if suffix == "" {
			continue
		}
		if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}
	s = strings.TrimPrefix(s, "₩")
	if strings.HasPrefix(s, "-₩") {
		s = "-" + s[len("-₩"):]
	}
	return strings.TrimSpace(s)
}

// ParseCell converts a money cell. Numeric cells are taken as is; text goes
// through ParseAmount. It returns false for blank, non-finite or unparseable
// cells.
func (p AmountParser) ParseCell(cell models.Cell) (decimal.Decimal, bool) {
	switch v := cell.(type) {
	case nil, bool:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint, uint8, uint16, uint32, uint64:
		d, err := decimal.NewFromString(models.CellText(v))
		return d, err == nil
	case string:
		d, err := p.ParseAmount(v)
		return d, err == nil
	}
	return decimal.Zero, false
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// FormatAmount renders amount with thousands separators followed by the
// currency unit, e.g. "12,000원". An empty unit omits the suffix.
func FormatAmount(amount decimal.Decimal, unit string) string {
	s := amount.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac + unit
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}
