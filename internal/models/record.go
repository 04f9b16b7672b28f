package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one normalized transaction.
//
// Date is the zero time when the source cell could not be read as a date. Net is
// not stored: it is always Gross minus Discount.
type Record struct {
	Date          time.Time
	PaymentMethod string
	Description   string
	Gross         decimal.Decimal
	Discount      decimal.Decimal
	Major         string
	Minor         string
	Note          string
}

// Net returns the realized spend.
func (r Record) Net() decimal.Decimal {
	return r.Gross.Sub(r.Discount)
}

// HasDate reports whether the record carries a calendar date.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// Category returns the record's (major, minor) assignment.
func (r Record) Category() Pair {
	return Pair{Major: r.Major, Minor: r.Minor}
}

// Equal compares records field by field, using decimal equality for amounts.
func (r Record) Equal(other Record) bool {
	return r.Date.Equal(other.Date) &&
		r.PaymentMethod == other.PaymentMethod &&
		r.Description == other.Description &&
		r.Gross.Equal(other.Gross) &&
		r.Discount.Equal(other.Discount) &&
		r.Major == other.Major &&
		r.Minor == other.Minor &&
		r.Note == other.Note
}
