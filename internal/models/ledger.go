package models

import "time"

// Ledger is an ordered sequence of records, one per retained input row.
type Ledger []Record

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// Equal reports whether both ledgers hold equal records in the same order.
func (l Ledger) Equal(other Ledger) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// ToRawTable renders the ledger back into a table with a canonical header row,
// keeping values typed so that normalizing the result reproduces the ledger.
func (l Ledger) ToRawTable() RawTable {
	rows := make([][]Cell, 0, len(l)+1)

	header := make([]Cell, len(CanonicalFields))
	for i, f := range CanonicalFields {
		header[i] = string(f)
	}
	rows = append(rows, header)

	for _, r := range l {
		var date Cell
		if r.HasDate() {
			date = r.Date
		}
		rows = append(rows, []Cell{
			date,
			r.PaymentMethod,
			r.Description,
			r.Gross,
			r.Major,
			r.Minor,
			r.Discount,
			r.Net(),
			r.Note,
		})
	}
	return RawTable{Source: "ledger", Rows: rows}
}

// DateRange returns the earliest and latest record dates. Both are zero when no
// record is dated.
func (l Ledger) DateRange() (start, end time.Time) {
	for _, r := range l {
		if !r.HasDate() {
			continue
		}
		if start.IsZero() || r.Date.Before(start) {
			start = r.Date
		}
		if end.IsZero() || r.Date.After(end) {
			end = r.Date
		}
	}
	return start, end
}
