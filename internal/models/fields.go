// Package models defines the raw table handed over by the readers and the typed
// ledger produced by the normalizer.
package models

// Field is the name of one canonical ledger column.
type Field string

// Canonical ledger columns. The string values double as the exported header text.
const (
	FieldDate          Field = "날짜"
	FieldPaymentMethod Field = "결제수단"
	FieldDescription   Field = "지출 내용"
	FieldGross         Field = "결제금액"
	FieldMajor         Field = "대분류"
	FieldMinor         Field = "소분류"
	FieldDiscount      Field = "할인"
	FieldNet           Field = "실지출"
	FieldNote          Field = "비고"
)

// CanonicalFields lists every canonical column in output order. The same order
// drives the positional fallback when a table has no recognizable header row.
var CanonicalFields = []Field{
	FieldDate,
	FieldPaymentMethod,
	FieldDescription,
	FieldGross,
	FieldMajor,
	FieldMinor,
	FieldDiscount,
	FieldNet,
	FieldNote,
}

// IsCanonical reports whether f is one of CanonicalFields.
func IsCanonical(f Field) bool {
	for _, c := range CanonicalFields {
		if c == f {
			return true
		}
	}
	return false
}

// Pair is a (major, minor) category assignment. The zero Pair means unclassified.
type Pair struct {
	Major string `json:"major" yaml:"major"`
	Minor string `json:"minor" yaml:"minor"`
}

// IsZero reports whether neither side is set.
func (p Pair) IsZero() bool {
	return p.Major == "" && p.Minor == ""
}
