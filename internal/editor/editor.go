// Package editor applies manual corrections to a ledger. Every operation works
// on a copy and returns the new ledger; the input is never modified.
package editor

import (
	"strings"

	"gagyebu/ledger-csv/internal/currencyutils"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/shopspring/decimal"
)

// Editor enforces the category pairing rule on edits.
type Editor struct {
	tree   taxonomy.Tree
	logger logging.Logger
}

// NewEditor creates an Editor for tree.
func NewEditor(tree taxonomy.Tree, logger logging.Logger) *Editor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Editor{tree: tree, logger: logger}
}

func checkIndex(l models.Ledger, index int) error {
	if index < 0 || index >= len(l) {
		return &parsererror.IndexError{Index: index, Len: len(l)}
	}
	return nil
}

// SetCategory stores (major, minor) on the record at index. An invalid minor
// under a known major is replaced by the major's first minor, a minor without a
// major is cleared and an unknown major is stored as given. Each case is
// reported through the returned notice, which is nil when the pair was stored
// unchanged.
func (e *Editor) SetCategory(l models.Ledger, index int, major, minor string) (models.Ledger, *models.Notice, error) {
	if err := checkIndex(l, index); err != nil {
		return nil, nil, err
	}
	major, minor = strings.TrimSpace(major), strings.TrimSpace(minor)

	out := l.Clone()
	var notice *models.Notice

	switch {
	case major == "":
		if minor != "" {
			notice = &models.Notice{Index: index, Kind: models.NoticeOrphanMinor, Previous: minor}
			minor = ""
		}
	case !e.tree.HasMajor(major):
		notice = &models.Notice{Index: index, Kind: models.NoticeUnknownMajor, Major: major, Minor: minor}
	default:
		if fixed, corrected := e.tree.Enforce(major, minor); corrected {
			notice = &models.Notice{
				Index:    index,
				Kind:     models.NoticeMinorCorrected,
				Major:    major,
				Minor:    fixed,
				Previous: minor,
			}
			minor = fixed
		}
	}

	out[index].Major = major
	out[index].Minor = minor

	log := e.logger.WithFields(
		logging.F(logging.FieldOperation, "set_category"),
		logging.F(logging.FieldRow, index),
		logging.F(logging.FieldMajor, major),
		logging.F(logging.FieldMinor, minor),
	)
	if notice != nil {
		log.WithField(logging.FieldNotice, notice.String()).Info("Category edited with correction")
	} else {
		log.Debug("Category edited")
	}
	return out, notice, nil
}

// SetAmounts replaces gross and discount on the record at index. The discount
// is stored as its absolute value; net follows from both. A negative gross is a
// refund, as on input: gross and discount both become its absolute value.
func (e *Editor) SetAmounts(l models.Ledger, index int, gross, discount decimal.Decimal) (models.Ledger, error) {
	if err := checkIndex(l, index); err != nil {
		return nil, err
	}
	out := l.Clone()
	out[index].Gross = gross
	out[index].Discount = discount.Abs()
	if currencyutils.IsNegative(gross) {
		out[index].Gross = gross.Abs()
		out[index].Discount = gross.Abs()
	}

	e.logger.WithFields(
		logging.F(logging.FieldOperation, "set_amounts"),
		logging.F(logging.FieldRow, index),
		logging.F("net", out[index].Net().String()),
	).Debug("Amounts edited")
	return out, nil
}

// Delete removes the record at index; later records shift down by one.
func (e *Editor) Delete(l models.Ledger, index int) (models.Ledger, error) {
	if err := checkIndex(l, index); err != nil {
		return nil, err
	}
	out := make(models.Ledger, 0, len(l)-1)
	out = append(out, l[:index]...)
	out = append(out, l[index+1:]...)

	e.logger.WithFields(
		logging.F(logging.FieldOperation, "delete"),
		logging.F(logging.FieldRow, index),
	).Debug("Record deleted")
	return out, nil
}

// Concat appends ledgers in order. Duplicates are kept.
func Concat(ledgers ...models.Ledger) models.Ledger {
	n := 0
	for _, l := range ledgers {
		n += len(l)
	}
	out := make(models.Ledger, 0, n)
	for _, l := range ledgers {
		out = append(out, l...)
	}
	return out
}
