package normalizer

import (
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/agnivade/levenshtein"
)

// HeaderResolution describes how raw columns map onto canonical fields.
type HeaderResolution struct {
	// HeaderRow is the index of the detected header row, or -1 when the
	// positional fallback was used.
	HeaderRow int
	// DataStart is the first row holding data.
	DataStart int
	// Columns maps each resolved field to its source column. Fields absent
	// from the map read as blank.
	Columns map[models.Field]int
}

// Positional reports whether no header row was found.
func (h HeaderResolution) Positional() bool {
	return h.HeaderRow < 0
}

// Column returns the source column of f.
func (h HeaderResolution) Column(f models.Field) (int, bool) {
	c, ok := h.Columns[f]
	return c, ok
}

// nonBlankColumns lists the columns holding at least one non-blank cell.
func nonBlankColumns(table models.RawTable) []int {
	width := table.Width()
	cols := make([]int, 0, width)
	for c := 0; c < width; c++ {
		for r := range table.Rows {
			if !models.IsBlank(table.At(r, c)) {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

func (n *Normalizer) countAliasMatches(table models.RawTable, row int, cols []int) int {
	matches := 0
	for _, c := range cols {
		text, ok := table.At(row, c).(string)
		if !ok {
			continue
		}
		if _, ok := n.tables.Aliases.Lookup(text); ok {
			matches++
		}
	}
	return matches
}

// ResolveHeader finds the header row among the first scan rows, or falls back
// to positional mapping over the non-blank columns.
func (n *Normalizer) ResolveHeader(table models.RawTable) HeaderResolution {
	cols := nonBlankColumns(table)

	scan := n.opts.HeaderScanRows
	if scan > len(table.Rows) {
		scan = len(table.Rows)
	}
	for r := 0; r < scan; r++ {
		if n.countAliasMatches(table, r, cols) >= n.opts.MinHeaderMatches {
			return n.mapHeaderRow(table, r, cols)
		}
	}

	res := HeaderResolution{HeaderRow: -1, DataStart: 0, Columns: make(map[models.Field]int)}
	for i, c := range cols {
		if i >= len(models.CanonicalFields) {
			n.logger.WithField(logging.FieldColumn, c).Debug("Dropping column beyond positional range")
			continue
		}
		res.Columns[models.CanonicalFields[i]] = c
	}
	n.logger.WithFields(
		logging.F(logging.FieldSource, table.Source),
		logging.F(logging.FieldCount, len(res.Columns)),
	).Debug("No header row found, using positional column mapping")
	return res
}

func (n *Normalizer) mapHeaderRow(table models.RawTable, row int, cols []int) HeaderResolution {
	res := HeaderResolution{HeaderRow: row, DataStart: row + 1, Columns: make(map[models.Field]int)}

	for _, c := range cols {
		cell := table.At(row, c)
		if models.IsBlank(cell) {
			continue
		}
		text := models.CellText(cell)
		field, ok := n.tables.Aliases.Lookup(text)
		if !ok {
			log := n.logger.WithFields(
				logging.F(logging.FieldColumn, c),
				logging.F(logging.FieldHeader, text),
			)
			if hint := n.suggestAlias(text); hint != "" {
				log = log.WithField("did_you_mean", hint)
			}
			log.Debug("Dropping unrecognized header")
			continue
		}
		if prev, dup := res.Columns[field]; dup {
			n.logger.WithFields(
				logging.F(logging.FieldColumn, c),
				logging.F(logging.FieldCanonical, string(field)),
				logging.F("kept_column", prev),
			).Debug("Dropping duplicate header")
			continue
		}
		res.Columns[field] = c
	}

	n.logger.WithFields(
		logging.F(logging.FieldSource, table.Source),
		logging.F(logging.FieldRow, row),
		logging.F(logging.FieldCount, len(res.Columns)),
	).Debug("Detected header row")
	return res
}

// suggestAlias returns the closest known alias when it is within a third of
// the header's length, for debug hints only.
func (n *Normalizer) suggestAlias(text string) string {
	text = taxonomy.NormalizeText(text)
	limit := len([]rune(text)) / 3
	if limit < 1 {
		limit = 1
	}

	best, bestDist := "", limit+1
	for _, alias := range n.tables.Aliases.Keys() {
		d := levenshtein.ComputeDistance(text, alias)
		if d < bestDist || (d == bestDist && alias < best) {
			best, bestDist = alias, d
		}
	}
	if bestDist > limit {
		return ""
	}
	return best
}
