package taxonomy

import (
	"strings"

	"gagyebu/ledger-csv/internal/models"

	"golang.org/x/text/unicode/norm"
)

// HeaderAliases maps recognized header text to a canonical field. Matching is
// exact and case-sensitive after trimming and NFC normalization, so headers
// typed on systems that store decomposed Hangul still match.
type HeaderAliases map[string]models.Field

// Lookup resolves a header cell's text.
func (a HeaderAliases) Lookup(text string) (models.Field, bool) {
	f, ok := a[NormalizeText(text)]
	return f, ok
}

// Clone copies the alias map.
func (a HeaderAliases) Clone() HeaderAliases {
	out := make(HeaderAliases, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Keys returns every alias text, unordered.
func (a HeaderAliases) Keys() []string {
	out := make([]string, 0, len(a))
	for k := range a {
		out = append(out, k)
	}
	return out
}

// NormalizeText trims s and converts it to NFC.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
