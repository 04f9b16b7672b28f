package taxonomy

import "strings"

// KeywordRule assigns a category pair to descriptions containing Keyword.
type KeywordRule struct {
	Keyword string `yaml:"keyword"`
	Major   string `yaml:"major"`
	Minor   string `yaml:"minor"`
}

// ClassifierTable is the ordered keyword list. Order is part of the contract:
// the first rule whose keyword occurs in a description wins.
type ClassifierTable []KeywordRule

// Clone copies the table, lowering every keyword.
func (c ClassifierTable) Clone() ClassifierTable {
	out := make(ClassifierTable, len(c))
	for i, r := range c {
		out[i] = KeywordRule{Keyword: strings.ToLower(r.Keyword), Major: r.Major, Minor: r.Minor}
	}
	return out
}
