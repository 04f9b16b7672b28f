package taxonomy

import (
	"fmt"
	"strings"

	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"
)

// Tables bundles the three lookup tables the pipeline is parameterized by.
type Tables struct {
	Tree    Tree
	Aliases HeaderAliases
	Rules   ClassifierTable
}

// Clone returns tables that share no mutable state with t.
func (t Tables) Clone() Tables {
	tree, _ := NewTree(t.Tree.Branches())
	return Tables{
		Tree:    tree,
		Aliases: t.Aliases.Clone(),
		Rules:   t.Rules.Clone(),
	}
}

// Validate checks cross-table consistency: aliases must target canonical fields
// and every keyword rule must name a pair that exists in the tree.
func (t Tables) Validate() error {
	for text, field := range t.Aliases {
		if strings.TrimSpace(text) == "" {
			return &parsererror.ValidationError{Reason: "blank header alias"}
		}
		if !models.IsCanonical(field) {
			return &parsererror.ValidationError{
				Reason: fmt.Sprintf("header alias '%s' targets unknown field '%s'", text, field),
			}
		}
	}
	for i, r := range t.Rules {
		if strings.TrimSpace(r.Keyword) == "" {
			return &parsererror.ValidationError{Reason: fmt.Sprintf("keyword rule %d has a blank keyword", i)}
		}
		if !t.Tree.HasMinor(r.Major, r.Minor) {
			return &parsererror.ValidationError{
				Reason: fmt.Sprintf("keyword '%s' maps to (%s, %s) which is not in the category tree", r.Keyword, r.Major, r.Minor),
			}
		}
	}
	return nil
}
