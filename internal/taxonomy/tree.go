// Package taxonomy holds the static lookup tables the normalizer runs against:
// the two-level category tree, the header alias vocabulary and the ordered
// keyword classifier table.
package taxonomy

import (
	"fmt"
	"strings"
)

// Branch is one major category with its ordered minors.
type Branch struct {
	Major  string   `yaml:"major"`
	Minors []string `yaml:"minors"`
}

// Tree is an ordered major -> minors mapping. The zero Tree is empty and valid.
type Tree struct {
	branches []Branch
	index    map[string]int
}

// NewTree builds a Tree, rejecting blank names, repeated majors and minors
// repeated inside one major. The same minor may appear under several majors.
func NewTree(branches []Branch) (Tree, error) {
	t := Tree{
		branches: make([]Branch, 0, len(branches)),
		index:    make(map[string]int, len(branches)),
	}
	for _, b := range branches {
		major := strings.TrimSpace(b.Major)
		if major == "" {
			return Tree{}, fmt.Errorf("major category name is blank")
		}
		if _, dup := t.index[major]; dup {
			return Tree{}, fmt.Errorf("major category '%s' declared twice", major)
		}
		if len(b.Minors) == 0 {
			return Tree{}, fmt.Errorf("major category '%s' has no minor categories", major)
		}
		seen := make(map[string]bool, len(b.Minors))
		minors := make([]string, 0, len(b.Minors))
		for _, m := range b.Minors {
			m = strings.TrimSpace(m)
			if m == "" {
				return Tree{}, fmt.Errorf("major category '%s' has a blank minor", major)
			}
			if seen[m] {
				return Tree{}, fmt.Errorf("minor category '%s' repeated under '%s'", m, major)
			}
			seen[m] = true
			minors = append(minors, m)
		}
		t.index[major] = len(t.branches)
		t.branches = append(t.branches, Branch{Major: major, Minors: minors})
	}
	return t, nil
}

// MustTree is NewTree for tables known to be valid at compile time.
func MustTree(branches []Branch) Tree {
	t, err := NewTree(branches)
	if err != nil {
		panic(err)
	}
	return t
}

// Majors returns the major names in declaration order.
func (t Tree) Majors() []string {
	out := make([]string, len(t.branches))
	for i, b := range t.branches {
		out[i] = b.Major
	}
	return out
}

// Minors returns a copy of the minors declared under major, or nil.
func (t Tree) Minors(major string) []string {
	i, ok := t.index[major]
	if !ok {
		return nil
	}
	return append([]string(nil), t.branches[i].Minors...)
}

// Branches returns a deep copy of the tree's branches.
func (t Tree) Branches() []Branch {
	out := make([]Branch, len(t.branches))
	for i, b := range t.branches {
		out[i] = Branch{Major: b.Major, Minors: append([]string(nil), b.Minors...)}
	}
	return out
}

// Len returns the number of majors.
func (t Tree) Len() int {
	return len(t.branches)
}

// HasMajor reports whether major is a key of the tree.
func (t Tree) HasMajor(major string) bool {
	_, ok := t.index[major]
	return ok
}

// HasMinor reports whether minor is declared under major.
func (t Tree) HasMinor(major, minor string) bool {
	i, ok := t.index[major]
	if !ok {
		return false
	}
	for _, m := range t.branches[i].Minors {
		if m == minor {
			return true
		}
	}
	return false
}

// FirstMinor returns the first minor of major, or "" for an unknown major.
func (t Tree) FirstMinor(major string) string {
	i, ok := t.index[major]
	if !ok {
		return ""
	}
	return t.branches[i].Minors[0]
}

// Enforce applies the pairing rule to (major, minor). When major is a known key
// and minor is not one of its minors, the major's first minor is returned with
// corrected set. Blank and unknown majors pass through untouched.
func (t Tree) Enforce(major, minor string) (string, bool) {
	if major == "" || !t.HasMajor(major) {
		return minor, false
	}
	if t.HasMinor(major, minor) {
		return minor, false
	}
	return t.FirstMinor(major), true
}
