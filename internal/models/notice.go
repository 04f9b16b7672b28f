package models

import "fmt"

// NoticeKind classifies a non-fatal correction surfaced to the caller.
type NoticeKind string

const (
	// NoticeMinorCorrected means the minor category did not belong to the major
	// and was replaced by the major's first minor.
	NoticeMinorCorrected NoticeKind = "minor_corrected"
	// NoticeUnknownMajor means the major category is not part of the tree. The
	// value is kept as given.
	NoticeUnknownMajor NoticeKind = "unknown_major"
	// NoticeOrphanMinor means a minor category was given without a major. The
	// minor is cleared.
	NoticeOrphanMinor NoticeKind = "orphan_minor"
)

// Notice reports a correction applied to the record at Index.
type Notice struct {
	Index    int        `json:"index" yaml:"index"`
	Kind     NoticeKind `json:"kind" yaml:"kind"`
	Major    string     `json:"major" yaml:"major"`
	Minor    string     `json:"minor" yaml:"minor"`
	Previous string     `json:"previous,omitempty" yaml:"previous,omitempty"`
}

func (n Notice) String() string {
	switch n.Kind {
	case NoticeMinorCorrected:
		return fmt.Sprintf("row %d: '%s' is not a minor of '%s', using '%s'", n.Index, n.Previous, n.Major, n.Minor)
	case NoticeUnknownMajor:
		return fmt.Sprintf("row %d: '%s' is not a known major category", n.Index, n.Major)
	case NoticeOrphanMinor:
		return fmt.Sprintf("row %d: minor '%s' has no major category, cleared", n.Index, n.Previous)
	}
	return fmt.Sprintf("row %d: %s", n.Index, n.Kind)
}
