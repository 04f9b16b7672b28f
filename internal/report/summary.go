package report

import (
	"sort"
	"time"

	"gagyebu/ledger-csv/internal/batch"
	"gagyebu/ledger-csv/internal/dateutils"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Totals aggregates the amounts of a set of records.
type Totals struct {
	Count    int             `json:"count" yaml:"count"`
	Gross    decimal.Decimal `json:"gross" yaml:"gross"`
	Discount decimal.Decimal `json:"discount" yaml:"discount"`
	Net      decimal.Decimal `json:"net" yaml:"net"`
}

func (t *Totals) add(r models.Record) {
	t.Count++
	t.Gross = t.Gross.Add(r.Gross)
	t.Discount = t.Discount.Add(r.Discount)
	t.Net = t.Net.Add(r.Net())
}

// CategoryTotal is the total of one major category, or of one (major, minor)
// pair when Minor is set.
type CategoryTotal struct {
	Major  string `json:"major" yaml:"major"`
	Minor  string `json:"minor,omitempty" yaml:"minor,omitempty"`
	Totals `yaml:",inline"`
}

// MonthTotal is the total of one YYYY-MM month. First and Last are the
// calendar bounds of the month and stay empty for undated records.
type MonthTotal struct {
	Month  string `json:"month" yaml:"month"`
	First  string `json:"first,omitempty" yaml:"first,omitempty"`
	Last   string `json:"last,omitempty" yaml:"last,omitempty"`
	Totals `yaml:",inline"`
}

// Period is the dated span of the summarized records.
type Period struct {
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

// Summary is the aggregate view of a ledger. Records without a major category
// are counted under Unclassified only.
type Summary struct {
	ReportID     string          `json:"report_id" yaml:"report_id"`
	GeneratedAt  time.Time       `json:"generated_at" yaml:"generated_at"`
	Source       string          `json:"source,omitempty" yaml:"source,omitempty"`
	Period       Period          `json:"period" yaml:"period"`
	Totals       Totals          `json:"totals" yaml:"totals"`
	ByMajor      []CategoryTotal `json:"by_major" yaml:"by_major"`
	ByCategory   []CategoryTotal `json:"by_category" yaml:"by_category"`
	ByMonth      []MonthTotal    `json:"by_month" yaml:"by_month"`
	Unclassified Totals          `json:"unclassified" yaml:"unclassified"`
	Notices      []models.Notice `json:"notices,omitempty" yaml:"notices,omitempty"`
}

// Summarize aggregates ledger. Categories follow tree order, with majors and
// minors outside the tree after the known ones in first-seen order. Months are
// ascending with undated records last.
func (g *ReportGenerator) Summarize(ledger models.Ledger, notices []models.Notice, source string) *Summary {
	s := &Summary{
		ReportID:    uuid.NewString(),
		GeneratedAt: g.now().UTC(),
		Source:      source,
		Notices:     notices,
	}

	rng := batch.RangeOf(ledger)
	if !rng.Start.IsZero() {
		s.Period = Period{Start: rng.Start.Format("2006-01-02"), End: rng.End.Format("2006-01-02")}
	}

	majors := map[string]int{}
	pairs := map[models.Pair]int{}
	months := map[string]int{}

	for _, r := range ledger {
		s.Totals.add(r)

		month := batch.MonthOf(r)
		i, ok := months[month]
		if !ok {
			i = len(s.ByMonth)
			months[month] = i
			mt := MonthTotal{Month: month}
			if r.HasDate() {
				mt.First = dateutils.StartOfMonth(r.Date).Format(dateutils.DateLayoutISO)
				mt.Last = dateutils.EndOfMonth(r.Date).Format(dateutils.DateLayoutISO)
			}
			s.ByMonth = append(s.ByMonth, mt)
		}
		s.ByMonth[i].add(r)

		if r.Major == "" {
			s.Unclassified.add(r)
			continue
		}

		i, ok = majors[r.Major]
		if !ok {
			i = len(s.ByMajor)
			majors[r.Major] = i
			s.ByMajor = append(s.ByMajor, CategoryTotal{Major: r.Major})
		}
		s.ByMajor[i].add(r)

		p := r.Category()
		i, ok = pairs[p]
		if !ok {
			i = len(s.ByCategory)
			pairs[p] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Major: p.Major, Minor: p.Minor})
		}
		s.ByCategory[i].add(r)
	}

	sortCategories(s.ByMajor, g.tree)
	sortCategories(s.ByCategory, g.tree)
	sort.SliceStable(s.ByMonth, func(i, j int) bool {
		a, b := s.ByMonth[i].Month, s.ByMonth[j].Month
		if a == batch.UnknownMonth || b == batch.UnknownMonth {
			return b == batch.UnknownMonth && a != batch.UnknownMonth
		}
		return a < b
	})

	return s
}

func sortCategories(totals []CategoryTotal, tree taxonomy.Tree) {
	majorRank := map[string]int{}
	for i, m := range tree.Majors() {
		majorRank[m] = i
	}
	rank := func(major string) int {
		if r, ok := majorRank[major]; ok {
			return r
		}
		return len(majorRank)
	}
	minorRank := func(major, minor string) int {
		minors := tree.Minors(major)
		for i, m := range minors {
			if m == minor {
				return i
			}
		}
		return len(minors)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if ra, rb := rank(a.Major), rank(b.Major); ra != rb {
			return ra < rb
		}
		if a.Major != b.Major {
			return false
		}
		return minorRank(a.Major, a.Minor) < minorRank(b.Major, b.Minor)
	})
}
