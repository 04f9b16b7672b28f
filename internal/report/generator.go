// Package report aggregates a ledger into totals by category and month and
// renders the result as JSON, YAML or plain text.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gagyebu/ledger-csv/internal/currencyutils"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/taxonomy"

	"gopkg.in/yaml.v3"
)

// ReportGenerator builds and renders ledger summaries.
type ReportGenerator struct {
	tree   taxonomy.Tree
	logger logging.Logger
	now    func() time.Time
}

// NewReportGenerator creates a new instance of ReportGenerator. The tree fixes
// the order categories are reported in.
func NewReportGenerator(tree taxonomy.Tree, logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportGenerator{
		tree:   tree,
		logger: logger.WithField("component", "ReportGenerator"),
		now:    time.Now,
	}
}

// GenerateReport renders a summary in the specified format (json, yaml or text).
func (g *ReportGenerator) GenerateReport(summary *Summary, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSONReport(summary)
	case "yaml", "yml":
		return g.generateYAMLReport(summary)
	case "text", "txt":
		return g.generateTextReport(summary), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(summary *Summary) ([]byte, error) {
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateYAMLReport(summary *Summary) ([]byte, error) {
	out, err := yaml.Marshal(summary)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

// amountUnit suffixes amounts in the text report.
const amountUnit = "원"

func writeTotals(b *bytes.Buffer, label string, t Totals) {
	fmt.Fprintf(b, "%-20s %4d  gross %s  discount %s  net %s\n", label, t.Count,
		currencyutils.FormatAmount(t.Gross, amountUnit),
		currencyutils.FormatAmount(t.Discount, amountUnit),
		currencyutils.FormatAmount(t.Net, amountUnit))
}

func (g *ReportGenerator) generateTextReport(summary *Summary) []byte {
	var b bytes.Buffer
	if summary.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", summary.Source)
	}
	if summary.Period.Start != "" {
		fmt.Fprintf(&b, "Period: %s ~ %s\n", summary.Period.Start, summary.Period.End)
	}
	writeTotals(&b, "Total", summary.Totals)

	b.WriteString("\nBy category\n")
	for _, c := range summary.ByCategory {
		label := c.Major
		if c.Minor != "" {
			label += " > " + c.Minor
		}
		writeTotals(&b, label, c.Totals)
	}
	if summary.Unclassified.Count > 0 {
		writeTotals(&b, "(unclassified)", summary.Unclassified)
	}

	b.WriteString("\nBy month\n")
	for _, m := range summary.ByMonth {
		writeTotals(&b, m.Month, m.Totals)
	}

	for _, n := range summary.Notices {
		fmt.Fprintf(&b, "notice: %s\n", n)
	}
	return b.Bytes()
}
