package categorizer

import (
	"context"
	"fmt"
	"strings"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/taxonomy"
)

// MatchMode selects how KeywordStrategy resolves descriptions containing more
// than one keyword.
type MatchMode string

const (
	// MatchFirst returns the rule declared first in the table.
	MatchFirst MatchMode = "first"
	// MatchLongest returns the rule with the longest keyword, earliest on ties.
	MatchLongest MatchMode = "longest"
)

// ParseMatchMode validates a configured match mode. Empty means MatchFirst.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchFirst:
		return MatchFirst, nil
	case MatchLongest:
		return MatchLongest, nil
	}
	return "", fmt.Errorf("unknown match mode '%s' (expected first or longest)", s)
}

// KeywordStrategy matches lowercase keywords as substrings of the description.
type KeywordStrategy struct {
	rules  taxonomy.ClassifierTable
	mode   MatchMode
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over a copy of rules.
func NewKeywordStrategy(rules taxonomy.ClassifierTable, mode MatchMode, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.Default()
	}
	if mode == "" {
		mode = MatchFirst
	}
	return &KeywordStrategy{
		rules:  rules.Clone(),
		mode:   mode,
		logger: logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize scans the rules in declaration order.
func (s *KeywordStrategy) Categorize(ctx context.Context, tx Transaction) (models.Pair, bool, error) {
	description := strings.ToLower(strings.TrimSpace(tx.Description))
	if description == "" {
		return models.Pair{}, false, nil
	}

	match := -1
	for i, rule := range s.rules {
		if rule.Keyword == "" || !strings.Contains(description, rule.Keyword) {
			continue
		}
		if s.mode == MatchFirst {
			match = i
			break
		}
		if match < 0 || len([]rune(rule.Keyword)) > len([]rune(s.rules[match].Keyword)) {
			match = i
		}
	}
	if match < 0 {
		return models.Pair{}, false, nil
	}

	rule := s.rules[match]
	s.logger.WithFields(
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldKeyword, rule.Keyword),
		logging.F(logging.FieldMajor, rule.Major),
		logging.F(logging.FieldMinor, rule.Minor),
	).Debug("Transaction categorized using keyword matching")

	return models.Pair{Major: rule.Major, Minor: rule.Minor}, true, nil
}
