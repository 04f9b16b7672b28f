// Package categorizer assigns (major, minor) category pairs to transaction
// descriptions. Strategies are tried in order: the ordered keyword table first,
// then an optional AI model. Descriptions nothing recognizes fall into the
// configured default bucket.
package categorizer

import (
	"context"
	"fmt"
	"strings"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/taxonomy"
)

// Default bucket modes.
const (
	BucketEmpty  = "empty"
	BucketOther  = "other"
	BucketCustom = "custom"
)

// BucketPolicy is the pair assigned to descriptions no strategy recognizes.
type BucketPolicy struct {
	Mode string
	Pair models.Pair
}

// NewBucketPolicy builds a policy. "empty" (the default) leaves records
// unclassified, "other" uses (기타, 기타) and "custom" uses major/minor.
func NewBucketPolicy(mode, major, minor string) (BucketPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", BucketEmpty:
		return BucketPolicy{Mode: BucketEmpty}, nil
	case BucketOther:
		return BucketPolicy{
			Mode: BucketOther,
			Pair: models.Pair{Major: taxonomy.MajorOther, Minor: taxonomy.MinorOther},
		}, nil
	case BucketCustom:
		major, minor = strings.TrimSpace(major), strings.TrimSpace(minor)
		if major == "" {
			return BucketPolicy{}, fmt.Errorf("custom default bucket requires a major category")
		}
		return BucketPolicy{Mode: BucketCustom, Pair: models.Pair{Major: major, Minor: minor}}, nil
	}
	return BucketPolicy{}, fmt.Errorf("unknown default bucket '%s' (expected empty, other or custom)", mode)
}

// Validate checks that a non-empty bucket pair exists in tree.
func (b BucketPolicy) Validate(tree taxonomy.Tree) error {
	if b.Pair.IsZero() {
		return nil
	}
	if !tree.HasMinor(b.Pair.Major, b.Pair.Minor) {
		return fmt.Errorf("default bucket (%s, %s) is not in the category tree", b.Pair.Major, b.Pair.Minor)
	}
	return nil
}

// Result is the outcome of categorizing one transaction. Strategy is empty when
// the pair came from the default bucket.
type Result struct {
	Pair     models.Pair
	Strategy string
}

// Matched reports whether a strategy recognized the transaction.
func (r Result) Matched() bool {
	return r.Strategy != ""
}

// Categorizer runs strategies in order and falls back to the bucket policy.
type Categorizer struct {
	strategies []CategorizationStrategy
	bucket     BucketPolicy
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer. Strategies are consulted in the order
// given.
func NewCategorizer(strategies []CategorizationStrategy, bucket BucketPolicy, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Categorizer{
		strategies: append([]CategorizationStrategy(nil), strategies...),
		bucket:     bucket,
		logger:     logger,
	}
}

// NewKeywordCategorizer is the default configuration: first-match keywords over
// rules and an empty default bucket.
func NewKeywordCategorizer(rules taxonomy.ClassifierTable, logger logging.Logger) *Categorizer {
	return NewCategorizer(
		[]CategorizationStrategy{NewKeywordStrategy(rules, MatchFirst, logger)},
		BucketPolicy{Mode: BucketEmpty},
		logger,
	)
}

// Bucket returns the configured default bucket.
func (c *Categorizer) Bucket() BucketPolicy {
	return c.bucket
}

// Categorize never fails: strategy errors are logged and treated as no match.
func (c *Categorizer) Categorize(ctx context.Context, tx Transaction) Result {
	for _, strategy := range c.strategies {
		if ctx.Err() != nil {
			break
		}
		pair, found, err := strategy.Categorize(ctx, tx)
		if err != nil {
			c.logger.WithError(err).WithField(logging.FieldStrategy, strategy.Name()).
				Warn("Categorization strategy failed")
			continue
		}
		if found {
			return Result{Pair: pair, Strategy: strategy.Name()}
		}
	}
	return Result{Pair: c.bucket.Pair}
}
