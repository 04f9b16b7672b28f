package categorizer

import (
	"context"
	"strings"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"
	"gagyebu/ledger-csv/internal/taxonomy"
)

// AIStrategy delegates to an AIClient and accepts only pairs that exist in the
// tree.
type AIStrategy struct {
	aiClient AIClient
	tree     taxonomy.Tree
	logger   logging.Logger
}

// NewAIStrategy creates a new AIStrategy instance.
func NewAIStrategy(aiClient AIClient, tree taxonomy.Tree, logger logging.Logger) *AIStrategy {
	if logger == nil {
		logger = logging.Default()
	}
	return &AIStrategy{
		aiClient: aiClient,
		tree:     tree,
		logger:   logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize asks the AI client for a pair.
func (s *AIStrategy) Categorize(ctx context.Context, tx Transaction) (models.Pair, bool, error) {
	if s.aiClient == nil {
		s.logger.WithField(logging.FieldStrategy, s.Name()).
			Debug("AI client not available, skipping AI categorization")
		return models.Pair{}, false, nil
	}
	if strings.TrimSpace(tx.Description) == "" {
		return models.Pair{}, false, nil
	}

	pair, err := s.aiClient.Classify(ctx, tx, s.tree)
	if err != nil {
		return models.Pair{}, false, &parsererror.CategorizationError{
			Description: tx.Description,
			Strategy:    s.Name(),
			Err:         err,
		}
	}

	if !s.tree.HasMinor(pair.Major, pair.Minor) {
		s.logger.WithFields(
			logging.F(logging.FieldStrategy, s.Name()),
			logging.F(logging.FieldMajor, pair.Major),
			logging.F(logging.FieldMinor, pair.Minor),
		).Debug("AI returned a pair outside the category tree")
		return models.Pair{}, false, nil
	}

	s.logger.WithFields(
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldMajor, pair.Major),
		logging.F(logging.FieldMinor, pair.Minor),
	).Debug("Transaction categorized using AI")
	return pair, true, nil
}
