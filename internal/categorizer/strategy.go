package categorizer

import (
	"context"

	"gagyebu/ledger-csv/internal/models"
)

// Transaction is the view of a record a strategy classifies. Only Description
// drives keyword matching; the other fields give AI strategies context.
type Transaction struct {
	Description   string
	PaymentMethod string
	Amount        string
	Date          string
	Note          string
}

// CategorizationStrategy is one approach to assigning a category pair.
type CategorizationStrategy interface {
	// Categorize returns the pair and true when the strategy recognizes tx.
	// Errors are reported for logging only; callers treat them as no match.
	Categorize(ctx context.Context, tx Transaction) (models.Pair, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
