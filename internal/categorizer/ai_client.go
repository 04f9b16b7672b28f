package categorizer

import (
	"context"

	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/taxonomy"
)

// AIClient asks an external model to pick a pair from tree for tx. The returned
// pair is not trusted; AIStrategy checks it against the tree.
type AIClient interface {
	Classify(ctx context.Context, tx Transaction, tree taxonomy.Tree) (models.Pair, error)
}
