package categorizer

import (
	"context"
	"errors"
	"testing"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/parsererror"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMockAIClient is a mock implementation of AIClient with call tracking.
type TestMockAIClient struct {
	ClassifyFunc    func(ctx context.Context, tx Transaction, tree taxonomy.Tree) (models.Pair, error)
	CallCount       int
	LastTransaction Transaction
}

func (m *TestMockAIClient) Classify(ctx context.Context, tx Transaction, tree taxonomy.Tree) (models.Pair, error) {
	m.CallCount++
	m.LastTransaction = tx
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, tx, tree)
	}
	return models.Pair{Major: "식비", Minor: "외식"}, nil
}

func testTree() taxonomy.Tree {
	return taxonomy.MustTree([]taxonomy.Branch{
		{Major: "식비", Minors: []string{"식료품", "외식"}},
		{Major: "교통", Minors: []string{"택시"}},
	})
}

func TestAIStrategy_Name(t *testing.T) {
	strategy := &AIStrategy{}
	assert.Equal(t, "AI", strategy.Name())
}

func TestAIStrategy_Categorize(t *testing.T) {
	tests := []struct {
		name          string
		description   string
		classify      func(ctx context.Context, tx Transaction, tree taxonomy.Tree) (models.Pair, error)
		expected      models.Pair
		expectedFound bool
		expectedError bool
		expectedCalls int
	}{
		{
			name:          "valid pair accepted",
			description:   "동네 밥집",
			expected:      models.Pair{Major: "식비", Minor: "외식"},
			expectedFound: true,
			expectedCalls: 1,
		},
		{
			name:        "pair outside tree rejected",
			description: "동네 밥집",
			classify: func(context.Context, Transaction, taxonomy.Tree) (models.Pair, error) {
				return models.Pair{Major: "식비", Minor: "택시"}, nil
			},
			expectedCalls: 1,
		},
		{
			name:        "client error reported",
			description: "동네 밥집",
			classify: func(context.Context, Transaction, taxonomy.Tree) (models.Pair, error) {
				return models.Pair{}, errors.New("quota exceeded")
			},
			expectedError: true,
			expectedCalls: 1,
		},
		{
			name:          "blank description skips client",
			description:   "",
			expectedCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &TestMockAIClient{ClassifyFunc: tt.classify}
			strategy := NewAIStrategy(client, testTree(), logging.NewMockLogger())

			pair, found, err := strategy.Categorize(context.Background(), Transaction{Description: tt.description})
			if tt.expectedError {
				var catErr *parsererror.CategorizationError
				require.True(t, errors.As(err, &catErr))
				assert.Equal(t, "AI", catErr.Strategy)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expected, pair)
			assert.Equal(t, tt.expectedCalls, client.CallCount)
		})
	}
}

func TestAIStrategy_NilClient(t *testing.T) {
	strategy := NewAIStrategy(nil, testTree(), logging.NewMockLogger())
	_, found, err := strategy.Categorize(context.Background(), Transaction{Description: "x"})
	assert.NoError(t, err)
	assert.False(t, found)
}
