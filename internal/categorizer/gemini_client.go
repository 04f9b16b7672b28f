package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/models"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// pairSeparator joins major and minor in prompts and responses. Minor names may
// contain "/", so a slash cannot be used.
const pairSeparator = " > "

// GeminiClient implements AIClient on the Gemini API. The underlying client is
// created on the first call.
type GeminiClient struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  logging.Logger

	mu     sync.Mutex
	client *genai.Client
	gm     *genai.GenerativeModel
}

// NewGeminiClient creates a client. An empty model falls back to
// DefaultGeminiModel and a non-positive timeout disables the per-call limit.
func NewGeminiClient(apiKey, model string, timeout time.Duration, logger logging.Logger) *GeminiClient {
	if logger == nil {
		logger = logging.Default()
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *GeminiClient) ensureClient(ctx context.Context) (*genai.GenerativeModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gm != nil {
		return c.gm, nil
	}
	if c.apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	c.gm = client.GenerativeModel(c.model)
	return c.gm, nil
}

// Classify sends one prompt listing every valid pair and parses the answer.
func (c *GeminiClient) Classify(ctx context.Context, tx Transaction, tree taxonomy.Tree) (models.Pair, error) {
	gm, err := c.ensureClient(ctx)
	if err != nil {
		return models.Pair{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.WithFields(
		logging.F(logging.FieldOperation, "gemini_categorization"),
		logging.F("description", tx.Description),
	).Debug("Requesting category from Gemini")

	resp, err := gm.GenerateContent(ctx, genai.Text(buildPrompt(tx, tree)))
	if err != nil {
		return models.Pair{}, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.Pair{}, errors.New("no response from Gemini API")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return parseAIResponse(text.String(), tree), nil
}

// Close releases the underlying client, if any.
func (c *GeminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client, c.gm = nil, nil
	return err
}

func buildPrompt(tx Transaction, tree taxonomy.Tree) string {
	var pairs []string
	for _, b := range tree.Branches() {
		for _, minor := range b.Minors {
			pairs = append(pairs, "- "+b.Major+pairSeparator+minor)
		}
	}

	return fmt.Sprintf(`Categorize the following household expense:
Description: %s
Payment method: %s
Amount: %s
Date: %s
Note: %s

Pick exactly one of the following categories:
%s

Respond in this format:
Category: [major]%s[minor]`,
		tx.Description,
		tx.PaymentMethod,
		tx.Amount,
		tx.Date,
		tx.Note,
		strings.Join(pairs, "\n"),
		pairSeparator)
}

// parseAIResponse reads the "Category:" line, falling back to the first listed
// pair mentioned anywhere in the response. The zero Pair means nothing usable.
func parseAIResponse(response string, tree taxonomy.Tree) models.Pair {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Category:") {
			continue
		}
		value := strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "Category:")), "[]*` ")
		parts := strings.SplitN(value, strings.TrimSpace(pairSeparator), 2)
		if len(parts) != 2 {
			continue
		}
		major, minor := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if tree.HasMinor(major, minor) {
			return models.Pair{Major: major, Minor: minor}
		}
	}

	for _, b := range tree.Branches() {
		for _, minor := range b.Minors {
			if strings.Contains(response, b.Major+pairSeparator+minor) {
				return models.Pair{Major: b.Major, Minor: minor}
			}
		}
	}
	return models.Pair{}
}
