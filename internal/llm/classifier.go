package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

// Classifier wraps an LLM provider with rate limiting and structured
// logging. It satisfies the checkin.Classifier and insights.Classifier
// interfaces. There are no automatic retries; retry is a user action.
type Classifier struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
}

// Config holds configuration for the LLM classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// NewClassifier creates a new LLM-backed classifier.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		client, err = newOpenAIClient(cfg)
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// NewClassifierWithClient builds a Classifier around an existing Client.
// Intended for tests and alternate providers.
func NewClassifierWithClient(client Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(0),
	}
}

// AnalyzeEmotion runs one classification over the captured evidence and
// returns a fully derived analysis. The provider's claimed primary emotion
// is ignored; the primary is always re-derived from the score list.
func (c *Classifier) AnalyzeEmotion(ctx context.Context, evidence service.Evidence) (*model.EmotionAnalysis, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.AnalyzeEmotion(ctx, evidence)
	if err != nil {
		return nil, err
	}

	analysis := model.NewEmotionAnalysis(resp.Scores)
	analysis.Narrative = resp.Insight
	analysis.VoiceTranscript = evidence.Transcript

	derived := analysis.PrimaryEmotion()
	if resp.PrimaryEmotion != "" && resp.PrimaryEmotion != string(derived) {
		c.logger.Debug("model primary emotion disagrees with derived primary",
			"model_primary", resp.PrimaryEmotion,
			"derived_primary", derived)
	}

	c.logger.Info("emotion analysis complete",
		"analysis_id", analysis.ID,
		"primary_emotion", derived,
		"score_count", len(analysis.Scores),
		"has_transcript", evidence.Transcript != "")

	return analysis, nil
}

// GenerateInsights produces narrative pattern observations for a compact
// check-in history summary.
func (c *Classifier) GenerateInsights(ctx context.Context, summary string) ([]string, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.GenerateInsights(ctx, summary)
	if err != nil {
		return nil, err
	}

	c.logger.Info("pattern insights generated", "count", len(resp.Observations))
	return resp.Observations, nil
}
