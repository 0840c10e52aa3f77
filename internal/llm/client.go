package llm

import (
	"context"

	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

// Client defines the interface for LLM providers.
type Client interface {
	AnalyzeEmotion(ctx context.Context, evidence service.Evidence) (AnalysisResponse, error)
	GenerateInsights(ctx context.Context, summary string) (InsightsResponse, error)
}

// AnalysisResponse contains the parsed emotion analysis result.
type AnalysisResponse struct {
	// PrimaryEmotion is the model's claimed primary emotion. Informational
	// only; callers re-derive the primary from the max-confidence score.
	PrimaryEmotion string
	Insight        string
	Scores         []model.EmotionScore
}

// InsightsResponse contains the model's narrative pattern observations.
type InsightsResponse struct {
	Observations []string
}
