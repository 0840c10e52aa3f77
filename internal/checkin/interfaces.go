// Package checkin implements the state machine that drives a single
// emotion check-in from raw capture through classification to a persisted
// record.
package checkin

import (
	"context"

	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

// Classifier analyzes captured evidence and returns a derived emotion
// analysis. Implemented by llm.Classifier in production.
type Classifier interface {
	AnalyzeEmotion(ctx context.Context, evidence service.Evidence) (*model.EmotionAnalysis, error)
}

// Transcription is the result of transcribing a voice clip.
type Transcription struct {
	Text       string
	Tone       string
	Confidence float64
}

// Transcriber converts a recorded voice clip into text plus a tone
// descriptor. Transcription is enrichment: every transcriber failure is
// treated identically by the orchestrator and never blocks a check-in.
type Transcriber interface {
	Transcribe(ctx context.Context, audioRef string) (Transcription, error)
}
