// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EmotionKind is one of the ten categorical emotions the classifier can report.
type EmotionKind string

// Emotion kind constants.
const (
	EmotionHappy     EmotionKind = "happy"
	EmotionSad       EmotionKind = "sad"
	EmotionAngry     EmotionKind = "angry"
	EmotionAnxious   EmotionKind = "anxious"
	EmotionNeutral   EmotionKind = "neutral"
	EmotionExcited   EmotionKind = "excited"
	EmotionFearful   EmotionKind = "fearful"
	EmotionDisgusted EmotionKind = "disgusted"
	EmotionSurprised EmotionKind = "surprised"
	EmotionCalm      EmotionKind = "calm"
)

// AllEmotions lists every emotion kind in canonical order. The order is
// stable and doubles as the deterministic tie-break for analytics.
var AllEmotions = []EmotionKind{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionAnxious,
	EmotionNeutral,
	EmotionExcited,
	EmotionFearful,
	EmotionDisgusted,
	EmotionSurprised,
	EmotionCalm,
}

// ParseEmotionKind maps a name to an EmotionKind, case-insensitively.
// Unrecognized names report false; callers drop them rather than defaulting.
func ParseEmotionKind(name string) (EmotionKind, bool) {
	kind := EmotionKind(strings.ToLower(strings.TrimSpace(name)))
	for _, e := range AllEmotions {
		if e == kind {
			return e, true
		}
	}
	return "", false
}

// String returns the emotion name.
func (e EmotionKind) String() string {
	return string(e)
}

// EmotionScore is a single scored emotion from a classification.
type EmotionScore struct {
	ID         string
	Emotion    EmotionKind
	Confidence float64
}

// NewEmotionScore builds a score, silently clamping confidence into [0, 1].
func NewEmotionScore(emotion EmotionKind, confidence float64) EmotionScore {
	return EmotionScore{
		ID:         uuid.NewString(),
		Emotion:    emotion,
		Confidence: ClampConfidence(confidence),
	}
}

// ClampConfidence bounds a confidence value to [0, 1]. Out-of-range inputs
// are clamped, never rejected.
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// EmotionAnalysis is the structured result of one classification call.
type EmotionAnalysis struct {
	CreatedAt       time.Time
	ID              string
	Narrative       string
	VoiceTranscript string
	Scores          []EmotionScore
}

// NewEmotionAnalysis builds an analysis with a fresh id and timestamp.
func NewEmotionAnalysis(scores []EmotionScore) *EmotionAnalysis {
	return &EmotionAnalysis{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Scores:    scores,
	}
}

// PrimaryEmotion is the emotion of the maximum-confidence score. It is
// always derived, never stored separately; an empty score list yields
// neutral. Ties resolve to the first-encountered score.
func (a *EmotionAnalysis) PrimaryEmotion() EmotionKind {
	if len(a.Scores) == 0 {
		return EmotionNeutral
	}
	best := a.Scores[0]
	for _, s := range a.Scores[1:] {
		if s.Confidence > best.Confidence {
			best = s
		}
	}
	return best.Emotion
}
