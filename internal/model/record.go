package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CheckInRecord is the persisted form of one completed check-in. It is
// created by the check-in orchestrator on successful classification, owned
// by the record store, and mutated only by timestamp backfill.
type CheckInRecord struct {
	Timestamp        time.Time
	ID               string
	PrimaryEmotion   string
	UserNotes        string
	Narrative        string
	VoiceTranscript  string
	SerializedScores []byte
}

// serializedScore is the JSON wire form of an EmotionScore inside a record.
type serializedScore struct {
	ID         string  `json:"id"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// NewCheckInRecord builds a record from an analysis plus the user's notes.
func NewCheckInRecord(analysis *EmotionAnalysis, notes string) (*CheckInRecord, error) {
	if analysis == nil {
		return nil, fmt.Errorf("analysis is required")
	}

	scores := make([]serializedScore, len(analysis.Scores))
	for i, s := range analysis.Scores {
		scores[i] = serializedScore{
			ID:         s.ID,
			Emotion:    string(s.Emotion),
			Confidence: s.Confidence,
		}
	}

	blob, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize scores: %w", err)
	}

	timestamp := analysis.CreatedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return &CheckInRecord{
		ID:               uuid.NewString(),
		Timestamp:        timestamp,
		PrimaryEmotion:   string(analysis.PrimaryEmotion()),
		SerializedScores: blob,
		UserNotes:        notes,
		Narrative:        analysis.Narrative,
		VoiceTranscript:  analysis.VoiceTranscript,
	}, nil
}

// Scores decodes the serialized score list. Scores with unrecognized emotion
// names are dropped; confidences are re-clamped on the way out.
func (r *CheckInRecord) Scores() ([]EmotionScore, error) {
	if len(r.SerializedScores) == 0 {
		return nil, nil
	}

	var raw []serializedScore
	if err := json.Unmarshal(r.SerializedScores, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}

	scores := make([]EmotionScore, 0, len(raw))
	for _, s := range raw {
		kind, ok := ParseEmotionKind(s.Emotion)
		if !ok {
			continue
		}
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		scores = append(scores, EmotionScore{
			ID:         id,
			Emotion:    kind,
			Confidence: ClampConfidence(s.Confidence),
		})
	}
	return scores, nil
}

// Analysis reconstructs an EmotionAnalysis equivalent to the one that
// produced this record.
func (r *CheckInRecord) Analysis() (*EmotionAnalysis, error) {
	scores, err := r.Scores()
	if err != nil {
		return nil, err
	}
	return &EmotionAnalysis{
		ID:              r.ID,
		CreatedAt:       r.Timestamp,
		Scores:          scores,
		Narrative:       r.Narrative,
		VoiceTranscript: r.VoiceTranscript,
	}, nil
}
