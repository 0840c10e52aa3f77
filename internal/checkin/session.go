package checkin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lunabrook/moodscope/internal/common"
	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

// State is the session's position in the check-in flow.
type State string

// Session states.
const (
	StateAwaitingPhoto State = "awaiting_photo"
	StateAwaitingVoice State = "awaiting_voice"
	StateAwaitingNotes State = "awaiting_notes"
	StateClassifying   State = "classifying"
	StateDone          State = "done"
)

// Session drives one check-in from capture to a persisted record. A session
// handles one attempt at a time; callers must not invoke conflicting
// transitions concurrently.
type Session struct {
	classifier  Classifier
	transcriber Transcriber
	store       service.Storage
	logger      *slog.Logger
	result      *model.EmotionAnalysis
	state       State
	voiceRef    string
	notes       string
	photo       []byte
	prep        PrepOptions
	voiceNoted  bool
}

// NewSession creates a session with explicit, injected collaborators.
func NewSession(classifier Classifier, transcriber Transcriber, store service.Storage, prep PrepOptions, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		classifier:  classifier,
		transcriber: transcriber,
		store:       store,
		prep:        prep,
		logger:      logger,
		state:       StateAwaitingPhoto,
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Result exposes the analysis from the most recent successful
// classification. It survives a failed persistence so the caller can still
// display it.
func (s *Session) Result() *model.EmotionAnalysis {
	return s.result
}

// SubmitPhoto stores the captured image and advances to the voice step.
func (s *Session) SubmitPhoto(data []byte) error {
	if s.state != StateAwaitingPhoto {
		return fmt.Errorf("%w: cannot submit photo while %s", common.ErrInvalidTransition, s.state)
	}
	if len(data) == 0 {
		return common.ErrMissingPhoto
	}
	s.photo = data
	s.state = StateAwaitingVoice
	return nil
}

// SubmitVoice stores a reference to the recorded clip and advances to the
// notes step.
func (s *Session) SubmitVoice(clipRef string) error {
	if s.state != StateAwaitingVoice {
		return fmt.Errorf("%w: cannot submit voice while %s", common.ErrInvalidTransition, s.state)
	}
	s.voiceRef = clipRef
	s.voiceNoted = true
	s.state = StateAwaitingNotes
	return nil
}

// SkipVoice records that no voice clip was provided and advances to the
// notes step. Voice is always optional.
func (s *Session) SkipVoice() error {
	if s.state != StateAwaitingVoice {
		return fmt.Errorf("%w: cannot skip voice while %s", common.ErrInvalidTransition, s.state)
	}
	s.voiceRef = ""
	s.voiceNoted = true
	s.state = StateAwaitingNotes
	return nil
}

// SetNotes stores the user's free-text notes for inclusion in the record.
func (s *Session) SetNotes(text string) error {
	if s.state != StateAwaitingNotes {
		return fmt.Errorf("%w: cannot set notes while %s", common.ErrInvalidTransition, s.state)
	}
	s.notes = text
	return nil
}

// GoBack steps one state backward, discarding the data captured in the step
// being left. Going back never preserves data for re-entry.
func (s *Session) GoBack() error {
	switch s.state {
	case StateAwaitingVoice:
		s.photo = nil
		s.state = StateAwaitingPhoto
		return nil
	case StateAwaitingNotes:
		s.voiceRef = ""
		s.voiceNoted = false
		s.state = StateAwaitingVoice
		return nil
	default:
		return fmt.Errorf("%w: cannot go back from %s", common.ErrInvalidTransition, s.state)
	}
}

// Reset clears all transient state and returns to the photo step. Valid
// from any state; used both for "start over" and post-completion cleanup.
func (s *Session) Reset() {
	s.photo = nil
	s.voiceRef = ""
	s.voiceNoted = false
	s.notes = ""
	s.result = nil
	s.state = StateAwaitingPhoto
}

// Submit runs the classification pipeline: transcription (optional),
// image preparation, one classifier call, one store write. The store write
// is the only durable side effect.
func (s *Session) Submit(ctx context.Context) (*model.EmotionAnalysis, error) {
	if s.state == StateClassifying || s.state == StateDone {
		return nil, fmt.Errorf("%w: cannot submit while %s", common.ErrInvalidTransition, s.state)
	}

	// A missing photo is fatal to the attempt. No automatic retry.
	if len(s.photo) == 0 {
		s.state = StateAwaitingPhoto
		return nil, common.ErrMissingPhoto
	}

	s.state = StateClassifying

	// Voice is enrichment, not a requirement: any transcription failure
	// degrades to absent voice data and the attempt proceeds.
	var tone, transcript string
	if s.voiceRef != "" && s.transcriber != nil {
		transcription, err := s.transcriber.Transcribe(ctx, s.voiceRef)
		if err != nil {
			s.logger.Warn("voice transcription failed, continuing without voice data",
				"clip", s.voiceRef,
				"error", err)
		} else {
			tone = transcription.Tone
			transcript = transcription.Text
		}
	}

	prepared, err := PrepareImage(s.photo, s.prep)
	if err != nil {
		s.state = StateAwaitingNotes
		return nil, fmt.Errorf("failed to prepare photo: %w", err)
	}

	analysis, err := s.classifier.AnalyzeEmotion(ctx, service.Evidence{
		ImageData:  prepared,
		VoiceTone:  tone,
		Transcript: transcript,
		Notes:      s.notes,
	})
	if err != nil {
		// Terminal for this attempt: no partial record is persisted and
		// the session returns to a recoverable step.
		s.state = StateAwaitingNotes
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	s.result = analysis

	record, err := model.NewCheckInRecord(analysis, s.notes)
	if err != nil {
		s.state = StateAwaitingNotes
		return nil, err
	}

	if err := s.store.SaveCheckIn(ctx, record); err != nil {
		// The analysis stays available via Result even though persistence
		// failed; the caller decides whether to retry the whole submit.
		s.state = StateAwaitingNotes
		return nil, fmt.Errorf("%w: %v", common.ErrSaveFailed, err)
	}

	s.state = StateDone
	s.logger.Info("check-in complete",
		"record_id", record.ID,
		"primary_emotion", record.PrimaryEmotion,
		"has_voice", transcript != "")

	return analysis, nil
}
