package checkin

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/lunabrook/moodscope/internal/common"
	"github.com/lunabrook/moodscope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPhoto encodes a small synthetic PNG for use as a captured selfie.
func testPhoto(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestSession(classifier *MockClassifier, transcriber *MockTranscriber, store *MockStorage) *Session {
	return NewSession(classifier, transcriber, store, DefaultPrepOptions(), nil)
}

func TestSession_HappyPath(t *testing.T) {
	analysis := model.NewEmotionAnalysis([]model.EmotionScore{
		model.NewEmotionScore(model.EmotionHappy, 0.9),
	})
	classifier := &MockClassifier{Analysis: analysis}
	transcriber := &MockTranscriber{Result: Transcription{Text: "pretty good day", Tone: "upbeat", Confidence: 0.8}}
	store := &MockStorage{}
	session := newTestSession(classifier, transcriber, store)

	require.Equal(t, StateAwaitingPhoto, session.State())
	require.NoError(t, session.SubmitPhoto(testPhoto(t, 64, 64)))
	require.Equal(t, StateAwaitingVoice, session.State())
	require.NoError(t, session.SubmitVoice("clip-1.m4a"))
	require.Equal(t, StateAwaitingNotes, session.State())
	require.NoError(t, session.SetNotes("long walk this morning"))

	result, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, session.State())
	assert.Equal(t, analysis, result)
	assert.Equal(t, analysis, session.Result())

	// Voice evidence and notes reached the classifier.
	assert.Equal(t, "pretty good day", classifier.LastEvidence.Transcript)
	assert.Equal(t, "upbeat", classifier.LastEvidence.VoiceTone)
	assert.Equal(t, "long walk this morning", classifier.LastEvidence.Notes)
	assert.NotEmpty(t, classifier.LastEvidence.ImageData)

	// Exactly one record persisted, carrying the notes.
	require.Equal(t, 1, store.Saves)
	assert.Equal(t, "happy", store.Records[0].PrimaryEmotion)
	assert.Equal(t, "long walk this morning", store.Records[0].UserNotes)
}

func TestSession_SubmitWithoutPhoto(t *testing.T) {
	classifier := &MockClassifier{}
	store := &MockStorage{}
	session := newTestSession(classifier, nil, store)

	_, err := session.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingPhoto)
	assert.Equal(t, StateAwaitingPhoto, session.State())
	assert.Zero(t, classifier.Calls)
	assert.Zero(t, store.Saves)
}

func TestSession_TranscriptionFailureIsNonFatal(t *testing.T) {
	classifier := &MockClassifier{}
	transcriber := &MockTranscriber{Err: errors.New("recognition failed")}
	store := &MockStorage{}
	session := newTestSession(classifier, transcriber, store)

	require.NoError(t, session.SubmitPhoto(testPhoto(t, 32, 32)))
	require.NoError(t, session.SubmitVoice("clip.m4a"))

	_, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, session.State())
	assert.Equal(t, 1, transcriber.Calls)

	// Degraded gracefully: no voice data in the evidence or the record.
	assert.Empty(t, classifier.LastEvidence.Transcript)
	assert.Empty(t, classifier.LastEvidence.VoiceTone)
	require.Equal(t, 1, store.Saves)
	assert.Empty(t, store.Records[0].VoiceTranscript)
}

func TestSession_SkipVoice(t *testing.T) {
	classifier := &MockClassifier{}
	transcriber := &MockTranscriber{}
	store := &MockStorage{}
	session := newTestSession(classifier, transcriber, store)

	require.NoError(t, session.SubmitPhoto(testPhoto(t, 32, 32)))
	require.NoError(t, session.SkipVoice())

	_, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.Zero(t, transcriber.Calls)
}

func TestSession_ClassifierFailureSkipsStore(t *testing.T) {
	classifier := &MockClassifier{Err: errors.New("rate limit exceeded")}
	store := &MockStorage{}
	session := newTestSession(classifier, nil, store)

	require.NoError(t, session.SubmitPhoto(testPhoto(t, 32, 32)))
	require.NoError(t, session.SkipVoice())

	_, err := session.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateAwaitingNotes, session.State())
	assert.Zero(t, store.Saves, "no partial record may be persisted")
	assert.Nil(t, session.Result())
}

func TestSession_StoreFailureKeepsResult(t *testing.T) {
	analysis := model.NewEmotionAnalysis([]model.EmotionScore{
		model.NewEmotionScore(model.EmotionCalm, 0.7),
	})
	classifier := &MockClassifier{Analysis: analysis}
	store := &MockStorage{SaveErr: errors.New("disk full")}
	session := newTestSession(classifier, nil, store)

	require.NoError(t, session.SubmitPhoto(testPhoto(t, 32, 32)))
	require.NoError(t, session.SkipVoice())

	_, err := session.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSaveFailed)
	assert.Equal(t, StateAwaitingNotes, session.State())
	// The analysis is not discarded silently.
	assert.Equal(t, analysis, session.Result())
}

func TestSession_GoBackDiscardsData(t *testing.T) {
	session := newTestSession(&MockClassifier{}, nil, &MockStorage{})

	require.NoError(t, session.SubmitPhoto(testPhoto(t, 32, 32)))
	require.NoError(t, session.SubmitVoice("clip.m4a"))
	require.Equal(t, StateAwaitingNotes, session.State())

	require.NoError(t, session.GoBack())
	assert.Equal(t, StateAwaitingVoice, session.State())
	require.NoError(t, session.GoBack())
	assert.Equal(t, StateAwaitingPhoto, session.State())

	// Photo was discarded on the way back.
	_, err := session.Submit(context.Background())
	assert.ErrorIs(t, err, common.ErrMissingPhoto)

	// Cannot go back from the initial state.
	err = session.GoBack()
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
}

func TestSession_ResetFromAnyState(t *testing.T) {
	classifier := &MockClassifier{}
	store := &MockStorage{}
	session := newTestSession(classifier, nil, store)

	require.NoError(t, session.SubmitPhoto(testPhoto(t, 32, 32)))
	require.NoError(t, session.SkipVoice())
	_, err := session.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateDone, session.State())

	session.Reset()
	assert.Equal(t, StateAwaitingPhoto, session.State())
	assert.Nil(t, session.Result())
}

func TestSession_TransitionGuards(t *testing.T) {
	session := newTestSession(&MockClassifier{}, nil, &MockStorage{})

	// Voice and notes are refused before a photo exists.
	assert.ErrorIs(t, session.SubmitVoice("clip"), common.ErrInvalidTransition)
	assert.ErrorIs(t, session.SkipVoice(), common.ErrInvalidTransition)
	assert.ErrorIs(t, session.SetNotes("x"), common.ErrInvalidTransition)

	// An empty photo is refused outright.
	assert.ErrorIs(t, session.SubmitPhoto(nil), common.ErrMissingPhoto)

	require.NoError(t, session.SubmitPhoto(testPhoto(t, 16, 16)))
	assert.ErrorIs(t, session.SubmitPhoto(testPhoto(t, 16, 16)), common.ErrInvalidTransition)

	require.NoError(t, session.SkipVoice())
	_, err := session.Submit(context.Background())
	require.NoError(t, err)

	// A finished session refuses another submit until reset.
	_, err = session.Submit(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
}
