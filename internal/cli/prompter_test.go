package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunabrook/moodscope/internal/checkin"
	"github.com/lunabrook/moodscope/internal/model"
)

func writeTestPhoto(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 120, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "selfie.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func testAnalysis(t *testing.T) *model.EmotionAnalysis {
	t.Helper()

	return model.NewEmotionAnalysis([]model.EmotionScore{
		model.NewEmotionScore(model.EmotionCalm, 0.9),
	})
}

func TestPrompter_FullFlow(t *testing.T) {
	photoPath := writeTestPhoto(t)

	classifier := &checkin.MockClassifier{Analysis: testAnalysis(t)}
	store := &checkin.MockStorage{}
	session := checkin.NewSession(classifier, nil, store, checkin.DefaultPrepOptions(), nil)

	input := strings.Join([]string{
		photoPath,
		"", // skip voice
		"quiet evening",
	}, "\n") + "\n"

	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader(input), &out)

	analysis, err := prompter.Run(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, model.EmotionCalm, analysis.PrimaryEmotion())
	assert.Equal(t, checkin.StateDone, session.State())

	records, err := store.ListCheckIns(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "quiet evening", records[0].UserNotes)
}

func TestPrompter_GoBackFromNotes(t *testing.T) {
	photoPath := writeTestPhoto(t)

	classifier := &checkin.MockClassifier{Analysis: testAnalysis(t)}
	store := &checkin.MockStorage{}
	session := checkin.NewSession(classifier, nil, store, checkin.DefaultPrepOptions(), nil)

	// Back out of notes to voice, then skip voice again and finish with
	// a second set of notes.
	input := strings.Join([]string{
		photoPath,
		"",
		"b",
		"",
		"second attempt notes",
	}, "\n") + "\n"

	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader(input), &out)

	_, err := prompter.Run(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, checkin.StateDone, session.State())

	// Stepping back must re-show the voice prompt rather than submitting.
	assert.Equal(t, 2, strings.Count(out.String(), "Voice note"))

	records, err := store.ListCheckIns(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second attempt notes", records[0].UserNotes)
}

func TestPrompter_UnreadablePhotoReprompts(t *testing.T) {
	photoPath := writeTestPhoto(t)

	classifier := &checkin.MockClassifier{Analysis: testAnalysis(t)}
	store := &checkin.MockStorage{}
	session := checkin.NewSession(classifier, nil, store, checkin.DefaultPrepOptions(), nil)

	input := strings.Join([]string{
		"/nonexistent/photo.png",
		photoPath,
		"",
		"",
	}, "\n") + "\n"

	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader(input), &out)

	_, err := prompter.Run(context.Background(), session)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Could not read")
	assert.Equal(t, checkin.StateDone, session.State())
}

func TestPrompter_ContextCancellation(t *testing.T) {
	classifier := &checkin.MockClassifier{Analysis: testAnalysis(t)}
	store := &checkin.MockStorage{}
	session := checkin.NewSession(classifier, nil, store, checkin.DefaultPrepOptions(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prompter := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := prompter.Run(ctx, session)
	assert.ErrorIs(t, err, ErrInputCancelled)
}
