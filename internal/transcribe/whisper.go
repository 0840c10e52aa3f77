// Package transcribe provides the voice transcription collaborator backed
// by the OpenAI audio API.
package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lunabrook/moodscope/internal/checkin"
)

// WhisperTranscriber implements checkin.Transcriber using Whisper.
type WhisperTranscriber struct {
	client openai.Client
	logger *slog.Logger
}

// NewWhisperTranscriber creates a transcriber with the given API key.
func NewWhisperTranscriber(apiKey string, logger *slog.Logger) (*WhisperTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for transcription")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WhisperTranscriber{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
	}, nil
}

// Transcribe converts the audio file at audioRef into text plus a tone
// descriptor. Failures here are enrichment failures: the check-in
// orchestrator logs them and proceeds without voice data.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioRef string) (checkin.Transcription, error) {
	f, err := os.Open(audioRef)
	if err != nil {
		return checkin.Transcription{}, fmt.Errorf("failed to open audio clip: %w", err)
	}
	defer func() { _ = f.Close() }()

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  f,
	})
	if err != nil {
		return checkin.Transcription{}, fmt.Errorf("transcription request failed: %w", err)
	}

	result := checkin.Transcription{
		Text:       resp.Text,
		Tone:       ToneFromTranscript(resp.Text),
		Confidence: 1.0,
	}

	t.logger.Debug("voice clip transcribed",
		"clip", audioRef,
		"chars", len(result.Text),
		"tone", result.Tone)

	return result, nil
}
