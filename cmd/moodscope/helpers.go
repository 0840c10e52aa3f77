package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/lunabrook/moodscope/internal/checkin"
	"github.com/lunabrook/moodscope/internal/common"
	"github.com/lunabrook/moodscope/internal/llm"
	"github.com/lunabrook/moodscope/internal/storage"
	"github.com/lunabrook/moodscope/internal/transcribe"
)

func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "moodscope", "moodscope.db"), nil
}

func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		closeStorage(store)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Warn("failed to close storage", "error", err)
	}
}

func newClassifier(logger *slog.Logger) (*llm.Classifier, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("ai.provider"),
		APIKey:      viper.GetString("ai.api_key"),
		Model:       viper.GetString("ai.model"),
		RateLimit:   viper.GetInt("ai.rate_limit"),
		Temperature: viper.GetFloat64("ai.temperature"),
		MaxTokens:   viper.GetInt("ai.max_tokens"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("MOODSCOPE_AI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, common.NewUserError(
			"set ai.api_key in the config file or the MOODSCOPE_AI_API_KEY environment variable",
			common.ErrMissingConfig)
	}

	switch cfg.Provider {
	case "", "openai", "anthropic":
	default:
		return nil, common.NewUserError(
			fmt.Sprintf("ai.provider must be openai or anthropic, got %q", cfg.Provider),
			common.ErrInvalidConfig)
	}

	return llm.NewClassifier(cfg, logger)
}

func newTranscriber(logger *slog.Logger) (checkin.Transcriber, error) {
	apiKey := viper.GetString("transcription.api_key")
	if apiKey == "" {
		apiKey = viper.GetString("ai.api_key")
	}
	if apiKey == "" {
		// No key means no transcription; voice degrades to absent.
		return nil, nil
	}

	return transcribe.NewWhisperTranscriber(apiKey, logger)
}

func prepOptions() checkin.PrepOptions {
	opts := checkin.DefaultPrepOptions()
	if v := viper.GetInt("checkin.max_dimension"); v > 0 {
		opts.MaxDimension = v
	}
	if v := viper.GetInt("checkin.max_image_bytes"); v > 0 {
		opts.MaxBytes = v
	}
	if v := viper.GetInt("checkin.quality_step"); v > 0 {
		opts.QualityStep = v
	}
	if v := viper.GetInt("checkin.quality_floor"); v > 0 {
		opts.QualityFloor = v
	}
	return opts
}
