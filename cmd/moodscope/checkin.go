package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lunabrook/moodscope/internal/checkin"
	"github.com/lunabrook/moodscope/internal/cli"
)

func checkinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record an emotion check-in",
		Long: `Record an emotion check-in from a selfie, an optional voice note, and
optional free-text notes. With no flags the check-in runs interactively.`,
		RunE: runCheckin,
	}

	cmd.Flags().String("photo", "", "path to the selfie image")
	cmd.Flags().String("voice", "", "path to an audio clip (optional)")
	cmd.Flags().String("notes", "", "free-text notes (optional)")
	cmd.Flags().Bool("skip-voice", false, "explicitly skip the voice step")

	return cmd
}

func runCheckin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	classifier, err := newClassifier(logger)
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}

	transcriber, err := newTranscriber(logger)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	session := checkin.NewSession(classifier, transcriber, store, prepOptions(), logger)

	photoPath, _ := cmd.Flags().GetString("photo")
	if photoPath == "" {
		// Interactive mode walks the full photo/voice/notes flow.
		prompter := cli.NewPrompter(os.Stdin, os.Stdout)
		analysis, err := prompter.Run(ctx, session)
		if err != nil {
			return err
		}
		fmt.Println(cli.RenderAnalysis(analysis))
		return nil
	}

	photo, err := os.ReadFile(photoPath) //nolint:gosec // user-supplied path is the point
	if err != nil {
		return fmt.Errorf("failed to read photo: %w", err)
	}
	if err := session.SubmitPhoto(photo); err != nil {
		return err
	}

	voicePath, _ := cmd.Flags().GetString("voice")
	skipVoice, _ := cmd.Flags().GetBool("skip-voice")
	if voicePath != "" && skipVoice {
		return fmt.Errorf("--voice and --skip-voice are mutually exclusive")
	}
	if voicePath != "" {
		if err := session.SubmitVoice(voicePath); err != nil {
			return err
		}
	} else {
		if err := session.SkipVoice(); err != nil {
			return err
		}
	}

	notes, _ := cmd.Flags().GetString("notes")
	if err := session.SetNotes(notes); err != nil {
		return err
	}

	analysis, err := session.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderAnalysis(analysis))
	return nil
}
