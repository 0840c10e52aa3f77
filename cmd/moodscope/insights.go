package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunabrook/moodscope/internal/analytics"
	"github.com/lunabrook/moodscope/internal/cli"
	"github.com/lunabrook/moodscope/internal/insights"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show patterns across your recent check-ins",
		Long: `Summarize the trailing window of check-ins: dominant emotion,
streaks, frequencies, and AI-generated pattern observations.`,
		RunE: runInsights,
	}

	cmd.Flags().Int("days", insights.DefaultWindowDays, "trailing window in days")
	cmd.Flags().Bool("hours", false, "include an hour-of-day breakdown")

	return cmd
}

func runInsights(cmd *cobra.Command, _ []string) error {
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

	days, _ := cmd.Flags().GetInt("days")
	if !cmd.Flags().Changed("days") {
		if v := viper.GetInt("insights.window_days"); v > 0 {
			days = v
		}
	}
	generator := insights.NewGenerator(store, classifier, days, time.Local, logger)

	report, err := generator.Generate(ctx, time.Now())
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderReport(report))

	if byHour, _ := cmd.Flags().GetBool("hours"); byHour && report.RecordCount > 0 {
		start := time.Now().AddDate(0, 0, -days)
		records, err := store.GetCheckInsByDateRange(ctx, start, time.Now())
		if err != nil {
			return fmt.Errorf("failed to fetch records for hourly breakdown: %w", err)
		}
		fmt.Println(cli.RenderTimeOfDay(analytics.TimeOfDay(records, time.Local)))
	}

	return nil
}
