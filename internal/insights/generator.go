// Package insights composes analytics output with a second classifier call
// to produce the user-facing insights payload.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lunabrook/moodscope/internal/analytics"
	"github.com/lunabrook/moodscope/internal/common"
	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

// DefaultWindowDays is the trailing window of records considered.
const DefaultWindowDays = 30

// maxSummaryEntries caps how many records feed the narrative prompt.
const maxSummaryEntries = 30

// Classifier is the narrative-insights side of the AI collaborator.
type Classifier interface {
	GenerateInsights(ctx context.Context, summary string) ([]string, error)
}

// Report is the combined insights payload for the trailing window.
type Report struct {
	Dominant     analytics.EmotionFrequency
	Streak       analytics.StreakResult
	Frequencies  []analytics.EmotionFrequency
	Observations []string
	RecordCount  int
}

// Generator builds insight reports from stored records.
type Generator struct {
	store      service.Storage
	classifier Classifier
	logger     *slog.Logger
	location   *time.Location
	windowDays int
}

// NewGenerator creates a generator with explicit, injected collaborators.
// A non-positive windowDays falls back to the default; a nil location means
// local time.
func NewGenerator(store service.Storage, classifier Classifier, windowDays int, loc *time.Location, logger *slog.Logger) *Generator {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		store:      store,
		classifier: classifier,
		windowDays: windowDays,
		location:   loc,
		logger:     logger,
	}
}

// Generate produces the insights report for the trailing window ending at
// now. An empty window returns an empty report without calling the
// classifier.
func (g *Generator) Generate(ctx context.Context, now time.Time) (*Report, error) {
	start := now.AddDate(0, 0, -g.windowDays)

	records, err := g.store.GetCheckInsByDateRange(ctx, start, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}

	if len(records) == 0 {
		g.logger.Debug("no records in insights window", "window_days", g.windowDays)
		return &Report{}, nil
	}

	report := &Report{
		RecordCount: len(records),
		Frequencies: analytics.Frequency(records),
		Streak:      analytics.Streak(records, g.location),
	}
	if dominant, ok := analytics.DominantEmotion(records); ok {
		for _, f := range report.Frequencies {
			if f.Emotion == dominant {
				report.Dominant = f
				break
			}
		}
	}

	observations, err := g.classifier.GenerateInsights(ctx, g.summarize(records))
	if err != nil {
		return nil, fmt.Errorf("failed to generate pattern insights: %w", err)
	}
	report.Observations = observations

	g.logger.Info("insights generated",
		"record_count", report.RecordCount,
		"dominant", report.Dominant.Emotion,
		"streak_days", report.Streak.Days,
		"observations", len(observations))

	return report, nil
}

// summarize renders the most recent records as compact "date: emotion"
// lines for the narrative prompt. Records arrive newest first from the
// store; the cap keeps the prompt bounded.
func (g *Generator) summarize(records []model.CheckInRecord) string {
	if len(records) > maxSummaryEntries {
		records = records[:maxSummaryEntries]
	}

	lines := make([]string, 0, len(records))
	for i := range records {
		lines = append(lines, fmt.Sprintf("%s: %s",
			records[i].Timestamp.In(g.location).Format("2006-01-02"),
			records[i].PrimaryEmotion))
	}
	return strings.Join(lines, "\n")
}
