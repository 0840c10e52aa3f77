package cli

import (
	"fmt"
	"strings"

	"github.com/lunabrook/moodscope/internal/analytics"
	"github.com/lunabrook/moodscope/internal/insights"
	"github.com/lunabrook/moodscope/internal/model"
)

// RenderAnalysis formats a completed check-in analysis for the terminal.
func RenderAnalysis(analysis *model.EmotionAnalysis) string {
	var b strings.Builder

	primary := analysis.PrimaryEmotion()
	b.WriteString(TitleStyle.Render("Check-in complete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n",
		SubtleStyle.Render("Primary emotion:"),
		EmotionStyle(primary).Render(string(primary)))

	for _, score := range analysis.Scores {
		fmt.Fprintf(&b, "  %s %s %s\n",
			EmotionStyle(score.Emotion).Render(fmt.Sprintf("%-10s", score.Emotion)),
			renderBar(score.Confidence),
			SubtleStyle.Render(fmt.Sprintf("%3.0f%%", score.Confidence*100)))
	}

	if analysis.Narrative != "" {
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(analysis.Narrative))
		b.WriteString("\n")
	}
	if analysis.VoiceTranscript != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %q\n", SubtleStyle.Render("You said:"), analysis.VoiceTranscript)
	}

	return b.String()
}

// RenderReport formats an insights report for the terminal.
func RenderReport(report *insights.Report) string {
	if report.RecordCount == 0 {
		return SubtleStyle.Render("No check-ins in this window yet. Come back after your first check-in.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Your insights"))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %d\n", SubtleStyle.Render("Check-ins:"), report.RecordCount)
	fmt.Fprintf(&b, "%s %s %s\n",
		SubtleStyle.Render("Most common:"),
		EmotionStyle(report.Dominant.Emotion).Render(string(report.Dominant.Emotion)),
		SubtleStyle.Render(fmt.Sprintf("(%d times, %.0f%%)", report.Dominant.Count, report.Dominant.Percent)))
	if report.Streak.Days > 0 {
		fmt.Fprintf(&b, "%s %d %s %s\n",
			SubtleStyle.Render("Longest streak:"),
			report.Streak.Days,
			SubtleStyle.Render("days of"),
			EmotionStyle(report.Streak.Emotion).Render(string(report.Streak.Emotion)))
	}

	b.WriteString("\n")
	for _, f := range report.Frequencies {
		fmt.Fprintf(&b, "  %s %s %s\n",
			EmotionStyle(f.Emotion).Render(fmt.Sprintf("%-10s", f.Emotion)),
			renderBar(f.Percent/100),
			SubtleStyle.Render(fmt.Sprintf("%3d", f.Count)))
	}

	if len(report.Observations) > 0 {
		b.WriteString("\n")
		b.WriteString(BoldStyle.Render("Patterns"))
		b.WriteString("\n")
		for _, obs := range report.Observations {
			fmt.Fprintf(&b, "  • %s\n", obs)
		}
	}

	return b.String()
}

// RenderRecordLine formats a single stored record as a list row.
func RenderRecordLine(record *model.CheckInRecord) string {
	kind, _ := model.ParseEmotionKind(record.PrimaryEmotion)
	line := fmt.Sprintf("%s  %s  %s",
		SubtleStyle.Render(record.Timestamp.Format("2006-01-02 15:04")),
		EmotionStyle(kind).Render(fmt.Sprintf("%-10s", record.PrimaryEmotion)),
		SubtleStyle.Render(record.ID))
	if record.UserNotes != "" {
		line += "  " + truncate(record.UserNotes, 40)
	}
	return line
}

// RenderTimeOfDay formats hour-of-day buckets as a compact table.
func RenderTimeOfDay(buckets []analytics.TimeOfDayBucket) string {
	if len(buckets) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render("By hour of day"))
	b.WriteString("\n")
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "  %s  %s %s\n",
			SubtleStyle.Render(fmt.Sprintf("%02d:00", bucket.Hour)),
			EmotionStyle(bucket.Emotion).Render(fmt.Sprintf("%-10s", bucket.Emotion)),
			strings.Repeat("▪", bucket.Count))
	}
	return b.String()
}

// renderBar draws a fixed-width confidence bar for a value in [0, 1].
func renderBar(value float64) string {
	const width = 20
	filled := int(value*width + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + SubtleStyle.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
