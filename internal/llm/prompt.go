package llm

import (
	"fmt"
	"strings"

	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

const analysisSystemPrompt = "You are an emotion analysis assistant. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."

const insightsSystemPrompt = "You are an emotional wellbeing assistant reviewing a person's recent check-in history. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."

// buildAnalysisPrompt creates the user prompt for a single emotion analysis.
// The image itself travels as a separate content part; this text carries the
// optional enrichment signals.
func buildAnalysisPrompt(evidence service.Evidence) string {
	names := make([]string, len(model.AllEmotions))
	for i, e := range model.AllEmotions {
		names[i] = string(e)
	}

	var b strings.Builder
	b.WriteString("Analyze the emotional state of the person from the evidence provided.\n\n")

	if len(evidence.ImageData) == 0 && evidence.FaceDescription != "" {
		fmt.Fprintf(&b, "Face description: %s\n", evidence.FaceDescription)
	}
	if evidence.VoiceTone != "" {
		fmt.Fprintf(&b, "Voice tone: %s\n", evidence.VoiceTone)
	}
	if evidence.Transcript != "" {
		fmt.Fprintf(&b, "Voice transcript: %q\n", evidence.Transcript)
	}
	if evidence.Notes != "" {
		fmt.Fprintf(&b, "Their own notes: %q\n", evidence.Notes)
	}

	fmt.Fprintf(&b, `
Score each emotion you detect from this list only: %s.

Respond with JSON in exactly this format:
{
  "emotions": [{"name": "happy", "confidence": 0.85}],
  "primaryEmotion": "happy",
  "insight": "One or two warm, specific sentences about what you observe."
}

Confidence values are between 0.0 and 1.0. Include only emotions you actually detect.`,
		strings.Join(names, ", "))

	return b.String()
}

// buildInsightsPrompt creates the prompt for batch-level pattern insights
// over a compact record summary.
func buildInsightsPrompt(summary string) string {
	return fmt.Sprintf(`Here is a person's recent emotion check-in history, one entry per line as "date: primary emotion":

%s

Identify up to four short, specific pattern observations a supportive friend might share. Respond with JSON in exactly this format:
{
  "insights": ["observation one", "observation two"]
}`, summary)
}
