package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lunabrook/moodscope/internal/model"
)

// cleanMarkdownWrapper strips code-fence markers that models sometimes wrap
// around JSON payloads despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		// Drop the opening fence line, including any language tag.
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```")
		}
	}
	if idx := strings.LastIndex(content, "```"); idx >= 0 {
		content = content[:idx]
	}

	return strings.TrimSpace(content)
}

// analysisPayload is the JSON shape the classifier prompt asks for.
type analysisPayload struct {
	PrimaryEmotion string `json:"primaryEmotion"`
	Insight        string `json:"insight"`
	Emotions       []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"emotions"`
}

// parseAnalysisContent parses the model's analysis JSON. Unrecognized
// emotion names are dropped, never defaulted; confidences are clamped at
// construction. The payload's primaryEmotion is carried through untouched
// but callers re-derive the primary from the scores.
func parseAnalysisContent(content string) (AnalysisResponse, error) {
	content = cleanMarkdownWrapper(content)

	var payload analysisPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return AnalysisResponse{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if len(payload.Emotions) == 0 {
		return AnalysisResponse{}, fmt.Errorf("%w: no emotions in response", ErrDecode)
	}

	seen := make(map[model.EmotionKind]bool)
	scores := make([]model.EmotionScore, 0, len(payload.Emotions))
	for _, e := range payload.Emotions {
		kind, ok := model.ParseEmotionKind(e.Name)
		if !ok {
			continue
		}
		// At most one score per kind; first occurrence wins.
		if seen[kind] {
			continue
		}
		seen[kind] = true
		scores = append(scores, model.NewEmotionScore(kind, e.Confidence))
	}

	if len(scores) == 0 {
		return AnalysisResponse{}, fmt.Errorf("%w: no recognized emotions in response", ErrDecode)
	}

	return AnalysisResponse{
		Scores:         scores,
		PrimaryEmotion: payload.PrimaryEmotion,
		Insight:        payload.Insight,
	}, nil
}

// insightsPayload is the JSON shape the narrative-insights prompt asks for.
type insightsPayload struct {
	Insights []string `json:"insights"`
}

// parseInsightsContent parses the model's pattern observations. A bare JSON
// string array is accepted as a fallback shape.
func parseInsightsContent(content string) (InsightsResponse, error) {
	content = cleanMarkdownWrapper(content)

	var payload insightsPayload
	if err := json.Unmarshal([]byte(content), &payload); err == nil && len(payload.Insights) > 0 {
		return InsightsResponse{Observations: payload.Insights}, nil
	}

	var bare []string
	if err := json.Unmarshal([]byte(content), &bare); err == nil && len(bare) > 0 {
		return InsightsResponse{Observations: bare}, nil
	}

	return InsightsResponse{}, fmt.Errorf("%w: no insights in response", ErrDecode)
}
