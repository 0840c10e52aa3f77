package transcribe

import "strings"

// toneMarkers maps descriptor words to the cue words that suggest them.
// Whisper gives no acoustic features, so the tone descriptor is a coarse
// lexical read of the transcript.
var toneMarkers = map[string][]string{
	"upbeat":   {"great", "awesome", "amazing", "excited", "love", "fantastic", "happy"},
	"subdued":  {"tired", "exhausted", "sad", "down", "drained", "lonely", "numb"},
	"tense":    {"stressed", "worried", "anxious", "nervous", "overwhelmed", "scared"},
	"agitated": {"angry", "furious", "annoyed", "frustrated", "sick of", "fed up"},
}

// ToneFromTranscript derives a coarse tone descriptor from the words in a
// transcript. An empty string means no clear tone was detected.
func ToneFromTranscript(text string) string {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return ""
	}

	bestTone := ""
	bestHits := 0
	for _, tone := range []string{"upbeat", "subdued", "tense", "agitated"} {
		hits := 0
		for _, marker := range toneMarkers[tone] {
			hits += strings.Count(lower, marker)
		}
		if hits > bestHits {
			bestTone = tone
			bestHits = hits
		}
	}

	if bestTone == "" && strings.Count(text, "!") >= 2 {
		return "animated"
	}
	return bestTone
}
