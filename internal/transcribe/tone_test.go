package transcribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneFromTranscript(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: ""},
		{name: "whitespace only", text: "   ", want: ""},
		{name: "upbeat", text: "Today was great, I love this weather", want: "upbeat"},
		{name: "subdued", text: "I'm so tired and a bit down today", want: "subdued"},
		{name: "tense", text: "Feeling anxious and overwhelmed about the deadline", want: "tense"},
		{name: "agitated", text: "I'm fed up and frustrated with this", want: "agitated"},
		{name: "case insensitive", text: "AMAZING day, HAPPY about everything", want: "upbeat"},
		{name: "mixed picks majority", text: "tired but also anxious, worried, and nervous", want: "tense"},
		{name: "exclamations fall back to animated", text: "What a day!! So much happened!", want: "animated"},
		{name: "neutral text has no tone", text: "I went to the store and bought bread", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToneFromTranscript(tt.text))
		})
	}
}
