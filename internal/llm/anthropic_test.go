package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

func TestNewAnthropicClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: Config{APIKey: "test-key"},
		},
		{
			name:    "missing API key",
			config:  Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newAnthropicClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrAuthentication)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func anthropicContentResponse(content string) anthropicResponse {
	var resp anthropicResponse
	resp.Content = append(resp.Content, struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: "text", Text: content})
	return resp
}

func TestAnthropicClient_AnalyzeEmotion(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		statusCode  int
		wantPrimary string
		wantErr     error
	}{
		{
			name:        "valid analysis",
			content:     `{"emotions": [{"name": "anxious", "confidence": 0.7}], "insight": "Some tension in the jaw."}`,
			statusCode:  http.StatusOK,
			wantPrimary: "anxious",
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			wantErr:    ErrAuthentication,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "POST", r.Method)
				assert.Equal(t, "/v1/messages", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
				assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

				w.WriteHeader(tt.statusCode)
				if tt.statusCode == http.StatusOK {
					_ = json.NewEncoder(w).Encode(anthropicContentResponse(tt.content))
				}
			}))
			defer server.Close()

			client := &anthropicClient{
				apiKey:      "test-key",
				model:       "claude-3-5-sonnet-20241022",
				baseURL:     server.URL,
				temperature: 0.3,
				maxTokens:   500,
				httpClient:  server.Client(),
			}

			resp, err := client.AnalyzeEmotion(context.Background(), service.Evidence{
				ImageData: []byte("fake image bytes"),
				VoiceTone: "subdued",
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, resp.Scores)
			assert.Equal(t, model.EmotionKind(tt.wantPrimary), resp.Scores[0].Emotion)
		})
	}
}

func TestAnthropicClient_GenerateInsights(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		_ = json.NewEncoder(w).Encode(anthropicContentResponse(
			`["Mornings skew anxious.", "Streaks of calm follow rest days."]`))
	}))
	defer server.Close()

	client := &anthropicClient{
		apiKey:     "test-key",
		model:      "claude-3-5-sonnet-20241022",
		baseURL:    server.URL,
		httpClient: server.Client(),
	}

	resp, err := client.GenerateInsights(context.Background(), "2026-08-29: anxious")
	require.NoError(t, err)
	assert.Len(t, resp.Observations, 2)
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(anthropicResponse{})
	}))
	defer server.Close()

	client := &anthropicClient{
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: server.Client(),
	}

	_, err := client.AnalyzeEmotion(context.Background(), service.Evidence{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}
