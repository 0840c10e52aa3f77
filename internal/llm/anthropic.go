package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lunabrook/moodscope/internal/service"
)

// anthropicClient implements the Client interface for the Anthropic API.
type anthropicClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// newAnthropicClient creates a new Anthropic API client.
func newAnthropicClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", ErrAuthentication)
	}

	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	return &anthropicClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     "https://api.anthropic.com",
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// AnalyzeEmotion sends an emotion analysis request to Anthropic.
func (c *anthropicClient) AnalyzeEmotion(ctx context.Context, evidence service.Evidence) (AnalysisResponse, error) {
	userContent := make([]map[string]any, 0, 2)
	if len(evidence.ImageData) > 0 {
		userContent = append(userContent, map[string]any{
			"type": "image",
			"source": map[string]any{
				"type":       "base64",
				"media_type": "image/jpeg",
				"data":       base64.StdEncoding.EncodeToString(evidence.ImageData),
			},
		})
	}
	userContent = append(userContent, map[string]any{
		"type": "text",
		"text": buildAnalysisPrompt(evidence),
	})

	content, err := c.message(ctx, analysisSystemPrompt, userContent)
	if err != nil {
		return AnalysisResponse{}, err
	}

	return parseAnalysisContent(content)
}

// GenerateInsights sends a narrative pattern-insight request to Anthropic.
func (c *anthropicClient) GenerateInsights(ctx context.Context, summary string) (InsightsResponse, error) {
	userContent := []map[string]any{
		{"type": "text", "text": buildInsightsPrompt(summary)},
	}

	content, err := c.message(ctx, insightsSystemPrompt, userContent)
	if err != nil {
		return InsightsResponse{}, err
	}

	return parseInsightsContent(content)
}

// message posts a messages request and returns the first content block's text.
func (c *anthropicClient) message(ctx context.Context, system string, userContent []map[string]any) (string, error) {
	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
		"system":      system,
		"messages": []map[string]any{
			{"role": "user", "content": userContent},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", categorizeStatus(resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("%w: no content in response", ErrDecode)
	}

	return response.Content[0].Text, nil
}

// anthropicResponse represents the Anthropic API response structure.
type anthropicResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}
