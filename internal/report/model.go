// Package report turns an analysis report into readable prose, through a
// generative model when one is configured and through a deterministic
// template otherwise.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModelName is the Gemini model used for narrative generation.
// Summarizing a scored report is a lite-tier task.
const DefaultModelName = "gemini-2.5-flash-lite"

// Model generates prose from a prompt. Implementations must be safe for
// concurrent use.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiModel implements Model over the Google generative AI API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel dials the Gemini API. An empty model name selects
// DefaultModelName.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini narrative model: API key is required")
	}
	if model == "" {
		model = DefaultModelName
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiModel{client: client, model: model}, nil
}

// Generate implements Model.
func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	model := m.client.GenerativeModel(m.model)
	model.SetTemperature(0.3)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating narrative: %w", err)
	}
	return textFromResponse(resp)
}

// Close implements Model.
func (m *GeminiModel) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// textFromResponse joins the text parts of the first candidate
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
