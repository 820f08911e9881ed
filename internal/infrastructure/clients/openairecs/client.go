// Package openairecs generates post-prediction patient recommendations via
// the OpenAI chat API. It is an optional collaborator: callers must treat
// any failure here as the absence of recommendations, never as a prediction
// failure.
package openairecs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/pkg/config"
)

const requestTimeout = 15 * time.Second

// Client implements providers.RecommendationProvider on the OpenAI API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a recommendation client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{api: openai.NewClient(cfg.APIKey), model: model}, nil
}

// Recommend asks the model for lifestyle and follow-up guidance and returns
// the ordered list parsed from its numbered response.
func (c *Client) Recommend(ctx context.Context, disease entities.Disease, features map[string]float64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a clinical assistant. Given a disease and a patient's " +
					"feature values, respond with a short numbered list of practical " +
					"lifestyle and follow-up recommendations. Respond with the numbered " +
					"list only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(disease, features),
			},
		},
		MaxTokens: 400,
	})
	if err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("recommendation response had no choices")
	}

	recs := parseNumberedList(resp.Choices[0].Message.Content)
	if len(recs) == 0 {
		return nil, errors.New("recommendation response had no usable items")
	}
	return recs, nil
}

func buildPrompt(disease entities.Disease, features map[string]float64) string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Disease: %s\nPatient features:\n", string(disease))
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %g\n", name, features[name])
	}
	return b.String()
}

// parseNumberedList splits "1. foo\n2. bar" style output into ordered items,
// tolerating bullet markers and blank lines.
func parseNumberedList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimLeft(line, "0123456789")
		line = strings.TrimLeft(line, ".)")
		line = strings.TrimLeft(line, "-* ")
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}
