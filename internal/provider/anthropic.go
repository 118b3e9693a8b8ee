package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/llm-council/councilcore/internal/message"
)

// anthropicAdapter speaks Anthropic's Messages API, which differs from the
// OpenAI-compatible shape enough (x-api-key header, a dedicated system
// field, max_tokens required, content as a block array) to warrant its own
// implementation rather than forcing it through openAICompatible.
type anthropicAdapter struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

const anthropicVersion = "2023-06-01"
const anthropicDefaultMaxTokens = 4096

type anthropicRequest struct {
	Model       string            `json:"model"`
	System      string            `json:"system,omitempty"`
	Messages    []chatMessageWire `json:"messages"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func newAnthropicAdapter(apiKey string, client *resty.Client) *anthropicAdapter {
	return &anthropicAdapter{baseURL: "https://api.anthropic.com/v1", apiKey: apiKey, client: client}
}

func (a *anthropicAdapter) Query(ctx context.Context, model string, messages []message.Message, opts QueryOpts) QueryOutcome {
	if a.apiKey == "" {
		return ErrOutcome(fmt.Errorf("anthropic: API key not configured"))
	}

	_, bareModel, hadPrefix := message.ModelID(model).Split()
	if !hadPrefix {
		bareModel = model
	}

	var system string
	turns := make([]chatMessageWire, 0, len(messages))
	for _, m := range messages {
		if m.Role == message.RoleSystem {
			system = m.Content
			continue
		}
		turns = append(turns, chatMessageWire{Role: string(m.Role), Content: m.Content})
	}

	ctx, cancel := context.WithTimeout(ctx, effectiveTimeout(opts.Timeout))
	defer cancel()

	var body anthropicResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", a.apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json").
		SetBody(anthropicRequest{
			Model:       bareModel,
			System:      system,
			Messages:    turns,
			MaxTokens:   anthropicDefaultMaxTokens,
			Temperature: effectiveTemperature(opts.Temperature),
		}).
		SetResult(&body).
		Post(a.baseURL + "/messages")

	if err != nil {
		return ErrOutcome(fmt.Errorf("anthropic: request failed: %w", err))
	}
	if resp.IsError() {
		return ErrOutcome(fmt.Errorf("anthropic: HTTP %d: %s", resp.StatusCode(), string(resp.Body())))
	}
	if len(body.Content) == 0 {
		return ErrOutcome(fmt.Errorf("anthropic: malformed response: no content blocks"))
	}

	return OkOutcome(body.Content[0].Text)
}

func (a *anthropicAdapter) ListModels(ctx context.Context) ([]ModelInfo, error) {
	// Anthropic does not expose a stable public models-list endpoint comparable
	// to OpenAI's; the core orchestrator never calls this, so a static stub
	// matching the documented model family is sufficient for operator tooling.
	if a.apiKey == "" {
		return nil, nil
	}
	return []ModelInfo{
		{ID: "anthropic:claude-sonnet-4.5", Name: "claude-sonnet-4.5", Provider: "anthropic"},
		{ID: "anthropic:claude-opus-4", Name: "claude-opus-4", Provider: "anthropic"},
	}, nil
}

func (a *anthropicAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, string) {
	if apiKey == "" {
		apiKey = a.apiKey
	}
	if apiKey == "" {
		return false, "no API key configured"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json").
		SetBody(anthropicRequest{Model: "claude-3-5-haiku-20241022", Messages: []chatMessageWire{{Role: "user", Content: "hi"}}, MaxTokens: 1}).
		Post(a.baseURL + "/messages")
	if err != nil {
		return false, err.Error()
	}
	if resp.StatusCode() == 401 {
		return false, "invalid API key"
	}
	return true, "API key is valid"
}
