package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/llm-council/councilcore/internal/message"
)

// ollamaAdapter talks to a local Ollama daemon. No API key; the base URL is
// operator-configured (settings.py's ollama_base_url, default
// http://localhost:11434).
type ollamaAdapter struct {
	baseURL string
	client  *resty.Client
}

type ollamaChatRequest struct {
	Model    string            `json:"model"`
	Messages []chatMessageWire `json:"messages"`
	Stream   bool              `json:"stream"`
	Options  ollamaOptions     `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

func newOllamaAdapter(baseURL string, client *resty.Client) *ollamaAdapter {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &ollamaAdapter{baseURL: baseURL, client: client}
}

func (a *ollamaAdapter) Query(ctx context.Context, model string, messages []message.Message, opts QueryOpts) QueryOutcome {
	_, bareModel, hadPrefix := message.ModelID(model).Split()
	if !hadPrefix {
		bareModel = model
	}

	wireMessages := make([]chatMessageWire, len(messages))
	for i, m := range messages {
		wireMessages[i] = chatMessageWire{Role: string(m.Role), Content: m.Content}
	}

	ctx, cancel := context.WithTimeout(ctx, effectiveTimeout(opts.Timeout))
	defer cancel()

	var body ollamaChatResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ollamaChatRequest{
			Model:    bareModel,
			Messages: wireMessages,
			Stream:   false,
			Options:  ollamaOptions{Temperature: effectiveTemperature(opts.Temperature)},
		}).
		SetResult(&body).
		Post(a.baseURL + "/api/chat")

	if err != nil {
		return ErrOutcome(fmt.Errorf("ollama: request failed: %w", err))
	}
	if resp.IsError() {
		return ErrOutcome(fmt.Errorf("ollama: HTTP %d: %s", resp.StatusCode(), string(resp.Body())))
	}
	if body.Message.Content == "" {
		return ErrOutcome(fmt.Errorf("ollama: malformed response: empty message"))
	}

	return OkOutcome(body.Message.Content)
}

func (a *ollamaAdapter) ListModels(ctx context.Context) ([]ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var body struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	resp, err := a.client.R().SetContext(ctx).SetResult(&body).Get(a.baseURL + "/api/tags")
	if err != nil {
		return nil, fmt.Errorf("ollama: list models failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ollama: list models HTTP %d", resp.StatusCode())
	}

	models := make([]ModelInfo, 0, len(body.Models))
	for _, m := range body.Models {
		models = append(models, ModelInfo{ID: "ollama:" + m.Name, Name: m.Name, Provider: "ollama"})
	}
	return models, nil
}

// ValidateKey ignores its key argument, since Ollama has no API key concept.
// It probes the daemon instead and reports success when it is reachable.
func (a *ollamaAdapter) ValidateKey(ctx context.Context, _ string) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := a.client.R().SetContext(ctx).Get(a.baseURL + "/api/tags")
	if err != nil {
		return false, err.Error()
	}
	if resp.IsError() {
		return false, fmt.Sprintf("ollama daemon returned HTTP %d", resp.StatusCode())
	}
	return true, "ollama daemon reachable"
}
