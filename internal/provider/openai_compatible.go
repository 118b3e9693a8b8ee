package provider

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/llm-council/councilcore/internal/message"
)

// openAICompatible implements Adapter for any backend that speaks the
// OpenAI chat-completions wire shape: openai, mistral, deepseek and
// openrouter all qualify, differing only in base URL and key.
type openAICompatible struct {
	name       string
	baseURL    string // e.g. https://api.openai.com/v1
	apiKey     string
	authHeader string // header name carrying the key, default Authorization
	client     *resty.Client
}

type chatCompletionRequest struct {
	Model       string            `json:"model"`
	Messages    []chatMessageWire `json:"messages"`
	Temperature float64           `json:"temperature"`
}

type chatMessageWire struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIModelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func newOpenAICompatible(name, baseURL, apiKey string, client *resty.Client) *openAICompatible {
	return &openAICompatible{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		authHeader: "Authorization",
		client:     client,
	}
}

func (a *openAICompatible) Query(ctx context.Context, model string, messages []message.Message, opts QueryOpts) QueryOutcome {
	if a.apiKey == "" {
		return ErrOutcome(fmt.Errorf("%s: API key not configured", a.name))
	}

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

	var body chatCompletionResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader(a.authHeader, "Bearer "+a.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(chatCompletionRequest{
			Model:       bareModel,
			Messages:    wireMessages,
			Temperature: effectiveTemperature(opts.Temperature),
		}).
		SetResult(&body).
		Post(a.baseURL + "/chat/completions")

	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("provider", a.name).Str("model", model).Msg("transport error querying model")
		return ErrOutcome(fmt.Errorf("%s: request failed: %w", a.name, err))
	}
	if resp.IsError() {
		return ErrOutcome(fmt.Errorf("%s: HTTP %d: %s", a.name, resp.StatusCode(), string(resp.Body())))
	}
	if len(body.Choices) == 0 {
		return ErrOutcome(fmt.Errorf("%s: malformed response: no choices", a.name))
	}

	return OkOutcome(body.Choices[0].Message.Content)
}

func (a *openAICompatible) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if a.apiKey == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var body openAIModelList
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader(a.authHeader, "Bearer "+a.apiKey).
		SetResult(&body).
		Get(a.baseURL + "/models")
	if err != nil {
		return nil, fmt.Errorf("%s: list models failed: %w", a.name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: list models HTTP %d", a.name, resp.StatusCode())
	}

	models := make([]ModelInfo, 0, len(body.Data))
	for _, m := range body.Data {
		models = append(models, ModelInfo{ID: a.name + ":" + m.ID, Name: m.ID, Provider: a.name})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

func (a *openAICompatible) ValidateKey(ctx context.Context, apiKey string) (bool, string) {
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
		SetHeader(a.authHeader, "Bearer "+apiKey).
		Get(a.baseURL + "/models")
	if err != nil {
		return false, err.Error()
	}
	if resp.IsError() {
		return false, fmt.Sprintf("invalid API key (HTTP %d)", resp.StatusCode())
	}
	return true, "API key is valid"
}
