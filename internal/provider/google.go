package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/llm-council/councilcore/internal/message"
)

// googleAdapter speaks the Gemini generateContent wire shape: query-string
// API key auth and a contents/parts message structure, both unlike the
// OpenAI-compatible shape.
type googleAdapter struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func newGoogleAdapter(apiKey string, client *resty.Client) *googleAdapter {
	return &googleAdapter{baseURL: "https://generativelanguage.googleapis.com/v1beta", apiKey: apiKey, client: client}
}

// geminiRole maps our role vocabulary onto Gemini's ("model" instead of
// "assistant"; system messages are sent as their own "user" turn since the
// v1beta contents API has no dedicated system role in this code path).
func geminiRole(r message.Role) string {
	if r == message.RoleAssistant {
		return "model"
	}
	return "user"
}

func (a *googleAdapter) Query(ctx context.Context, model string, messages []message.Message, opts QueryOpts) QueryOutcome {
	if a.apiKey == "" {
		return ErrOutcome(fmt.Errorf("google: API key not configured"))
	}

	_, bareModel, hadPrefix := message.ModelID(model).Split()
	if !hadPrefix {
		bareModel = model
	}

	contents := make([]geminiContent, 0, len(messages))
	for _, m := range messages {
		contents = append(contents, geminiContent{Role: geminiRole(m.Role), Parts: []geminiPart{{Text: m.Content}}})
	}

	ctx, cancel := context.WithTimeout(ctx, effectiveTimeout(opts.Timeout))
	defer cancel()

	var body geminiResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", a.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(geminiRequest{
			Contents:         contents,
			GenerationConfig: geminiGenerationConfig{Temperature: effectiveTemperature(opts.Temperature)},
		}).
		SetResult(&body).
		Post(fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, bareModel))

	if err != nil {
		return ErrOutcome(fmt.Errorf("google: request failed: %w", err))
	}
	if resp.IsError() {
		return ErrOutcome(fmt.Errorf("google: HTTP %d: %s", resp.StatusCode(), string(resp.Body())))
	}
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return ErrOutcome(fmt.Errorf("google: malformed response: no candidates"))
	}

	return OkOutcome(body.Candidates[0].Content.Parts[0].Text)
}

func (a *googleAdapter) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if a.apiKey == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var body struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	resp, err := a.client.R().SetContext(ctx).SetQueryParam("key", a.apiKey).SetResult(&body).Get(a.baseURL + "/models")
	if err != nil {
		return nil, fmt.Errorf("google: list models failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google: list models HTTP %d", resp.StatusCode())
	}

	models := make([]ModelInfo, 0, len(body.Models))
	for _, m := range body.Models {
		models = append(models, ModelInfo{ID: "google:" + m.Name, Name: m.Name, Provider: "google"})
	}
	return models, nil
}

func (a *googleAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, string) {
	if apiKey == "" {
		apiKey = a.apiKey
	}
	if apiKey == "" {
		return false, "no API key configured"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := a.client.R().SetContext(ctx).SetQueryParam("key", apiKey).Get(a.baseURL + "/models")
	if err != nil {
		return false, err.Error()
	}
	if resp.IsError() {
		return false, fmt.Sprintf("invalid API key (HTTP %d)", resp.StatusCode())
	}
	return true, "API key is valid"
}
