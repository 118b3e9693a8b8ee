package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llm-council/councilcore/internal/message"
)

// stubAdapter is a minimal Adapter used across provider and council tests.
type stubAdapter struct {
	name    string
	content string
	err     error
}

func (s *stubAdapter) Query(ctx context.Context, model string, messages []message.Message, opts QueryOpts) QueryOutcome {
	if s.err != nil {
		return ErrOutcome(s.err)
	}
	return OkOutcome(s.content)
}

func (s *stubAdapter) ListModels(ctx context.Context) ([]ModelInfo, error) {
	return []ModelInfo{{ID: s.name + ":stub", Name: "stub", Provider: s.name}}, nil
}

func (s *stubAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, string) {
	return true, "stub always valid"
}

func fakeRegistry(defaultProvider string) *Registry {
	return NewRegistryFromAdapters(map[string]Adapter{
		"openai":     &stubAdapter{name: "openai", content: "openai reply"},
		"anthropic":  &stubAdapter{name: "anthropic", content: "anthropic reply"},
		"ollama":     &stubAdapter{name: "ollama", content: "ollama reply"},
		"openrouter": &stubAdapter{name: "openrouter", content: "openrouter reply"},
	}, defaultProvider)
}

func TestResolveExplicitPrefixWins(t *testing.T) {
	reg := fakeRegistry("openrouter")
	a := reg.Resolve("anthropic:claude-sonnet-4.5")
	out := a.Query(context.Background(), "anthropic:claude-sonnet-4.5", nil, QueryOpts{Timeout: time.Second})
	assert.Equal(t, "anthropic reply", out.Content, "explicit prefix should route to anthropic")
}

func TestResolveFallsBackToOllamaDefault(t *testing.T) {
	reg := fakeRegistry("ollama")
	a := reg.Resolve("llama3")
	out := a.Query(context.Background(), "llama3", nil, QueryOpts{Timeout: time.Second})
	assert.Equal(t, "ollama reply", out.Content, "unprefixed model should route to configured ollama default")
}

func TestResolveLastResortIsOpenRouter(t *testing.T) {
	reg := fakeRegistry("anthropic") // not ollama/openrouter, so rule 2 never applies
	a := reg.Resolve("some-unprefixed-model")
	out := a.Query(context.Background(), "some-unprefixed-model", nil, QueryOpts{Timeout: time.Second})
	assert.Equal(t, "openrouter reply", out.Content, "unrecognized default provider should fall through to openrouter")
}

func TestResolveMissingAdapterFallsThroughRouting(t *testing.T) {
	reg := fakeRegistry("openrouter")
	a := reg.Resolve("mistral:mistral-large") // adapter not present in this fake registry
	out := a.Query(context.Background(), "mistral:mistral-large", nil, QueryOpts{Timeout: time.Second})
	assert.Equal(t, "openrouter reply", out.Content, "missing adapter should fall through to default routing")
}
