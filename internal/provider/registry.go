package provider

import "github.com/go-resty/resty/v2"

// Keys is the set of per-provider API keys and endpoints the Registry needs
// to construct its adapters. Defined here (rather than importing
// internal/config) to keep provider free of a dependency on the settings
// schema — config.Settings is adapted into Keys at wiring time.
type Keys struct {
	OpenAIKey       string
	AnthropicKey    string
	GoogleKey       string
	MistralKey      string
	DeepSeekKey     string
	OpenRouterKey   string
	OllamaBaseURL   string
	DefaultProvider string
}

// Registry routes a model identifier to the Adapter that should serve it.
// Constructed once at start-up from resolved settings; immutable thereafter.
type Registry struct {
	adapters        map[string]Adapter
	defaultProvider string
}

// NewRegistry builds the seven adapters over one shared, connection-pooled
// resty client and assembles the immutable Registry.
func NewRegistry(keys Keys, client *resty.Client) *Registry {
	adapters := map[string]Adapter{
		"openai":     newOpenAICompatible("openai", "https://api.openai.com/v1", keys.OpenAIKey, client),
		"mistral":    newOpenAICompatible("mistral", "https://api.mistral.ai/v1", keys.MistralKey, client),
		"deepseek":   newOpenAICompatible("deepseek", "https://api.deepseek.com", keys.DeepSeekKey, client),
		"openrouter": newOpenAICompatible("openrouter", "https://openrouter.ai/api/v1", keys.OpenRouterKey, client),
		"anthropic":  newAnthropicAdapter(keys.AnthropicKey, client),
		"google":     newGoogleAdapter(keys.GoogleKey, client),
		"ollama":     newOllamaAdapter(keys.OllamaBaseURL, client),
	}

	defaultProvider := keys.DefaultProvider
	if defaultProvider == "" {
		defaultProvider = "openrouter"
	}

	return &Registry{adapters: adapters, defaultProvider: defaultProvider}
}

// Resolve picks the adapter for a model identifier, evaluated in order:
//  1. an explicit "tag:" prefix wins outright;
//  2. otherwise, an unprefixed ID falls through to the configured default
//     provider when that default is ollama or openrouter;
//  3. otherwise, openrouter is the last resort.
func (r *Registry) Resolve(modelID string) Adapter {
	if tag, _, ok := splitKnownTag(modelID); ok {
		if a, exists := r.adapters[tag]; exists {
			return a
		}
	}

	if r.defaultProvider == "ollama" || r.defaultProvider == "openrouter" {
		if a, ok := r.adapters[r.defaultProvider]; ok {
			return a
		}
	}

	return r.adapters["openrouter"]
}

// Adapter exposes a single named adapter directly, e.g. for the
// search-query-generation model or operator tooling that already knows which
// provider it wants.
func (r *Registry) Adapter(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// NewRegistryFromAdapters builds a Registry directly from caller-supplied
// adapters, bypassing NewRegistry's fixed provider base URLs. Used by
// package tests to substitute fakes for real network-backed adapters.
func NewRegistryFromAdapters(adapters map[string]Adapter, defaultProvider string) *Registry {
	if defaultProvider == "" {
		defaultProvider = "openrouter"
	}
	return &Registry{adapters: adapters, defaultProvider: defaultProvider}
}

func splitKnownTag(modelID string) (tag string, rest string, ok bool) {
	for _, known := range KnownProviderTags {
		if len(modelID) > len(known)+1 && modelID[len(known)] == ':' && modelID[:len(known)] == known {
			return known, modelID[len(known)+1:], true
		}
	}
	return "", modelID, false
}
