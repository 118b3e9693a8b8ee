// Package config resolves the engine's runtime settings: API keys, default
// provider, council composition, temperatures and prompt overrides.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Settings is the resolved, immutable configuration for one engine instance.
type Settings struct {
	OpenAIKey     string
	AnthropicKey  string
	GoogleKey     string
	MistralKey    string
	DeepSeekKey   string
	OpenRouterKey string
	TavilyKey     string
	BraveKey      string
	JinaKey       string

	OllamaBaseURL   string
	DefaultProvider string

	CouncilModels []string
	ChairmanModel string
	SearchModel   string

	CouncilTemperature  float64
	Stage2Temperature   float64
	ChairmanTemperature float64

	FullContentResults int // how many top search results get full-text enrichment

	SearchProvider string // duckduckgo | tavily | brave
	SearchEnabled  bool

	Stage1Prompt      string
	Stage2Prompt      string
	Stage3Prompt      string
	SearchQueryPrompt string
}

const (
	defaultCouncilTemperature  = 0.7
	defaultStage2Temperature   = 0.2
	defaultChairmanTemperature = 0.5
	defaultFullContentResults  = 3
	defaultSearchProvider      = "duckduckgo"
	defaultOllamaBaseURL       = "http://localhost:11434"
)

var defaultCouncilModels = []string{
	"openai:gpt-4o",
	"anthropic:claude-sonnet-4.5",
	"google:gemini-2.0-flash",
}

// Load resolves Settings from the process environment, trying a .env file
// in the working directory and then its parent first. When
// COUNCIL_SETTINGS_FILE names a JSON file, its values overlay the
// environment-derived ones; an unreadable or malformed file is logged and
// ignored.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Debug().Msg("no .env file found, relying on process environment")
		}
	}

	s := Settings{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
		GoogleKey:     os.Getenv("GOOGLE_API_KEY"),
		MistralKey:    os.Getenv("MISTRAL_API_KEY"),
		DeepSeekKey:   os.Getenv("DEEPSEEK_API_KEY"),
		OpenRouterKey: os.Getenv("OPENROUTER_API_KEY"),
		TavilyKey:     os.Getenv("TAVILY_API_KEY"),
		BraveKey:      os.Getenv("BRAVE_API_KEY"),
		JinaKey:       os.Getenv("JINA_API_KEY"),

		OllamaBaseURL:   getEnvDefault("OLLAMA_BASE_URL", defaultOllamaBaseURL),
		DefaultProvider: getEnvDefault("DEFAULT_PROVIDER", "openrouter"),

		CouncilModels: getEnvList("COUNCIL_MODELS", defaultCouncilModels),
		ChairmanModel: getEnvDefault("CHAIRMAN_MODEL", "openai:gpt-4o"),
		SearchModel:   getEnvDefault("SEARCH_QUERY_MODEL", "openai:gpt-4o-mini"),

		CouncilTemperature:  getEnvFloat("COUNCIL_TEMPERATURE", defaultCouncilTemperature),
		Stage2Temperature:   getEnvFloat("STAGE2_TEMPERATURE", defaultStage2Temperature),
		ChairmanTemperature: getEnvFloat("CHAIRMAN_TEMPERATURE", defaultChairmanTemperature),

		FullContentResults: getEnvInt("FULL_CONTENT_RESULTS", defaultFullContentResults),

		SearchProvider: getEnvDefault("SEARCH_PROVIDER", defaultSearchProvider),
		SearchEnabled:  getEnvBool("SEARCH_ENABLED", true),

		Stage1Prompt:      Stage1PromptDefault,
		Stage2Prompt:      Stage2PromptDefault,
		Stage3Prompt:      Stage3PromptDefault,
		SearchQueryPrompt: SearchQueryPromptDefault,
	}

	applyFileOverlay(&s)

	return s
}

// fileOverlay mirrors the Settings fields an overlay file may set. Every
// field is optional; anything absent keeps its environment-derived value,
// and unknown keys are ignored. The file format carries no schema version —
// the decode is strictly best-effort.
type fileOverlay struct {
	OpenAIKey     *string `json:"openai_api_key"`
	AnthropicKey  *string `json:"anthropic_api_key"`
	GoogleKey     *string `json:"google_api_key"`
	MistralKey    *string `json:"mistral_api_key"`
	DeepSeekKey   *string `json:"deepseek_api_key"`
	OpenRouterKey *string `json:"openrouter_api_key"`
	TavilyKey     *string `json:"tavily_api_key"`
	BraveKey      *string `json:"brave_api_key"`
	JinaKey       *string `json:"jina_api_key"`

	OllamaBaseURL   *string `json:"ollama_base_url"`
	DefaultProvider *string `json:"llm_provider"`

	CouncilModels []string `json:"council_models"`
	ChairmanModel *string  `json:"chairman_model"`
	SearchModel   *string  `json:"search_query_model"`

	CouncilTemperature  *float64 `json:"council_temperature"`
	Stage2Temperature   *float64 `json:"stage2_temperature"`
	ChairmanTemperature *float64 `json:"chairman_temperature"`

	FullContentResults *int `json:"full_content_results"`

	SearchProvider *string `json:"search_provider"`
	SearchEnabled  *bool   `json:"search_enabled"`

	Stage1Prompt      *string `json:"stage1_prompt"`
	Stage2Prompt      *string `json:"stage2_prompt"`
	Stage3Prompt      *string `json:"stage3_prompt"`
	SearchQueryPrompt *string `json:"search_query_prompt"`
}

func applyFileOverlay(s *Settings) {
	path := os.Getenv("COUNCIL_SETTINGS_FILE")
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("settings overlay file unreadable, ignoring")
		return
	}

	var o fileOverlay
	if err := json.Unmarshal(data, &o); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("settings overlay file is not valid JSON, ignoring")
		return
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&s.OpenAIKey, o.OpenAIKey)
	setString(&s.AnthropicKey, o.AnthropicKey)
	setString(&s.GoogleKey, o.GoogleKey)
	setString(&s.MistralKey, o.MistralKey)
	setString(&s.DeepSeekKey, o.DeepSeekKey)
	setString(&s.OpenRouterKey, o.OpenRouterKey)
	setString(&s.TavilyKey, o.TavilyKey)
	setString(&s.BraveKey, o.BraveKey)
	setString(&s.JinaKey, o.JinaKey)
	setString(&s.OllamaBaseURL, o.OllamaBaseURL)
	setString(&s.DefaultProvider, o.DefaultProvider)
	setString(&s.ChairmanModel, o.ChairmanModel)
	setString(&s.SearchModel, o.SearchModel)
	setString(&s.SearchProvider, o.SearchProvider)
	setString(&s.Stage1Prompt, o.Stage1Prompt)
	setString(&s.Stage2Prompt, o.Stage2Prompt)
	setString(&s.Stage3Prompt, o.Stage3Prompt)
	setString(&s.SearchQueryPrompt, o.SearchQueryPrompt)

	if len(o.CouncilModels) > 0 {
		s.CouncilModels = o.CouncilModels
	}
	if o.CouncilTemperature != nil {
		s.CouncilTemperature = *o.CouncilTemperature
	}
	if o.Stage2Temperature != nil {
		s.Stage2Temperature = *o.Stage2Temperature
	}
	if o.ChairmanTemperature != nil {
		s.ChairmanTemperature = *o.ChairmanTemperature
	}
	if o.FullContentResults != nil {
		s.FullContentResults = *o.FullContentResults
	}
	if o.SearchEnabled != nil {
		s.SearchEnabled = *o.SearchEnabled
	}
}

func getEnvDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid float env var, using default")
		return fallback
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid int env var, using default")
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
