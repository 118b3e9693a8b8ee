// Package provider implements a uniform query contract over OpenAI,
// Anthropic, Google, Mistral, DeepSeek, OpenRouter and Ollama, plus the
// Registry that routes a model identifier to the right Adapter.
//
// Adapters never raise across the package boundary: transport failures,
// missing keys, and malformed bodies all become a QueryOutcome with Err set,
// never a panic and never a blocking call that outlives ctx.
package provider

import (
	"context"
	"time"

	"github.com/llm-council/councilcore/internal/message"
)

// KnownProviderTags are the explicit provider prefixes recognised ahead of a
// colon in a model identifier.
var KnownProviderTags = []string{
	"openai", "anthropic", "google", "mistral", "deepseek", "openrouter", "ollama",
}

// DefaultQueryTimeout is used whenever a caller passes a non-positive timeout.
const DefaultQueryTimeout = 120 * time.Second

// DefaultTemperature applies whenever a caller passes a non-positive
// temperature. Ranking calls typically configure something lower.
const DefaultTemperature = 0.7

// QueryOpts carries the per-call knobs of a Query. The zero value means
// "use the defaults".
type QueryOpts struct {
	Timeout     time.Duration // <= 0 means DefaultQueryTimeout
	Temperature float64       // <= 0 means DefaultTemperature
}

// QueryOutcome is a tagged Ok/Err variant. Exactly one of Content (when Err
// is nil) or Err is meaningful; never both carry information.
type QueryOutcome struct {
	Content string
	Err     error
}

// Ok reports whether the outcome represents a successful query.
func (o QueryOutcome) Ok() bool { return o.Err == nil }

// OkOutcome builds a successful QueryOutcome.
func OkOutcome(content string) QueryOutcome { return QueryOutcome{Content: content} }

// ErrOutcome builds a failed QueryOutcome.
func ErrOutcome(err error) QueryOutcome { return QueryOutcome{Err: err} }

// ModelInfo describes a model as returned by ListModels.
type ModelInfo struct {
	ID       string
	Name     string
	Provider string
}

// Adapter is the uniform transport contract every backend implements. The
// deliberation engine only calls Query; ListModels and ValidateKey exist for
// operator tooling.
type Adapter interface {
	// Query sends messages to model and returns its single response, or an
	// Err outcome describing why it could not. Query never blocks past ctx's
	// deadline/cancel.
	Query(ctx context.Context, model string, messages []message.Message, opts QueryOpts) QueryOutcome

	// ListModels fetches the provider's currently available models. Not used
	// by the deliberation engine; offered for operator/debug tooling.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// ValidateKey probes whether apiKey is accepted by the provider. An
	// empty apiKey probes the adapter's configured key instead.
	ValidateKey(ctx context.Context, apiKey string) (bool, string)
}

func effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultQueryTimeout
	}
	return timeout
}

func effectiveTemperature(temperature float64) float64 {
	if temperature <= 0 {
		return DefaultTemperature
	}
	return temperature
}
