// Package searchctx implements the optional web-search preface to a council
// round: a pluggable search provider (DuckDuckGo, Tavily or Brave) plus
// full-text enrichment of the top results via the Jina Reader, all bounded
// by a single 60-second wall-clock budget shared across search and
// enrichment.
package searchctx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Result is one search hit, optionally enriched with full page content.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Content string // populated by Jina enrichment when budget allows
	Source  string // provider name, for display/attribution
}

// Provider performs a single web search and returns up to maxResults hits.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// GlobalBudget is the total wall-clock time allotted to a single search
// round, shared across the initial query and all subsequent enrichment
// fetches.
const GlobalBudget = 60 * time.Second

// Config controls one search invocation.
type Config struct {
	Provider           string // duckduckgo | tavily | brave
	TavilyKey          string
	BraveKey           string
	JinaKey            string
	MaxResults         int
	FullContentResults int // how many top hits get Jina enrichment
}

// Run performs the configured provider's search, enriches the top
// FullContentResults hits with Jina Reader content (budget permitting), and
// renders the combined results into the "Result N: ..." block format the
// council prompts expect.
func Run(ctx context.Context, client *resty.Client, cfg Config, query string) (string, error) {
	deadline := time.Now().Add(GlobalBudget)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	provider, err := newProvider(cfg, client)
	if err != nil {
		return "", err
	}

	results, err := provider.Search(ctx, query, cfg.MaxResults)
	if err != nil {
		return "", fmt.Errorf("searchctx: search failed: %w", err)
	}
	if len(results) == 0 {
		return "", nil
	}

	remaining := time.Until(deadline)
	results = enrichWithJina(ctx, client, results, cfg.FullContentResults, cfg.JinaKey, remaining)

	return formatResults(results), nil
}

func newProvider(cfg Config, client *resty.Client) (Provider, error) {
	switch cfg.Provider {
	case "", "duckduckgo":
		return newDuckDuckGoProvider(client), nil
	case "tavily":
		if cfg.TavilyKey == "" {
			return nil, fmt.Errorf("searchctx: tavily provider selected but TAVILY_API_KEY not configured")
		}
		return newTavilyProvider(client, cfg.TavilyKey), nil
	case "brave":
		if cfg.BraveKey == "" {
			return nil, fmt.Errorf("searchctx: brave provider selected but BRAVE_API_KEY not configured")
		}
		return newBraveProvider(client, cfg.BraveKey), nil
	default:
		return nil, fmt.Errorf("searchctx: unknown search provider %q", cfg.Provider)
	}
}

func formatResults(results []Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "Result %d:\nTitle: %s\nURL: %s\n", i+1, r.Title, r.URL)
		if r.Source != "" {
			fmt.Fprintf(&b, "(%s)\n", r.Source)
		}
		if r.Content != "" {
			fmt.Fprintf(&b, "%s\n", r.Content)
		} else if r.Snippet != "" {
			fmt.Fprintf(&b, "%s\n", r.Snippet)
		}
		if i < len(results)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func logBudgetExhausted(ctx context.Context, remaining time.Duration) {
	log.Ctx(ctx).Debug().Dur("remaining", remaining).Msg("search budget exhausted, skipping further enrichment")
}
