package council

import (
	"context"
	"strings"
	"time"

	"github.com/llm-council/councilcore/internal/config"
	"github.com/llm-council/councilcore/internal/message"
	"github.com/llm-council/councilcore/internal/provider"
)

// searchQueryTimeout bounds search-query generation independently of the
// main deliberation timeout.
const searchQueryTimeout = 15 * time.Second

// GenerateSearchQuery derives a concise web search query from the user's
// question using a dedicated (typically cheaper/faster) model, falling back
// to a truncated version of the question itself if that model fails or
// returns something too short to be a usable query.
func GenerateSearchQuery(ctx context.Context, reg *provider.Registry, settings config.Settings, query string) string {
	prompt := renderTemplate("search-query", settings.SearchQueryPrompt, searchQueryData{Query: query})

	adapter := reg.Resolve(settings.SearchModel)
	outcome := adapter.Query(ctx, settings.SearchModel, []message.Message{
		{Role: message.RoleUser, Content: prompt},
	}, provider.QueryOpts{Timeout: searchQueryTimeout})

	generated := strings.TrimSpace(outcome.Content)
	if !outcome.Ok() || len(generated) < 5 {
		return truncatedQuery(query)
	}
	return generated
}
