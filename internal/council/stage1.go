package council

import (
	"context"

	"github.com/llm-council/councilcore/internal/config"
	"github.com/llm-council/councilcore/internal/message"
	"github.com/llm-council/councilcore/internal/provider"
	"github.com/llm-council/councilcore/internal/scheduler"
)

// RunStage1 fans the user's question out to every configured council model
// in parallel, optionally prefixed with search context, and streams each
// model's response as it completes.
func RunStage1(ctx context.Context, reg *provider.Registry, settings config.Settings, query, searchContext string) <-chan scheduler.Event[Stage1Response] {
	prompt := renderTemplate("stage1", settings.Stage1Prompt, stage1Data{Query: query})
	if searchContext != "" {
		prompt = renderTemplate("stage1-search", config.Stage1SearchContextTemplate, struct{ SearchResults string }{SearchResults: searchContext}) + prompt
	}

	tasks := make([]scheduler.Task[Stage1Response], len(settings.CouncilModels))
	for i, model := range settings.CouncilModels {
		model := model
		tasks[i] = scheduler.Task[Stage1Response]{
			Label: model,
			Run: func(ctx context.Context) (Stage1Response, error) {
				adapter := reg.Resolve(model)
				outcome := adapter.Query(ctx, model, []message.Message{
					{Role: message.RoleUser, Content: prompt},
				}, provider.QueryOpts{Temperature: settings.CouncilTemperature})
				if !outcome.Ok() {
					return Stage1Response{Model: model, Err: outcome.Err}, outcome.Err
				}
				return Stage1Response{Model: model, Content: outcome.Content}, nil
			},
		}
	}

	return scheduler.Run(ctx, tasks)
}
