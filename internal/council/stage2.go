package council

import (
	"context"

	"github.com/llm-council/councilcore/internal/config"
	"github.com/llm-council/councilcore/internal/message"
	"github.com/llm-council/councilcore/internal/provider"
	"github.com/llm-council/councilcore/internal/ranking"
	"github.com/llm-council/councilcore/internal/scheduler"
)

// RunStage2 asks every council model that succeeded at Stage 1 to rank the
// anonymized set of Stage 1 responses, then streams each ranking as it
// completes. Only the successful Stage 1 models are queried, since there is
// nothing meaningful for a failed model to rank with. Rankings run at the
// (typically lower) Stage 2 temperature so ordering output stays stable.
func RunStage2(ctx context.Context, reg *provider.Registry, settings config.Settings, query string, stage1 []Stage1Response) (<-chan scheduler.Event[Stage2Ranking], map[string]string) {
	anonymized, labelToModel := formatAnonymizedResponses(stage1)
	prompt := renderTemplate("stage2", settings.Stage2Prompt, stage2Data{Query: query, Responses: anonymized})

	var tasks []scheduler.Task[Stage2Ranking]
	for _, r := range stage1 {
		if r.Err != nil {
			continue
		}
		model := r.Model
		tasks = append(tasks, scheduler.Task[Stage2Ranking]{
			Label: model,
			Run: func(ctx context.Context) (Stage2Ranking, error) {
				adapter := reg.Resolve(model)
				outcome := adapter.Query(ctx, model, []message.Message{
					{Role: message.RoleUser, Content: prompt},
				}, provider.QueryOpts{Temperature: settings.Stage2Temperature})
				if !outcome.Ok() {
					return Stage2Ranking{Model: model, Err: outcome.Err}, outcome.Err
				}
				labels := ranking.ParseRankingFromText(outcome.Content)
				return Stage2Ranking{Model: model, RawText: outcome.Content, ParsedLabels: labels}, nil
			},
		})
	}

	return scheduler.Run(ctx, tasks), labelToModel
}
