package council

import (
	"context"

	"github.com/llm-council/councilcore/internal/config"
	"github.com/llm-council/councilcore/internal/message"
	"github.com/llm-council/councilcore/internal/provider"
)

// RunStage3 has the configured chairman model synthesize a final answer
// from the Stage 1 responses and Stage 2 rankings.
func RunStage3(ctx context.Context, reg *provider.Registry, settings config.Settings, query string, stage1 []Stage1Response, stage2 []Stage2Ranking) Stage3Result {
	responsesBlock, _ := formatAnonymizedResponses(stage1)
	rankingsBlock := formatRankingsForChairman(stage2)

	prompt := renderTemplate("stage3", settings.Stage3Prompt, stage3Data{
		Query:     query,
		Responses: responsesBlock,
		Rankings:  rankingsBlock,
	})

	adapter := reg.Resolve(settings.ChairmanModel)
	outcome := adapter.Query(ctx, settings.ChairmanModel, []message.Message{
		{Role: message.RoleUser, Content: prompt},
	}, provider.QueryOpts{Temperature: settings.ChairmanTemperature})

	if !outcome.Ok() {
		return Stage3Result{Model: settings.ChairmanModel, Err: outcome.Err}
	}
	return Stage3Result{Model: settings.ChairmanModel, Content: outcome.Content}
}
