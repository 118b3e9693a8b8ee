package council

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-resty/resty/v2"

	"github.com/llm-council/councilcore/internal/config"
	"github.com/llm-council/councilcore/internal/provider"
	"github.com/llm-council/councilcore/internal/ranking"
	"github.com/llm-council/councilcore/internal/searchctx"
)

// RunFullCouncil composes search, Stage 1, Stage 2 and Stage 3 into a single
// deliberation round, streaming ProgressEvents to progress as each phase
// starts and finishes.
//
// The returned Result is populated incrementally; callers that only want
// the final answer can drain progress and read result after it closes. A
// canceled ctx ends the round at the next stage boundary and is returned as
// the error, with the partial Result still populated.
func RunFullCouncil(ctx context.Context, reg *provider.Registry, settings config.Settings, httpClient *resty.Client, query string, progress chan<- ProgressEvent) (*Result, error) {
	defer close(progress)

	result := &Result{Query: query}

	if settings.SearchEnabled {
		emit(progress, StageSearch, "generating search query", false)
		result.SearchQuery = GenerateSearchQuery(ctx, reg, settings, query)

		emit(progress, StageSearch, fmt.Sprintf("searching for: %s", result.SearchQuery), false)
		searchContext, err := searchctx.Run(ctx, httpClient, searchctx.Config{
			Provider:           settings.SearchProvider,
			TavilyKey:          settings.TavilyKey,
			BraveKey:           settings.BraveKey,
			JinaKey:            settings.JinaKey,
			MaxResults:         5,
			FullContentResults: settings.FullContentResults,
		}, result.SearchQuery)
		if err != nil {
			// Deliberation proceeds regardless; the note replaces real search
			// context so Stage 1 models know why none is present.
			result.SearchContext = fmt.Sprintf("[System Note: %s search failed and no web context is available: %v]", settings.SearchProvider, err)
			emit(progress, StageSearch, fmt.Sprintf("search failed, continuing without it: %v", err), true)
		} else {
			result.SearchContext = searchContext
			emit(progress, StageSearch, "search complete", true)
		}
	}

	emit(progress, StageStage1, "collecting council responses", false)
	stage1Events := RunStage1(ctx, reg, settings, query, result.SearchContext)
	for ev := range stage1Events {
		if ev.Result != nil {
			result.Stage1 = append(result.Stage1, ev.Result.Value)
			emit(progress, StageStage1, fmt.Sprintf("%s responded", ev.Result.Label), false)
		}
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	emit(progress, StageStage1, "stage 1 complete", true)

	// Stage 1 results arrive in completion order; anonymization labels must
	// follow the configured council order so the same configuration always
	// yields the same label assignment.
	councilOrder := make(map[string]int, len(settings.CouncilModels))
	for i, m := range settings.CouncilModels {
		councilOrder[m] = i
	}
	sort.SliceStable(result.Stage1, func(i, j int) bool {
		return councilOrder[result.Stage1[i].Model] < councilOrder[result.Stage1[j].Model]
	})

	emit(progress, StageStage2, "collecting peer rankings", false)
	stage2Events, labelToModel := RunStage2(ctx, reg, settings, query, result.Stage1)
	result.LabelToModel = labelToModel
	for ev := range stage2Events {
		if ev.Result != nil {
			result.Stage2 = append(result.Stage2, ev.Result.Value)
			emit(progress, StageStage2, fmt.Sprintf("%s ranked", ev.Result.Label), false)
		}
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	emit(progress, StageStage2, "stage 2 complete", true)

	parsedRankings := make([][]string, 0, len(result.Stage2))
	for _, r := range result.Stage2 {
		if r.Err == nil {
			parsedRankings = append(parsedRankings, r.ParsedLabels)
		}
	}
	result.Aggregate = ranking.Aggregate(parsedRankings, labelToModel)

	emit(progress, StageStage3, "synthesizing final answer", false)
	result.Final = RunStage3(ctx, reg, settings, query, result.Stage1, result.Stage2)
	emit(progress, StageStage3, "stage 3 complete", true)

	result.Title = GenerateConversationTitle(query)

	return result, nil
}

func emit(progress chan<- ProgressEvent, stage ProgressStage, message string, done bool) {
	select {
	case progress <- ProgressEvent{Stage: stage, Message: message, Done: done}:
	default:
		// Slow consumer: drop rather than block deliberation on progress
		// reporting. The final Result is authoritative regardless.
	}
}
