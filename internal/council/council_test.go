package council

import (
	"context"
	"strings"
	"testing"

	"github.com/llm-council/councilcore/internal/config"
	"github.com/llm-council/councilcore/internal/message"
	"github.com/llm-council/councilcore/internal/provider"
)

type fakeAdapter struct {
	content string
	err     error
}

func (f *fakeAdapter) Query(ctx context.Context, model string, messages []message.Message, opts provider.QueryOpts) provider.QueryOutcome {
	if f.err != nil {
		return provider.ErrOutcome(f.err)
	}
	return provider.OkOutcome(f.content)
}

func (f *fakeAdapter) ListModels(ctx context.Context) ([]provider.ModelInfo, error) { return nil, nil }

func (f *fakeAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, string) { return true, "" }

func testSettings() config.Settings {
	return config.Settings{
		CouncilModels:     []string{"openai:a", "anthropic:b"},
		ChairmanModel:     "openai:a",
		SearchModel:       "openai:a",
		Stage1Prompt:      config.Stage1PromptDefault,
		Stage2Prompt:      config.Stage2PromptDefault,
		Stage3Prompt:      config.Stage3PromptDefault,
		SearchQueryPrompt: config.SearchQueryPromptDefault,
	}
}

func TestRunStage1CollectsAllResponses(t *testing.T) {
	reg := provider.NewRegistryFromAdapters(map[string]provider.Adapter{
		"openai":    &fakeAdapter{content: "answer from openai"},
		"anthropic": &fakeAdapter{content: "answer from anthropic"},
	}, "openrouter")

	settings := testSettings()
	events := RunStage1(context.Background(), reg, settings, "what is go?", "")

	var responses []Stage1Response
	sawMeta := false
	for ev := range events {
		if ev.Meta != nil {
			sawMeta = true
			if ev.Meta.Total != 2 {
				t.Errorf("expected meta total 2, got %d", ev.Meta.Total)
			}
		}
		if ev.Result != nil {
			responses = append(responses, ev.Result.Value)
		}
	}
	if !sawMeta {
		t.Error("expected a meta event before any results")
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 stage1 responses, got %d", len(responses))
	}
}

func TestRunStage2OnlyQueriesSuccessfulStage1Models(t *testing.T) {
	reg := provider.NewRegistryFromAdapters(map[string]provider.Adapter{
		"openai":    &fakeAdapter{content: "FINAL RANKING:\n1. Response A\n2. Response B"},
		"anthropic": &fakeAdapter{content: "FINAL RANKING:\n1. Response B\n2. Response A"},
	}, "openrouter")

	settings := testSettings()
	stage1 := []Stage1Response{
		{Model: "openai:a", Content: "first answer"},
		{Model: "anthropic:b", Err: context.DeadlineExceeded},
	}

	events, labelToModel := RunStage2(context.Background(), reg, settings, "q", stage1)
	if len(labelToModel) != 1 {
		t.Fatalf("expected only the successful stage1 model to be anonymized, got %+v", labelToModel)
	}

	var rankings []Stage2Ranking
	for ev := range events {
		if ev.Result != nil {
			rankings = append(rankings, ev.Result.Value)
		}
	}
	if len(rankings) != 1 {
		t.Fatalf("expected stage2 to only query the successful stage1 model, got %d rankings", len(rankings))
	}
}

func TestFormatAnonymizedResponsesSkipsFailures(t *testing.T) {
	responses := []Stage1Response{
		{Model: "openai:a", Content: "good answer"},
		{Model: "anthropic:b", Err: context.DeadlineExceeded},
		{Model: "google:c", Content: "another good answer"},
	}

	block, labelToModel := formatAnonymizedResponses(responses)

	if len(labelToModel) != 2 {
		t.Fatalf("expected 2 labeled models, got %+v", labelToModel)
	}
	if labelToModel["A"] != "openai:a" || labelToModel["B"] != "google:c" {
		t.Errorf("expected labels assigned in order skipping failures, got %+v", labelToModel)
	}
	if block == "" {
		t.Error("expected a non-empty rendered block")
	}
}

func TestRunFullCouncilHappyPath(t *testing.T) {
	reg := provider.NewRegistryFromAdapters(map[string]provider.Adapter{
		"openai":    &fakeAdapter{content: "FINAL RANKING:\n1. Response A\n2. Response B"},
		"anthropic": &fakeAdapter{content: "FINAL RANKING:\n1. Response B\n2. Response A"},
	}, "openrouter")

	settings := testSettings()
	progress := make(chan ProgressEvent, 64)

	result, err := RunFullCouncil(context.Background(), reg, settings, nil, "what is go?", progress)
	if err != nil {
		t.Fatalf("expected a clean round, got %v", err)
	}
	if len(result.Stage1) != 2 {
		t.Fatalf("expected 2 stage1 responses, got %d", len(result.Stage1))
	}
	if len(result.LabelToModel) != 2 {
		t.Fatalf("expected 2 labeled models, got %+v", result.LabelToModel)
	}
	if result.LabelToModel["A"] != "openai:a" || result.LabelToModel["B"] != "anthropic:b" {
		t.Errorf("expected labels to follow configured council order, got %+v", result.LabelToModel)
	}
	if len(result.Aggregate) != 2 {
		t.Errorf("expected 2 aggregate rankings, got %+v", result.Aggregate)
	}
	if result.Final.Err != nil || result.Final.Content == "" {
		t.Errorf("expected a synthesized final answer, got %+v", result.Final)
	}

	var sawStage3Done bool
	for ev := range progress {
		if ev.Stage == StageStage3 && ev.Done {
			sawStage3Done = true
		}
	}
	if !sawStage3Done {
		t.Error("expected a terminal stage3 progress event")
	}
}

func TestRunFullCouncilSurfacesCancellation(t *testing.T) {
	reg := provider.NewRegistryFromAdapters(map[string]provider.Adapter{
		"openai":    &fakeAdapter{content: "answer"},
		"anthropic": &fakeAdapter{content: "answer"},
	}, "openrouter")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	settings := testSettings()
	progress := make(chan ProgressEvent, 64)

	result, err := RunFullCouncil(ctx, reg, settings, nil, "q", progress)
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if result.Final.Content != "" {
		t.Error("expected no final synthesis after cancellation")
	}
}

func TestGenerateConversationTitle(t *testing.T) {
	if got := GenerateConversationTitle("what is the meaning of life?"); got != "what is the meaning of life?" {
		t.Errorf("expected short queries to pass through unchanged, got %q", got)
	}

	long := strings.Repeat("x", 60)
	if got := GenerateConversationTitle(long); got != long[:47]+"..." {
		t.Errorf("expected long queries to be truncated with an ellipsis, got %q", got)
	}

	if got := GenerateConversationTitle("   "); got != "Untitled Conversation" {
		t.Errorf("expected blank queries to yield the default title, got %q", got)
	}

	if got := GenerateConversationTitle(`"quoted question"`); got != "quoted question" {
		t.Errorf("expected surrounding quotes to be stripped, got %q", got)
	}
}

func TestGenerateSearchQueryFallsBackWhenTooShort(t *testing.T) {
	reg := provider.NewRegistryFromAdapters(map[string]provider.Adapter{
		"openai": &fakeAdapter{content: "ok"},
	}, "openrouter")

	settings := testSettings()
	q := GenerateSearchQuery(context.Background(), reg, settings, "a sufficiently long question")
	if q != "a sufficiently long question" {
		t.Errorf("expected fallback when generated query is too short, got %q", q)
	}
}
