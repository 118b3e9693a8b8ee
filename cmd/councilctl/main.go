// Command councilctl runs one council deliberation round from the command
// line: ask puts a question to the full council, ping validates the
// configured provider keys.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/llm-council/councilcore/internal/config"
	"github.com/llm-council/councilcore/internal/council"
	"github.com/llm-council/councilcore/internal/provider"
)

type CLI struct {
	Ask   AskCmd  `cmd:"" help:"Run a full council deliberation round for a question."`
	Ping  PingCmd `cmd:"" help:"Validate configured provider API keys."`
	Debug bool    `help:"Enable debug-level logging." negatable:""`
}

type AskCmd struct {
	Query  string `arg:"" help:"The question to put to the council."`
	Search bool   `help:"Enable the web search preface for this round." default:"true" negatable:""`
}

type PingCmd struct{}

func main() {
	zerolog.DefaultContextLogger = &log.Logger
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("councilctl"),
		kong.Description("Run LLM council deliberation rounds from the command line."),
		kong.UsageOnError(),
	)

	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	settings := config.Load()

	client := resty.New().SetTimeout(provider.DefaultQueryTimeout)
	reg := provider.NewRegistry(provider.Keys{
		OpenAIKey:       settings.OpenAIKey,
		AnthropicKey:    settings.AnthropicKey,
		GoogleKey:       settings.GoogleKey,
		MistralKey:      settings.MistralKey,
		DeepSeekKey:     settings.DeepSeekKey,
		OpenRouterKey:   settings.OpenRouterKey,
		OllamaBaseURL:   settings.OllamaBaseURL,
		DefaultProvider: settings.DefaultProvider,
	}, client)

	requestID := uuid.NewString()
	logger := log.With().Str("request_id", requestID).Logger()
	ctx := logger.WithContext(context.Background())

	err := kctx.Run(&runCtx{ctx: ctx, settings: settings, reg: reg, client: client})
	kctx.FatalIfErrorf(err)
}

type runCtx struct {
	ctx      context.Context
	settings config.Settings
	reg      *provider.Registry
	client   *resty.Client
}

func (cmd *AskCmd) Run(rc *runCtx) error {
	rc.settings.SearchEnabled = cmd.Search

	progress := make(chan council.ProgressEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range progress {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Stage, ev.Message)
		}
	}()

	result, err := council.RunFullCouncil(rc.ctx, rc.reg, rc.settings, rc.client, cmd.Query, progress)
	<-done
	if err != nil {
		return fmt.Errorf("councilctl: deliberation failed: %w", err)
	}

	printResult(result)
	return nil
}

type pingResult struct {
	name, status, detail string
}

// Run validates every configured provider's key concurrently: one failing
// or slow provider should never hold up the others' results, the same
// isolation principle the Stage Scheduler applies to model queries.
func (cmd *PingCmd) Run(rc *runCtx) error {
	results := make([]pingResult, len(provider.KnownProviderTags))

	g, gctx := errgroup.WithContext(rc.ctx)
	for i, name := range provider.KnownProviderTags {
		i, name := i, name
		g.Go(func() error {
			adapter, ok := rc.reg.Adapter(name)
			if !ok {
				results[i] = pingResult{name: name, status: "skipped", detail: "no adapter configured"}
				return nil
			}
			ok2, detail := adapter.ValidateKey(gctx, "")
			status := "ok"
			if !ok2 {
				status = "failed"
			}
			results[i] = pingResult{name: name, status: status, detail: detail}
			return nil
		})
	}
	_ = g.Wait() // individual failures are reported per-provider, never abort the group

	for _, r := range results {
		if r.name == "" {
			continue
		}
		fmt.Printf("%-12s %-8s %s\n", r.name, r.status, r.detail)
	}
	return nil
}

func printResult(r *council.Result) {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("Title: %s\n", r.Title)
	fmt.Println(strings.Repeat("=", 72))

	fmt.Println("\n-- Stage 1: council responses --")
	for _, resp := range r.Stage1 {
		if resp.Err != nil {
			fmt.Printf("\n[%s] FAILED: %v\n", resp.Model, resp.Err)
			continue
		}
		fmt.Printf("\n[%s]\n%s\n", resp.Model, resp.Content)
	}

	fmt.Println("\n-- Stage 2: aggregate rankings --")
	for _, a := range r.Aggregate {
		fmt.Printf("%-30s mean rank %.2f (%d votes)\n", a.Model, a.MeanRank, a.VoteCount)
	}

	fmt.Println("\n-- Stage 3: chairman synthesis --")
	if r.Final.Err != nil {
		fmt.Printf("FAILED: %v\n", r.Final.Err)
	} else {
		fmt.Println(r.Final.Content)
	}
}
