// Package council composes the search, scheduler, ranking and provider
// packages into the three-stage deliberation protocol: Stage 1 fans the
// user's question out to every council model, Stage 2 has each successful
// model rank the anonymized set of successful Stage 1 answers (its own
// included), and Stage 3 has a
// chairman model synthesize a final answer informed by both the responses
// and the rankings.
package council

import "github.com/llm-council/councilcore/internal/ranking"

// Stage1Response is one council model's independent answer to the user's
// question.
type Stage1Response struct {
	Model   string
	Content string
	Err     error
}

// Stage2Ranking is one council model's ranking of the anonymized Stage 1
// responses, both as raw text and parsed into ordered labels.
type Stage2Ranking struct {
	Model        string
	RawText      string
	ParsedLabels []string
	Err          error
}

// Stage3Result is the chairman model's synthesized final answer.
type Stage3Result struct {
	Model   string
	Content string
	Err     error
}

// Result is the full output of one council deliberation round.
type Result struct {
	Query         string
	Title         string
	SearchQuery   string
	SearchContext string
	Stage1        []Stage1Response
	Stage2        []Stage2Ranking
	Aggregate     []ranking.AggregateRanking
	Final         Stage3Result
	LabelToModel  map[string]string
}

// ProgressStage identifies which phase a ProgressEvent describes.
type ProgressStage string

const (
	StageSearch ProgressStage = "search"
	StageStage1 ProgressStage = "stage1"
	StageStage2 ProgressStage = "stage2"
	StageStage3 ProgressStage = "stage3"
)

// ProgressEvent is one streamed update emitted while RunFullCouncil
// executes, letting a caller (e.g. a CLI) render live progress without
// depending on any HTTP framing.
type ProgressEvent struct {
	Stage   ProgressStage
	Message string
	Done    bool
}
