package council

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// renderTemplate executes a prompt template against data. Falls back to
// returning the raw template text (with a trailing note) if it fails to
// parse or execute, rather than aborting deliberation over a malformed
// operator-supplied override.
func renderTemplate(name, tmplText string, data any) string {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return tmplText + fmt.Sprintf("\n\n[template error: %v]", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplText + fmt.Sprintf("\n\n[template error: %v]", err)
	}
	return buf.String()
}

type stage1Data struct {
	Query string
}

type stage2Data struct {
	Query     string
	Responses string
}

type stage3Data struct {
	Query     string
	Responses string
	Rankings  string
}

type searchQueryData struct {
	Query string
}

// formatAnonymizedResponses renders Stage 1 responses as "Response A: ...",
// "Response B: ...", skipping any that failed, and returns both the
// rendered block and the label-to-model map used to de-anonymize Stage 2
// rankings afterward.
func formatAnonymizedResponses(responses []Stage1Response) (string, map[string]string) {
	labelToModel := make(map[string]string)
	var b strings.Builder

	label := 'A'
	first := true
	for _, r := range responses {
		if r.Err != nil {
			continue
		}
		l := string(label)
		labelToModel[l] = r.Model
		if !first {
			b.WriteString("\n\n")
		}
		first = false
		fmt.Fprintf(&b, "Response %s:\n%s", l, r.Content)
		label++
	}

	return b.String(), labelToModel
}

// formatRankingsForChairman renders every model's raw Stage 2 ranking text
// for the chairman prompt, labeling each by the model that produced it.
func formatRankingsForChairman(rankings []Stage2Ranking) string {
	var b strings.Builder
	first := true
	for _, r := range rankings {
		if r.Err != nil {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		first = false
		fmt.Fprintf(&b, "%s ranked:\n%s", r.Model, r.RawText)
	}
	return b.String()
}
