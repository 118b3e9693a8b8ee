// Package ranking extracts ordered response rankings from free-form model
// text and aggregates them into a mean-rank table.
package ranking

import (
	"regexp"
	"strings"
)

var (
	numberedResponseRe = regexp.MustCompile(`(?m)^\s*\d+\.\s*Response\s+([A-Z])\b`)
	bareResponseRe     = regexp.MustCompile(`Response\s+([A-Z])\b`)
)

// ParseRankingFromText extracts an ordered list of response labels ("A",
// "B", "C", ...) from a ranking model's free-form reply.
//
// A "FINAL RANKING:" sentinel (case-insensitive) narrows the search to the
// text after its first occurrence; without one the whole text is the search
// region. Within that region, numbered-list entries win; failing that, any
// bare "Response X" occurrences are taken in document order. The region
// never widens back past the sentinel — reasoning text ahead of it must not
// leak into the ranking. Duplicate labels are dropped, keeping only the
// first occurrence, since a ranking can only place each response once.
func ParseRankingFromText(text string) []string {
	section := text
	if idx := findSentinel(text); idx >= 0 {
		section = text[idx:]
	}

	labels := extractLabels(numberedResponseRe, section)
	if len(labels) == 0 {
		labels = extractLabels(bareResponseRe, section)
	}
	return labels
}

func findSentinel(text string) int {
	upper := strings.ToUpper(text)
	idx := strings.Index(upper, "FINAL RANKING:")
	if idx < 0 {
		return -1
	}
	return idx + len("FINAL RANKING:")
}

func extractLabels(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	labels := make([]string, 0, len(matches))
	for _, m := range matches {
		label := m[1]
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
