package council

import "strings"

// GenerateConversationTitle derives a short display title from the user's
// question. A plain truncation heuristic is enough here; a title is not
// worth a model call.
func GenerateConversationTitle(query string) string {
	title := strings.TrimSpace(query)
	if title == "" {
		return "Untitled Conversation"
	}

	title = strings.Trim(title, `"'`)
	if len(title) > 50 {
		title = title[:47] + "..."
	}
	return title
}

// truncatedQuery is the shared fallback for derived-text generation: the
// first 100 characters of the raw user query.
func truncatedQuery(query string) string {
	q := strings.TrimSpace(query)
	if len(q) > 100 {
		q = q[:100]
	}
	return q
}
