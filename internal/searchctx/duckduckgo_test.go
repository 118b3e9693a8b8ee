package searchctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDuckDuckGoURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "unwraps uddg redirect",
			in:   "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=abc",
			want: "https://example.com/page",
		},
		{
			name: "passes through a plain absolute URL",
			in:   "https://example.com/page",
			want: "https://example.com/page",
		},
		{
			name: "empty input yields empty output",
			in:   "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeDuckDuckGoURL(tc.in))
		})
	}
}

func TestFormatResultsPrefersContentOverSnippet(t *testing.T) {
	results := []Result{
		{Title: "A", URL: "https://a.test", Snippet: "snippet-a", Source: "DuckDuckGo"},
		{Title: "B", URL: "https://b.test", Snippet: "snippet-b", Content: "full-content-b", Source: "Tavily"},
	}

	out := formatResults(results)

	assert.Contains(t, out, "Result 1:")
	assert.Contains(t, out, "Result 2:")
	assert.Contains(t, out, "snippet-a", "first result should fall back to its snippet")
	assert.Contains(t, out, "full-content-b", "second result should prefer enriched content")
	assert.NotContains(t, out, "snippet-b", "second result's snippet should be superseded by its content")
}
