package ranking

import (
	"reflect"
	"testing"
)

func TestParseRankingFromText(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "standard format with FINAL RANKING",
			text: "Response B is the most thorough, followed by A, then C.\n\nFINAL RANKING:\n1. Response B\n2. Response A\n3. Response C",
			want: []string{"B", "A", "C"},
		},
		{
			name: "case insensitive sentinel",
			text: "some reasoning\nfinal ranking:\n1. Response A\n2. Response B",
			want: []string{"A", "B"},
		},
		{
			name: "format without numbered list falls back to bare labels",
			text: "FINAL RANKING:\nResponse C, then Response A, then Response B",
			want: []string{"C", "A", "B"},
		},
		{
			name: "no sentinel at all, scans whole text",
			text: "My ranking: 1. Response A 2. Response B",
			want: []string{"A", "B"},
		},
		{
			name: "numbered text before the sentinel does not leak into the ranking",
			text: "My reasoning: 1. Response Z is odd.\n\nFINAL RANKING:\nResponse A\nResponse B\nResponse C",
			want: []string{"A", "B", "C"},
		},
		{
			name: "responses with letters beyond C",
			text: "FINAL RANKING:\n1. Response D\n2. Response A\n3. Response E\n4. Response B",
			want: []string{"D", "A", "E", "B"},
		},
		{
			name: "duplicate label keeps first occurrence only",
			text: "FINAL RANKING:\n1. Response A\n2. Response A\n3. Response B",
			want: []string{"A", "B"},
		},
		{
			name: "empty text yields empty ranking",
			text: "",
			want: []string{},
		},
		{
			name: "no response labels at all",
			text: "I cannot determine a ranking from the given information.",
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRankingFromText(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseRankingFromText(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
