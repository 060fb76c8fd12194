package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TokenSet
	}{
		{
			name: "lowercase and drop short words",
			text: "Getting Started with React Hooks",
			want: NewTokenSet("getting", "started", "with", "react", "hooks"),
		},
		{
			name: "strip punctuation and dedupe",
			text: "React, react! REACT? (hooks)",
			want: NewTokenSet("react", "hooks"),
		},
		{
			name: "punctuation joins rather than splits",
			text: "Node.js vs. Deno",
			want: NewTokenSet("nodejs", "deno"),
		},
		{
			name: "empty",
			text: "",
			want: TokenSet{},
		},
		{
			name: "only short tokens",
			text: "a an the of",
			want: TokenSet{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestContentDigest(t *testing.T) {
	content := "# Title Here\n\n```go\nfunc main() {}\n```\nUse `useState` for **state**.\n\nline three\nline four\nline five\nline six"
	got := ContentDigest(content)
	assert.Equal(t, "title here use   for   state  . line three line four line five", got)
	assert.NotContains(t, got, "func main")
	assert.NotContains(t, got, "usestate")
	assert.NotContains(t, got, "line six")
}

func TestContentDigest_Empty(t *testing.T) {
	assert.Equal(t, "", ContentDigest(""))
	assert.Equal(t, "", ContentDigest("   \n\t"))
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"react", "hooks"}, []string{"react", "hooks"}, 1},
		{"max denominator not union", []string{"react", "hooks"}, []string{"react", "vue", "angular", "svelte"}, 0.25},
		{"disjoint", []string{"react"}, []string{"python"}, 0},
		{"empty side", nil, []string{"python"}, 0},
		{"both empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverlapStrings(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, OverlapStrings(tt.b, tt.a), 1e-9)
		})
	}
}
