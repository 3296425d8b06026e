package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/pagechat/core"
)

func TestCompose_NilContextReturnsPrompt(t *testing.T) {
	assert.Equal(t, "summarize", Compose("summarize", nil, 100))
}

func TestCompose_EmptyContextReturnsPrompt(t *testing.T) {
	pc := &core.PageContext{Title: "A Page", URL: "https://example.com"}
	assert.Equal(t, "summarize", Compose("summarize", pc, 100))
}

func TestCompose_SelectionPreferredOverContent(t *testing.T) {
	pc := &core.PageContext{
		Title:     "A Page",
		URL:       "https://example.com/a",
		Selection: "the selected bit",
		Content:   "the whole article body",
	}
	got := Compose("explain this", pc, 0)

	assert.True(t, strings.HasPrefix(got, "explain this\n\n"))
	assert.Contains(t, got, "A Page")
	assert.Contains(t, got, "https://example.com/a")
	assert.Contains(t, got, "the selected bit")
	assert.NotContains(t, got, "the whole article body")
}

func TestCompose_FallsBackToContent(t *testing.T) {
	pc := &core.PageContext{Title: "A Page", Content: "full content"}
	assert.Contains(t, Compose("q", pc, 0), "full content")
}

func TestCompose_TruncatesToMaxChars(t *testing.T) {
	pc := &core.PageContext{Content: strings.Repeat("x", 500)}
	got := Compose("q", pc, 100)
	assert.Contains(t, got, strings.Repeat("x", 100))
	assert.NotContains(t, got, strings.Repeat("x", 101))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxChars int
		want     string
	}{
		{name: "zero disables truncation", in: "abcdef", maxChars: 0, want: "abcdef"},
		{name: "under limit untouched", in: "abc", maxChars: 10, want: "abc"},
		{name: "cut at limit", in: "abcdef", maxChars: 3, want: "abc"},
		{name: "counts runes not bytes", in: "äöüß", maxChars: 2, want: "äö"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.maxChars))
		})
	}
}
