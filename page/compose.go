package page

import (
	"strings"

	"github.com/hupe1980/pagechat/core"
)

// Compose appends captured page context to the user's prompt. The user's
// selection is preferred over the full page content; whichever is used is
// truncated to maxChars runes (0 disables truncation). A nil or empty context
// returns the prompt unchanged.
func Compose(prompt string, pc *core.PageContext, maxChars int) string {
	if pc == nil {
		return prompt
	}
	excerpt := pc.Selection
	if excerpt == "" {
		excerpt = pc.Content
	}
	excerpt = strings.TrimSpace(excerpt)
	if excerpt == "" {
		return prompt
	}
	excerpt = Truncate(excerpt, maxChars)

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n---\nPage: ")
	b.WriteString(pc.Title)
	if pc.URL != "" {
		b.WriteString(" (")
		b.WriteString(pc.URL)
		b.WriteString(")")
	}
	b.WriteString("\n\n")
	b.WriteString(excerpt)
	return b.String()
}

// Truncate cuts s to at most maxChars runes. Truncation never splits a UTF-8
// sequence.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
