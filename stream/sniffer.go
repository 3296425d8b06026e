package stream

import "strings"

// Mode is the sniffed framing of a response body.
type Mode string

const (
	// ModeJSON marks a body that is a single JSON document.
	ModeJSON Mode = "json"
	// ModeEventStream marks a body framed as an incremental event stream.
	ModeEventStream Mode = "event-stream"
)

// eventFieldPrefixes are the field markers that identify an event-stream line.
var eventFieldPrefixes = []string{"data:", "event:", ":"}

// Sniff classifies the first decoded chunk of a response body. Precedence:
// a body whose trimmed text starts with '{' or '[' is JSON regardless of any
// other signal; otherwise a body that starts with an event-stream field
// prefix, or contains a line beginning with one, is an event stream; anything
// else defaults to JSON. The result is a best-effort hint, not an
// authoritative switch — callers keep the full body buffered so they can fall
// back to document parsing when stream extraction yields nothing usable.
func Sniff(first string) Mode {
	trimmed := strings.TrimSpace(first)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ModeJSON
	}
	if startsWithEventField(trimmed) {
		return ModeEventStream
	}
	for _, line := range strings.Split(normalizeNewlines(first), "\n") {
		if startsWithEventField(line) {
			return ModeEventStream
		}
	}
	return ModeJSON
}

func startsWithEventField(s string) bool {
	for _, prefix := range eventFieldPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
