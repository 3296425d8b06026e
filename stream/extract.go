package stream

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"
)

// textBearingTypes are the content-entry types whose "text" field is part of
// the generated output.
var textBearingTypes = map[string]bool{
	"output_text":  true,
	"text":         true,
	"summary_text": true,
}

// DocumentText extracts the reply text from a complete JSON response
// document. It is used both for non-streaming bodies and as the last-resort
// extraction from a recorded stream envelope. Shapes are tried in order:
// a top-level plain-text field, then a nested output list whose items carry
// text-bearing content entries, then a chat-completion style choice message.
// A body that matches none of them (including non-JSON) yields empty text —
// never an error.
func DocumentText(data []byte) string {
	// Tolerate framing junk ahead of the document (stray comment lines,
	// whitespace) by parsing from the first brace or bracket.
	idx := bytes.IndexAny(data, "{[")
	if idx < 0 {
		return ""
	}
	doc := gjson.ParseBytes(data[idx:])

	if text := doc.Get("output_text"); text.Type == gjson.String && text.String() != "" {
		return text.String()
	}
	if text := doc.Get("text"); text.Type == gjson.String && text.String() != "" {
		return text.String()
	}

	if output := doc.Get("output"); output.IsArray() {
		var b strings.Builder
		output.ForEach(func(_, item gjson.Result) bool {
			content := item.Get("content")
			if !content.IsArray() {
				return true
			}
			content.ForEach(func(_, entry gjson.Result) bool {
				if textBearingTypes[entry.Get("type").String()] {
					b.WriteString(entry.Get("text").String())
				}
				return true
			})
			return true
		})
		if b.Len() > 0 {
			return b.String()
		}
	}

	if text := doc.Get("choices.0.message.content"); text.Type == gjson.String {
		return text.String()
	}

	return ""
}
