package testutil

import (
	"github.com/tidwall/sjson"
)

// EventStreamBuilder provides a fluent helper for constructing event-stream
// bodies in tests. Example:
//
//	body := NewEventStream().Delta("Hel").Delta("lo").DoneText("Hello").Done().Build()
//
// Chain only the events you need; blocks are framed with blank lines exactly
// as the decoder expects them on the wire.
type EventStreamBuilder struct {
	blocks []string
}

// NewEventStream creates an empty builder.
func NewEventStream() *EventStreamBuilder { return &EventStreamBuilder{} }

func event(typ string, fields map[string]interface{}) string {
	payload, _ := sjson.Set("{}", "type", typ)
	for k, v := range fields {
		payload, _ = sjson.Set(payload, k, v)
	}
	return "data: " + payload
}

// Delta appends an incremental text delta event (chainable).
func (b *EventStreamBuilder) Delta(text string) *EventStreamBuilder {
	b.blocks = append(b.blocks, event("response.output_text.delta", map[string]interface{}{"delta": text}))
	return b
}

// ChoiceDelta appends a chat-completion style delta chunk (chainable).
func (b *EventStreamBuilder) ChoiceDelta(text string) *EventStreamBuilder {
	b.blocks = append(b.blocks, event("chat.completion.chunk", map[string]interface{}{"choices.0.delta.content": text}))
	return b
}

// DoneText appends a final declared-text event (chainable).
func (b *EventStreamBuilder) DoneText(text string) *EventStreamBuilder {
	b.blocks = append(b.blocks, event("response.output_text.done", map[string]interface{}{"text": text}))
	return b
}

// Completed appends a terminal completed event embedding an envelope whose
// output carries the given text (chainable).
func (b *EventStreamBuilder) Completed(text string) *EventStreamBuilder {
	b.blocks = append(b.blocks, event("response.completed", map[string]interface{}{
		"response.output.0.content.0.type": "output_text",
		"response.output.0.content.0.text": text,
	}))
	return b
}

// Error appends an explicit upstream error event (chainable).
func (b *EventStreamBuilder) Error(msg string) *EventStreamBuilder {
	b.blocks = append(b.blocks, event("response.error", map[string]interface{}{"error.message": msg}))
	return b
}

// Raw appends an arbitrary pre-framed block verbatim (chainable).
func (b *EventStreamBuilder) Raw(block string) *EventStreamBuilder {
	b.blocks = append(b.blocks, block)
	return b
}

// Done appends the [DONE] sentinel block (chainable).
func (b *EventStreamBuilder) Done() *EventStreamBuilder {
	b.blocks = append(b.blocks, "data: [DONE]")
	return b
}

// Build frames the accumulated blocks into one body.
func (b *EventStreamBuilder) Build() string {
	var out string
	for _, block := range b.blocks {
		out += block + "\n\n"
	}
	return out
}

// ResponsesEnvelope builds a whole-document response envelope whose output
// list carries the given text.
func ResponsesEnvelope(text string) string {
	doc, _ := sjson.Set("{}", "output.0.content.0.type", "output_text")
	doc, _ = sjson.Set(doc, "output.0.content.0.text", text)
	return doc
}

// ChatCompletionDocument builds a chat-completion style whole document
// carrying the given message content.
func ChatCompletionDocument(text string) string {
	doc, _ := sjson.Set("{}", "choices.0.message.content", text)
	return doc
}
