package core

// Request captures the normalized input for a single chat call. It is created
// per call, consumed once and not retained after the call resolves.
type Request struct {
	// RequestID is an opaque identifier for mid-flight cancellation. If empty
	// the engine generates one; callers supplying their own must guarantee
	// uniqueness per in-flight call.
	RequestID string `json:"request_id,omitempty"`

	// Messages is the ordered conversation to send. The slice is read, never
	// mutated.
	Messages []Message `json:"messages"`

	Model           string  `json:"model"`
	SystemPrompt    string  `json:"system_prompt,omitempty"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int64   `json:"max_output_tokens"`
}
