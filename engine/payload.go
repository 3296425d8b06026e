package engine

import (
	"strings"

	"github.com/hupe1980/pagechat/core"
)

// contentPart is one typed text entry inside an input item.
type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// inputItem is one conversational turn in the upstream's per-role shape.
type inputItem struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

// chatPayload is the outbound request body. Streaming is always requested;
// whether the upstream honors it is decided by sniffing the response.
type chatPayload struct {
	Model           string      `json:"model"`
	Input           []inputItem `json:"input"`
	Instructions    string      `json:"instructions,omitempty"`
	Temperature     float64     `json:"temperature"`
	MaxOutputTokens int64       `json:"max_output_tokens"`
	Stream          bool        `json:"stream"`
}

// buildPayload maps the conversation into the upstream's expected per-role
// content shape. Assistant turns carry output-tagged text; user (and any
// other) turns carry input-tagged text.
func buildPayload(req core.Request) chatPayload {
	input := make([]inputItem, 0, len(req.Messages))
	for _, msg := range req.Messages {
		partType := "input_text"
		if msg.Role == core.RoleAssistant {
			partType = "output_text"
		}
		input = append(input, inputItem{
			Role:    string(msg.Role),
			Content: []contentPart{{Type: partType, Text: msg.Content}},
		})
	}
	return chatPayload{
		Model:           req.Model,
		Input:           input,
		Instructions:    req.SystemPrompt,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
		Stream:          true,
	}
}

// knownAuthSchemes are the authorization scheme prefixes passed through
// unchanged; a bare token gets the Bearer prefix.
var knownAuthSchemes = []string{"Bearer ", "Basic ", "Token "}

func authorizationHeader(token string) string {
	trimmed := strings.TrimSpace(token)
	for _, scheme := range knownAuthSchemes {
		if strings.HasPrefix(trimmed, scheme) {
			return trimmed
		}
	}
	return "Bearer " + trimmed
}
