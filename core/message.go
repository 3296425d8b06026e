package core

// Role identifies the author of a conversational turn.
type Role string

const (
	// RoleUser marks a turn authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn authored by the model.
	RoleAssistant Role = "assistant"
)

// Message is a single conversational turn. Messages are immutable once
// appended to a conversation; their insertion order is the conversational
// order. A conversation is an ordered []Message owned exclusively by the
// caller — the engine only reads it to build a request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage constructs a user-authored message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage constructs an assistant-authored message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
