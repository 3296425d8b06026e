package core

// Settings carries the connection and prompt configuration supplied by a
// ConfigProvider. Endpoint must use secure transport; BearerToken is passed
// through unchanged when it already carries a recognized scheme prefix.
type Settings struct {
	Endpoint     string
	BearerToken  string
	ModelName    string
	SystemPrompt string
	Temperature  float64
	MaxPageChars int
}

// ConfigProvider supplies the settings used to build outbound requests.
// Implementations may be static, file backed or host-storage backed.
type ConfigProvider interface {
	Settings() (Settings, error)
}

// HistoryStore supplies ordered conversation history and accepts updates
// after each turn. Implementations should be safe for concurrent access and
// must return copies so callers cannot mutate internal state.
type HistoryStore interface {
	Messages(conversationID string) ([]Message, error)
	Append(conversationID string, msg Message) error
	Clear(conversationID string) error
}

// PageContext captures the text of the page the user is chatting about. It is
// used only to compose the user-visible prompt text.
type PageContext struct {
	Title     string
	URL       string
	Selection string
	Content   string
}
