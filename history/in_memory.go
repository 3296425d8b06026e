package history

import (
	"sync"

	"github.com/hupe1980/pagechat/core"
)

// InMemoryStore is a volatile HistoryStore implementation keeping transcripts
// in a process local map. It is safe for concurrent access and best suited
// for tests or single-session hosts. Returned slices are copies so callers
// cannot mutate internal state.
type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]core.Message
}

var _ core.HistoryStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{conversations: make(map[string][]core.Message)}
}

// Messages returns a copy of the ordered transcript for conversationID. An
// unknown conversation yields an empty transcript, not an error.
func (s *InMemoryStore) Messages(conversationID string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.conversations[conversationID]
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Append adds one turn to the end of the transcript.
func (s *InMemoryStore) Append(conversationID string, msg core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversationID] = append(s.conversations[conversationID], msg)
	return nil
}

// Clear removes the transcript for conversationID.
func (s *InMemoryStore) Clear(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
	return nil
}
