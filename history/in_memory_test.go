package history

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagechat/core"
)

// Interface compliance (compile-time assertion)
var _ core.HistoryStore = (*InMemoryStore)(nil)

func TestInMemoryStore_AppendAndMessages(t *testing.T) {
	s := NewInMemoryStore()

	require.NoError(t, s.Append("conv-1", core.UserMessage("hello")))
	require.NoError(t, s.Append("conv-1", core.AssistantMessage("hi")))
	require.NoError(t, s.Append("conv-2", core.UserMessage("other")))

	msgs, err := s.Messages("conv-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, core.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, core.RoleAssistant, msgs[1].Role)

	other, err := s.Messages("conv-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Append("conv-1", core.UserMessage("original")))

	msgs, err := s.Messages("conv-1")
	require.NoError(t, err)
	msgs[0].Content = "mutated"

	again, err := s.Messages("conv-1")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Content)
}

func TestInMemoryStore_UnknownConversationIsEmpty(t *testing.T) {
	s := NewInMemoryStore()
	msgs, err := s.Messages("nope")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestInMemoryStore_Clear(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Append("conv-1", core.UserMessage("hello")))
	require.NoError(t, s.Clear("conv-1"))

	msgs, err := s.Messages("conv-1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// Clearing an unknown conversation is a no-op.
	assert.NoError(t, s.Clear("conv-x"))
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Append("conv-1", core.UserMessage("x"))
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Messages("conv-1")
		}()
	}
	wg.Wait()

	msgs, err := s.Messages("conv-1")
	require.NoError(t, err)
	assert.Len(t, msgs, 50)
}
