package lifecycle

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CancelTriggersHandleOnce(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	r.Register("req-1", cancel)
	require.Equal(t, 1, r.Len())

	assert.True(t, r.Cancel("req-1"))
	assert.Error(t, ctx.Err())
	assert.Equal(t, 0, r.Len())

	// Second cancel of the now-retired id reports no live entry, no error.
	assert.False(t, r.Cancel("req-1"))
}

func TestRegistry_CancelUnknownIsNoOp(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Cancel("never-registered"))
}

func TestRegistry_RetireRemovesUnconditionally(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	r.Register("req-1", cancel)

	r.Retire("req-1")
	assert.Equal(t, 0, r.Len())
	assert.NoError(t, ctx.Err(), "retire must not trigger the handle")

	// Retiring again is harmless.
	r.Retire("req-1")

	assert.False(t, r.Cancel("req-1"))
}

func TestRegistry_LastWriterWins(t *testing.T) {
	r := NewRegistry()
	firstCtx, firstCancel := context.WithCancel(context.Background())
	secondCtx, secondCancel := context.WithCancel(context.Background())

	r.Register("req-1", firstCancel)
	r.Register("req-1", secondCancel)
	require.Equal(t, 1, r.Len())

	assert.True(t, r.Cancel("req-1"))
	assert.NoError(t, firstCtx.Err())
	assert.Error(t, secondCtx.Err())
}

func TestRegistry_ConcurrentCancelAndRetire(t *testing.T) {
	r := NewRegistry()

	const n = 100
	ids := make([]string, n)
	for i := range ids {
		ids[i] = string(rune('a'+i%26)) + "-" + string(rune('0'+i%10))
	}
	// Deliberately colliding ids exercise the last-writer-wins path too.
	for _, id := range ids {
		_, cancel := context.WithCancel(context.Background())
		r.Register(id, cancel)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			r.Cancel(id)
		}(id)
		go func(id string) {
			defer wg.Done()
			r.Retire(id)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 0, r.Len())
}
