package lifecycle

import (
	"context"
	"sync"
)

// Registry maps opaque request identifiers to their in-flight cancellation
// handles. It is safe for concurrent use; cancel and retire may race with
// each other freely — whichever runs second observes absence and no-ops.
type Registry struct {
	mu      sync.Mutex
	entries map[string]context.CancelFunc
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]context.CancelFunc)}
}

// Register inserts an entry unconditionally; a colliding identifier is
// overwritten (last writer wins). Callers must guarantee identifier
// uniqueness per in-flight call.
func (r *Registry) Register(requestID string, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[requestID] = cancel
}

// Cancel triggers and removes the entry for requestID, reporting whether a
// live entry was found. Cancelling an already-finished or unknown request is
// not an error and reports false.
func (r *Registry) Cancel(requestID string) bool {
	r.mu.Lock()
	cancel, ok := r.entries[requestID]
	if ok {
		delete(r.entries, requestID)
	}
	r.mu.Unlock()

	if ok {
		cancel()
	}
	return ok
}

// Retire removes the entry unconditionally. Called at the end of every
// request regardless of outcome.
func (r *Registry) Retire(requestID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, requestID)
}

// Len reports the number of live entries. Used for inspection and tests.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
