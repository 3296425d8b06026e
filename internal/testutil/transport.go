package testutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// DoerFunc adapts a function to the transport Doer shape.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do implements the single-method transport interface.
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Response builds an in-memory HTTP response with the given status and body.
func Response(status int, body string) *http.Response {
	return &http.Response{
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// ChunkedResponse builds a 200 response whose body is delivered in chunks of
// at most size bytes per Read, for exercising chunk-boundary handling.
func ChunkedResponse(body string, size int) *http.Response {
	resp := Response(http.StatusOK, "")
	resp.Body = io.NopCloser(&chunkedReader{data: []byte(body), size: size})
	return resp
}

type chunkedReader struct {
	data []byte
	size int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.size
	if n <= 0 || n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

// Step is one scripted transport outcome: a response or an error.
type Step struct {
	Resp *http.Response
	Err  error
}

// ScriptedDoer replays a fixed sequence of outcomes, one per attempt, and
// records every request it saw. It is safe for concurrent use.
type ScriptedDoer struct {
	mu       sync.Mutex
	steps    []Step
	Requests []*http.Request
}

// NewScriptedDoer creates a transport replaying the given steps in order.
// The final step is repeated if more attempts arrive than steps exist.
func NewScriptedDoer(steps ...Step) *ScriptedDoer {
	return &ScriptedDoer{steps: steps}
}

// Do implements the single-method transport interface.
func (d *ScriptedDoer) Do(req *http.Request) (*http.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Requests = append(d.Requests, req)
	idx := len(d.Requests) - 1
	if idx >= len(d.steps) {
		idx = len(d.steps) - 1
	}
	step := d.steps[idx]
	return step.Resp, step.Err
}

// Attempts reports how many requests the transport has seen.
func (d *ScriptedDoer) Attempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Requests)
}
