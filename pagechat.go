// Package pagechat provides a high-level façade over the request engine and
// its collaborators (configuration, conversation history, page-context
// composition & logging) enabling a chat front end to talk to an LLM HTTP
// endpoint resiliently. Most applications interact with this package by:
//  1. Creating a PageChat via New() with a validated config provider
//  2. Calling Ask() per user turn (history and page context handled for them)
//     or SubmitChat() when they manage conversations themselves
//  3. Calling CancelChat() from any goroutine to abort an in-flight request
//
// The façade delegates all protocol and failure handling to engine.Engine
// while keeping setup and usage ergonomics concise. All defaults are safe for
// local development and testing; production hosts typically supply a durable
// history store and a structured logger.
package pagechat

import (
	"context"

	"github.com/hupe1980/pagechat/core"
	"github.com/hupe1980/pagechat/engine"
	"github.com/hupe1980/pagechat/history"
	"github.com/hupe1980/pagechat/logging"
	"github.com/hupe1980/pagechat/page"
	"github.com/hupe1980/pagechat/transport"
)

// Options configures the PageChat instance.
type Options struct {
	// History stores conversation transcripts (defaults to in-memory).
	History core.HistoryStore

	// Client issues the HTTP calls (defaults to http.DefaultClient via the
	// engine). Supply a mock transport to run without a network.
	Client transport.Doer

	// RetryPolicy bounds transient-failure retry (defaults to 1 retry with a
	// 350 ms base delay).
	RetryPolicy transport.RetryPolicy

	// OnDelta receives incremental text chunks keyed by request id while a
	// streamed call is in flight. Optional; used for live rendering.
	OnDelta func(requestID, delta string)

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// PageChat is the high-level façade aggregating the engine and its services.
type PageChat struct {
	config  core.ConfigProvider
	history core.HistoryStore
	engine  *engine.Engine
}

// New creates a PageChat with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(config core.ConfigProvider, optFns ...func(o *Options)) *PageChat {
	opts := Options{
		History:     history.NewInMemoryStore(),
		RetryPolicy: transport.DefaultRetryPolicy,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	eng := engine.New(config, func(o *engine.Options) {
		if opts.Client != nil {
			o.Client = opts.Client
		}
		o.RetryPolicy = opts.RetryPolicy
		o.Logger = opts.Logger
		o.OnDelta = opts.OnDelta
	})

	return &PageChat{config: config, history: opts.History, engine: eng}
}

// SubmitChat runs one chat request built from the given descriptor and
// resolves it to a normalized result. The caller owns the message slice; it
// is read, never mutated or retained.
func (p *PageChat) SubmitChat(ctx context.Context, req core.Request) core.Result {
	return p.engine.Submit(ctx, req)
}

// CancelChat aborts the in-flight request with the given id, reporting
// whether a live entry was found. Cancelling an unknown or already-resolved
// request is a no-op.
func (p *PageChat) CancelChat(requestID string) bool {
	return p.engine.Cancel(requestID)
}

// History returns the transcript store so hosts can render or persist
// conversations.
func (p *PageChat) History() core.HistoryStore { return p.history }

// Ask handles one full user turn for a conversation: it composes the prompt
// with the captured page context, appends the user turn to history, submits
// the request and, on success, appends the assistant reply. The returned
// result is the same normalized value SubmitChat yields; history is only
// updated with an assistant turn when the call succeeds.
func (p *PageChat) Ask(ctx context.Context, conversationID, prompt string, pc *core.PageContext) core.Result {
	settings, err := p.config.Settings()
	if err != nil {
		return core.Failed("configuration unavailable: " + err.Error())
	}

	composed := page.Compose(prompt, pc, settings.MaxPageChars)
	if err := p.history.Append(conversationID, core.UserMessage(composed)); err != nil {
		return core.Failed("append history: " + err.Error())
	}
	msgs, err := p.history.Messages(conversationID)
	if err != nil {
		return core.Failed("read history: " + err.Error())
	}

	res := p.engine.Submit(ctx, core.Request{Messages: msgs})
	if res.IsOK() {
		if err := p.history.Append(conversationID, core.AssistantMessage(res.Text())); err != nil {
			return core.Failed("append history: " + err.Error())
		}
	}
	return res
}
