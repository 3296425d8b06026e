package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/hupe1980/pagechat/core"
	"github.com/hupe1980/pagechat/lifecycle"
	"github.com/hupe1980/pagechat/logging"
	"github.com/hupe1980/pagechat/stream"
	"github.com/hupe1980/pagechat/transport"
)

// DefaultMaxOutputTokens is the output-token ceiling applied when a request
// does not set one.
const DefaultMaxOutputTokens int64 = 4096

// sniffSize caps how much of the body is gathered for mode classification;
// sniffMin is the prefix length at which classification proceeds even without
// a complete line.
const (
	sniffSize = 4096
	sniffMin  = 64
)

// Options configure the engine.
type Options struct {
	// Client issues the HTTP calls. Defaults to http.DefaultClient.
	Client transport.Doer
	// RetryPolicy bounds transient-failure retry. Defaults to
	// transport.DefaultRetryPolicy.
	RetryPolicy transport.RetryPolicy
	// Registry tracks in-flight cancellation handles. Defaults to a fresh
	// registry private to this engine.
	Registry *lifecycle.Registry
	// Logger receives structured request lifecycle logs. Defaults to NoOp.
	Logger logging.Logger
	// OnDelta, if set, receives every incremental text chunk keyed by request
	// id while a streamed call is in flight.
	OnDelta func(requestID, delta string)
}

// Engine composes the retrier, sniffer, decoder and lifecycle registry into
// the single Submit operation. An Engine is safe for concurrent use; every
// in-flight request owns its own decode state.
type Engine struct {
	config   core.ConfigProvider
	retrier  *transport.Retrier
	registry *lifecycle.Registry
	logger   logging.Logger
	onDelta  func(requestID, delta string)
}

// New creates an Engine reading connection settings from config.
func New(config core.ConfigProvider, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Client:      http.DefaultClient,
		RetryPolicy: transport.DefaultRetryPolicy,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = lifecycle.NewRegistry()
	}
	retrier := transport.NewRetrier(func(o *transport.Options) {
		o.Client = opts.Client
		o.Policy = opts.RetryPolicy
		o.Logger = opts.Logger
	})
	return &Engine{
		config:   config,
		retrier:  retrier,
		registry: opts.Registry,
		logger:   opts.Logger,
		onDelta:  opts.OnDelta,
	}
}

// Registry exposes the lifecycle registry shared by this engine.
func (e *Engine) Registry() *lifecycle.Registry { return e.registry }

// Cancel aborts the in-flight request with the given id, reporting whether a
// live entry was found. Unknown or already-resolved ids are a no-op.
func (e *Engine) Cancel(requestID string) bool {
	return e.registry.Cancel(requestID)
}

// Submit runs one chat request to completion and resolves it to a normalized
// result. It never returns transport-level errors to the caller: every
// failure mode folds into the Failed variant and cancellation into the
// Cancelled marker. The request's lifecycle entry is registered before
// dispatch and retired on every outcome.
func (e *Engine) Submit(ctx context.Context, req core.Request) core.Result {
	settings, err := e.config.Settings()
	if err != nil {
		return core.Failed(fmt.Sprintf("configuration unavailable: %v", err))
	}
	applyDefaults(&req, settings)

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	callCtx, cancel := context.WithCancel(ctx)
	e.registry.Register(requestID, cancel)
	defer func() {
		e.registry.Retire(requestID)
		cancel()
	}()

	start := time.Now()
	res := e.run(callCtx, settings, req, requestID)
	e.logger.Info("chat call resolved",
		"request_id", requestID,
		"model", req.Model,
		"outcome", string(res.Outcome()),
		"duration", time.Since(start),
	)
	return res
}

func applyDefaults(req *core.Request, settings core.Settings) {
	if req.Model == "" {
		req.Model = settings.ModelName
	}
	if req.SystemPrompt == "" {
		req.SystemPrompt = settings.SystemPrompt
	}
	if req.Temperature == 0 {
		req.Temperature = settings.Temperature
	}
	if req.MaxOutputTokens == 0 {
		req.MaxOutputTokens = DefaultMaxOutputTokens
	}
}

func (e *Engine) run(ctx context.Context, settings core.Settings, req core.Request, requestID string) core.Result {
	body, err := json.Marshal(buildPayload(req))
	if err != nil {
		return core.Failed(fmt.Sprintf("encode request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.Endpoint, bytes.NewReader(body))
	if err != nil {
		return core.Failed(fmt.Sprintf("build request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", authorizationHeader(settings.BearerToken))

	resp, err := e.retrier.Do(httpReq)
	if err != nil {
		if isCancellation(ctx, err) {
			return core.Cancelled()
		}
		if transport.IsUnreachable(err) {
			return core.Failed("no network path to the endpoint: check your connection and the endpoint URL")
		}
		return core.Failed(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.Failed(httpErrorMessage(resp))
	}

	text, err := e.decodeBody(ctx, resp.Body, requestID)
	if err != nil {
		if isCancellation(ctx, err) {
			return core.Cancelled()
		}
		var upstream *stream.UpstreamError
		if errors.As(err, &upstream) {
			return core.Failed(upstream.Msg)
		}
		return core.Failed(fmt.Sprintf("decode response: %v", err))
	}
	return core.OK(text)
}

// decodeBody sniffs the response framing from its first chunk and decodes
// accordingly. The whole body is teed into a buffer so that an event-stream
// classification which yields no usable text can still fall back to parsing
// the complete body as a single JSON document — the sniff is a hint, not an
// authoritative switch.
func (e *Engine) decodeBody(ctx context.Context, body io.Reader, requestID string) (string, error) {
	var buffered bytes.Buffer
	tee := io.TeeReader(body, &buffered)

	// Accumulate enough of the body to classify it: tiny reads (a byte at a
	// time is legal) carry no usable framing signal, so keep reading until a
	// full line, a small prefix or end of stream is in hand.
	buf := make([]byte, sniffSize)
	var (
		n   int
		err error
	)
	for err == nil && n < sniffMin && !bytes.ContainsRune(buf[:n], '\n') {
		var r int
		r, err = tee.Read(buf[n:])
		n += r
	}
	eof := errors.Is(err, io.EOF)
	if err != nil && !eof {
		return "", err
	}
	firstChunk := buf[:n]

	if stream.Sniff(string(firstChunk)) == stream.ModeJSON {
		if !eof {
			if _, err := io.Copy(io.Discard, tee); err != nil {
				return "", err
			}
		}
		return stream.DocumentText(buffered.Bytes()), nil
	}

	dec := stream.NewDecoder(func(o *stream.Options) {
		if e.onDelta != nil {
			o.OnDelta = func(delta string) { e.onDelta(requestID, delta) }
		}
	})

	var text string
	if eof {
		// The sole chunk is the complete body; no incremental phase.
		if err := dec.Feed(firstChunk); err != nil {
			return "", err
		}
		text, err = dec.Finish()
	} else {
		if err := dec.Feed(firstChunk); err != nil {
			return "", err
		}
		text, err = dec.Run(ctx, tee)
	}
	if err != nil {
		return "", err
	}

	if text == "" {
		// No usable text came out of event-stream extraction; the body may
		// have been a mislabeled document.
		text = stream.DocumentText(buffered.Bytes())
	}
	return text, nil
}

// httpErrorMessage surfaces the best available message for a non-2xx status:
// a structured error message from the body when present, otherwise the
// generic "HTTP <status>: <body or status text>" form.
func httpErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)
	if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
		return msg
	}
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, detail)
}

func isCancellation(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
