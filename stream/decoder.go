package stream

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// doneSentinel terminates an event stream and carries no payload.
const doneSentinel = "[DONE]"

// UpstreamError is an explicit error event reported by the upstream inside an
// otherwise healthy stream. It is fatal for the call and never retried.
type UpstreamError struct {
	Msg string
}

func (e *UpstreamError) Error() string { return e.Msg }

// Options configure a Decoder.
type Options struct {
	// OnDelta, if set, is invoked for every incremental text chunk as it is
	// decoded, enabling live rendering while the call is still in flight.
	OnDelta func(delta string)
}

// Decoder consumes an event-stream body incrementally and accumulates the
// text it carries. It owns all per-call decode state, so one Decoder serves
// exactly one response body and is discarded afterwards. Feed it arbitrary
// byte slices — blocks split mid-line or mid-field across chunk boundaries
// decode identically to the same bytes delivered at once.
type Decoder struct {
	onDelta func(string)

	pending   strings.Builder // normalized text not yet forming a complete block
	carriedCR bool
	chunks    []string
	doneText  string
	envelope  string // raw JSON of the most recent embedded response envelope
}

// NewDecoder constructs a Decoder with optional overrides.
func NewDecoder(optFns ...func(o *Options)) *Decoder {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Decoder{onDelta: opts.OnDelta}
}

// Feed consumes the next chunk of the body. It normalizes line terminators,
// flushes every completed blank-line-delimited block and processes each one.
// A fatal upstream error event aborts with *UpstreamError; all other event
// payloads, however malformed, are absorbed.
func (d *Decoder) Feed(p []byte) error {
	for _, c := range p {
		switch c {
		case '\r':
			d.carriedCR = true
			d.pending.WriteByte('\n')
		case '\n':
			if d.carriedCR {
				d.carriedCR = false
				continue
			}
			d.pending.WriteByte('\n')
		default:
			d.carriedCR = false
			d.pending.WriteByte(c)
		}
	}

	buf := d.pending.String()
	var perr error
	for perr == nil {
		idx := strings.Index(buf, "\n\n")
		if idx < 0 {
			break
		}
		block := buf[:idx]
		buf = buf[idx+2:]
		perr = d.processBlock(block)
	}
	d.pending.Reset()
	d.pending.WriteString(buf)
	return perr
}

// Finish flushes any unterminated buffered text as one final block and
// resolves the accumulated state to the final text. Precedence: the declared
// done-text wins when it is at least as long as the concatenated deltas (some
// upstreams resend a corrected complete string — but a shorter one must not
// truncate what already streamed); otherwise the concatenated deltas; then
// text extracted from the last recorded envelope; then empty.
func (d *Decoder) Finish() (string, error) {
	if tail := d.pending.String(); strings.TrimSpace(tail) != "" {
		d.pending.Reset()
		if err := d.processBlock(tail); err != nil {
			return "", err
		}
	}

	joined := strings.Join(d.chunks, "")
	switch {
	case d.doneText != "" && len(d.doneText) >= len(joined):
		return d.doneText, nil
	case joined != "":
		return joined, nil
	case d.envelope != "":
		return DocumentText([]byte(d.envelope)), nil
	default:
		return "", nil
	}
}

// Run drains r through the decoder until EOF, checking for cancellation
// between reads, and resolves the final text.
func (d *Decoder) Run(ctx context.Context, r io.Reader) (string, error) {
	buf := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if ferr := d.Feed(buf[:n]); ferr != nil {
				return "", ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return d.Finish()
		}
		if err != nil {
			return "", err
		}
	}
}

// processBlock extracts the data payload of one event block and folds it into
// the accumulated state.
func (d *Decoder) processBlock(block string) error {
	var data []string
	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, "data:") {
			data = append(data, strings.TrimLeft(strings.TrimPrefix(line, "data:"), " \t"))
		}
	}
	payload := strings.Join(data, "\n")
	if payload == "" || payload == doneSentinel {
		return nil
	}

	if !gjson.Valid(payload) {
		// Malformed event data still reached the user once; keep it as a
		// literal chunk rather than dropping visible content.
		d.appendChunk(payload)
		return nil
	}

	ev := gjson.Parse(payload)
	typ := ev.Get("type").String()

	switch {
	case isErrorEvent(typ):
		return &UpstreamError{Msg: errorMessage(ev)}

	case isCompletedEvent(typ):
		if resp := ev.Get("response"); resp.IsObject() {
			d.envelope = resp.Raw
		}

	case isDoneTextEvent(typ, ev):
		d.doneText = ev.Get("text").String()

	default:
		if delta := deltaText(ev); delta != "" {
			d.appendChunk(delta)
		}
		// Non-terminal envelopes are still a usable last resort.
		if resp := ev.Get("response"); resp.IsObject() {
			d.envelope = resp.Raw
		}
	}
	return nil
}

func (d *Decoder) appendChunk(text string) {
	d.chunks = append(d.chunks, text)
	if d.onDelta != nil {
		d.onDelta(text)
	}
}

func isErrorEvent(typ string) bool {
	return typ == "error" || strings.HasSuffix(typ, ".error") || typ == "response.failed"
}

func isCompletedEvent(typ string) bool {
	return typ == "response.completed" || strings.HasSuffix(typ, ".completed")
}

func isDoneTextEvent(typ string, ev gjson.Result) bool {
	if strings.HasSuffix(typ, "output_text.done") {
		return true
	}
	return strings.HasSuffix(typ, ".done") && ev.Get("text").Exists()
}

func errorMessage(ev gjson.Result) string {
	if msg := ev.Get("error.message").String(); msg != "" {
		return msg
	}
	if msg := ev.Get("message").String(); msg != "" {
		return msg
	}
	return "upstream reported an error"
}

// deltaText performs the schema-tolerant incremental text lookup. Known
// shapes: a plain "delta" string (response event streams), "delta.text"
// (content-block deltas) and "choices.0.delta.content" (chat-completion
// chunks).
func deltaText(ev gjson.Result) string {
	if delta := ev.Get("delta"); delta.Type == gjson.String {
		return delta.String()
	}
	if text := ev.Get("delta.text"); text.Type == gjson.String {
		return text.String()
	}
	if content := ev.Get("choices.0.delta.content"); content.Type == gjson.String {
		return content.String()
	}
	return ""
}
