package core

// Outcome tags the variant carried by a Result.
type Outcome string

const (
	// OutcomeOK indicates the call produced text (possibly empty).
	OutcomeOK Outcome = "ok"
	// OutcomeFailed indicates the call failed with a user-presentable message.
	OutcomeFailed Outcome = "failed"
	// OutcomeCancelled indicates the call was aborted via its request id.
	OutcomeCancelled Outcome = "cancelled"
)

// Result is the only value a chat call resolves to. Transport, protocol and
// decode failures are folded into the Failed variant; cancellation is its own
// variant and is never reported as a failure. The zero value is not valid —
// construct via OK, Failed or Cancelled.
type Result struct {
	outcome Outcome
	text    string
	message string
}

// OK returns a successful result carrying the decoded text. Empty decoded
// text is still a success, not an error.
func OK(text string) Result {
	return Result{outcome: OutcomeOK, text: text}
}

// Failed returns a failed result carrying a user-presentable message.
func Failed(message string) Result {
	return Result{outcome: OutcomeFailed, message: message}
}

// Cancelled returns the cancellation marker result.
func Cancelled() Result {
	return Result{outcome: OutcomeCancelled}
}

// Outcome reports which variant this result carries.
func (r Result) Outcome() Outcome { return r.outcome }

// IsOK reports whether the call succeeded.
func (r Result) IsOK() bool { return r.outcome == OutcomeOK }

// IsCancelled reports whether the call was cancelled.
func (r Result) IsCancelled() bool { return r.outcome == OutcomeCancelled }

// Text returns the decoded text for an OK result, and "" otherwise.
func (r Result) Text() string { return r.text }

// Message returns the failure message for a Failed result, and "" otherwise.
func (r Result) Message() string { return r.message }
