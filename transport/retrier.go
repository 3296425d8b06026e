package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/hupe1980/pagechat/logging"
)

// Doer abstracts the HTTP client so the retrier (and everything above it) can
// run against a mock transport in tests without any network present.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryPolicy bounds automatic retry of transient transport failure.
// Retries counts additional attempts after the first, so a request is issued
// at most Retries+1 times. The delay before attempt k (k >= 2) is
// BaseDelay * (k - 1).
type RetryPolicy struct {
	Retries   int
	BaseDelay time.Duration
}

// DefaultRetryPolicy is the budget the engine uses unless overridden.
var DefaultRetryPolicy = RetryPolicy{Retries: 1, BaseDelay: 350 * time.Millisecond}

// Options configure the retrier.
type Options struct {
	Client Doer
	Policy RetryPolicy
	Logger logging.Logger
}

// Retrier issues one logical HTTP request with bounded linear-backoff retry.
// A response with a non-2xx status is not a transport failure and is returned
// to the caller untouched; only connection-level errors consume the budget.
type Retrier struct {
	client Doer
	policy RetryPolicy
	logger logging.Logger
}

// NewRetrier constructs a Retrier with optional overrides. Any unset option
// falls back to http.DefaultClient, DefaultRetryPolicy and a NoOp logger.
func NewRetrier(optFns ...func(o *Options)) *Retrier {
	opts := Options{
		Client: http.DefaultClient,
		Policy: DefaultRetryPolicy,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Policy.Retries < 0 {
		opts.Policy.Retries = 0
	}
	return &Retrier{client: opts.Client, policy: opts.Policy, logger: opts.Logger}
}

// Do attempts the request up to Retries+1 times. The request body must be
// rewindable (GetBody set, as http.NewRequestWithContext does for in-memory
// bodies) for attempts after the first. Cancellation propagates immediately
// without consuming the budget; after exhaustion the last observed failure is
// returned.
func (r *Retrier) Do(req *http.Request) (*http.Response, error) {
	attempts := r.policy.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := r.policy.BaseDelay * time.Duration(attempt-1)
			if err := sleep(req.Context(), delay); err != nil {
				return nil, err
			}
			var rerr error
			if req, rerr = rewind(req); rerr != nil {
				return nil, rerr
			}
		}

		resp, err := r.client.Do(req)
		if err == nil {
			return resp, nil
		}
		if cancelled(req.Context(), err) {
			return nil, err
		}

		lastErr = err
		r.logger.Warn("transport attempt failed", "attempt", attempt, "error", err.Error())
	}

	return nil, fmt.Errorf("transport: %d attempt(s) failed: %w", attempts, lastErr)
}

// rewind produces a request whose body is reset for a fresh attempt.
func rewind(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.GetBody == nil {
		return req, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("transport: rewind request body: %w", err)
	}
	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

func cancelled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsUnreachable reports whether err indicates that no network path to the
// target exists at all (DNS resolution failure, unreachable network or host).
// Callers use this to surface a clearer diagnostic than the raw dial error.
func IsUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
