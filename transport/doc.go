// Package transport issues outbound HTTP calls with bounded automatic retry
// on transient transport failure. It is the lowest layer of the request
// pipeline: it knows nothing about chat payloads or response decoding, only
// about getting one logical request onto the wire. Cancellation is never
// retried and propagates immediately; any other connection-level failure is
// retried with linear backoff until the budget is exhausted.
package transport
