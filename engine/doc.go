// Package engine orchestrates one chat request end to end: it builds the
// outbound payload from conversation history, drives the transport retrier,
// sniffs the response framing, decodes streamed or whole-document bodies and
// resolves everything to a single normalized result. Every call registers a
// cancellation handle in the lifecycle registry so it can be aborted
// mid-flight by request id; the entry is retired on every outcome.
package engine
