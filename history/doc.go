// Package history stores ordered conversation transcripts keyed by
// conversation id. The engine never writes history itself; the façade appends
// the user turn before a call and the assistant turn after a successful one.
package history
