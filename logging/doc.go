// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer ChatLogger with contextual
// helpers (component, request id) and a domain specific helper for recording
// chat call latency and outcome.
package logging
