// Package testutil contains helper builders and utilities used across tests
// to reduce boilerplate when constructing event-stream bodies, response
// envelopes and canned HTTP transports. These helpers are intentionally
// minimal and are not intended for production usage.
package testutil
