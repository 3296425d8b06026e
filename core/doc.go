// Package core provides the foundational domain types and interfaces used by
// pagechat. It defines the core abstractions for:
//
//   - Messages (immutable conversational turns with role + content)
//   - Request descriptors (the per-call input consumed by the engine)
//   - Results (the tagged Ok / Failed / Cancelled variant every call resolves to)
//   - Pluggable providers for configuration, conversation history and page context
//
// The package intentionally keeps implementation concerns (transports, stream
// decoding, orchestration) out of scope, exposing small interfaces to enable
// custom backends and extension hosts.
package core
