// Package page composes the user-visible prompt text from a prompt and
// captured page context. This is plain text plumbing outside the request
// core: the engine only ever sees the composed string.
package page
