// Package lifecycle tracks in-flight chat requests so they can be cancelled
// from outside the call that started them. The Registry is the single source
// of truth for "is this request still cancellable": an entry exists from
// dispatch until the call resolves or is cancelled, whichever happens first,
// and is removed exactly once.
package lifecycle
