// Package async implements the single-delivery completion protocol used by
// every compute operation.
//
// An operation takes a caller-supplied completion channel and returns
// promptly; its outcome is written to the channel exactly once as a Result,
// a two-slot pair where exactly one of value and error is populated. No
// operation writes twice, and every accepted call eventually writes: a
// failing backend still yields an error, never silence.
//
// There is no cancellation. Abandoning a channel without receiving leaves the
// operation to finish in the background with its result discarded; Await
// honors its context for the wait only.
package async
