// Package compute defines the provider-agnostic compute service abstraction
// and the facade operations built on it.
//
// A Service is an opaque handle onto one provider backend. Its provider
// identity is fixed; its capability set is not: the same backend type can
// expose different capabilities depending on runtime mode (a read-only
// deployment, say). Capabilities are therefore modeled as optional interfaces
// (CreateDestroyer, Stopper, Suspender, BaseNameMatcher, Closeable) that
// every facade operation type-asserts per call, failing with
// ErrUnsupportedOperation before any remote contact when the assertion
// misses.
//
// Facade operations follow the async completion protocol: each takes the
// caller's completion channel, returns promptly, and delivers exactly one
// result. See the async package for the protocol contract.
//
// A Service is safe for concurrent independent calls. No ordering is
// guaranteed between sibling calls against the same service.
package compute
