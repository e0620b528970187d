package async

import "context"

// Result is the two-slot outcome of an asynchronous operation. Exactly one of
// Value and Err is populated; callers must inspect the pair rather than
// expect anything to be raised across the channel boundary.
type Result[T any] struct {
	Value T
	Err   error
}

// NewChannel creates a completion channel suitable for one operation. The
// single buffer slot lets a producer deliver without blocking even when the
// caller never receives.
func NewChannel[T any]() chan Result[T] {
	return make(chan Result[T], 1)
}

// Deliver writes the single outcome of an operation to the completion
// channel. Exactly one of value and err should be meaningful; err wins when
// both are set.
func Deliver[T any](channel chan<- Result[T], value T, err error) {
	if err != nil {
		var zero T
		channel <- Result[T]{Value: zero, Err: err}

		return
	}

	channel <- Result[T]{Value: value}
}

// Go runs operation on its own goroutine and delivers its outcome to the
// completion channel exactly once. It is the primitive every facade
// operation is built on: the caller's goroutine is never blocked on a
// backend round trip.
func Go[T any](ctx context.Context, channel chan<- Result[T], operation func(ctx context.Context) (T, error)) {
	go func() {
		value, err := operation(ctx)
		Deliver(channel, value, err)
	}()
}

// Fail delivers err to the completion channel without running anything. It is
// used for calls rejected before any backend contact, keeping the
// one-delivery contract intact for the caller.
func Fail[T any](channel chan<- Result[T], err error) {
	var zero T

	// The channel may be unbuffered; never block the rejecting caller.
	go func() {
		channel <- Result[T]{Value: zero, Err: err}
	}()
}

// Await blocks until the completion channel delivers, re-surfacing the
// delivered error at the call site. The context bounds the wait only: when it
// ends first, Await returns ctx.Err() and the producer keeps running in the
// background with its eventual result discarded.
func Await[T any](ctx context.Context, channel <-chan Result[T]) (T, error) {
	select {
	case result := <-channel:
		return result.Value, result.Err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// Derive composes a higher-level operation from a lower-level one: it awaits
// the single result on inner, transforms the success value, and forwards the
// transformed value or the error verbatim to outer. Exactly one delivery
// happens on outer.
func Derive[In, Out any](
	ctx context.Context,
	inner <-chan Result[In],
	outer chan<- Result[Out],
	transform func(In) Out,
) {
	go func() {
		value, err := Await(ctx, inner)
		if err != nil {
			Fail(outer, err)

			return
		}

		Deliver(outer, transform(value), nil)
	}()
}
