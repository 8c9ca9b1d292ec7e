// Package future provides a minimal single-assignment future used by the
// analytics client to run each API call on its own background goroutine.
//
// A Future is resolved exactly once, either with a value or an error, and
// can be awaited any number of times from any goroutine. There is no shared
// scheduler or event loop; every call is independent.
package future

import "context"

// Future holds the eventual result of an asynchronous operation.
// The zero value is not usable; construct one with Go, Resolved or Failed.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on a new goroutine and returns a Future resolved with its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Resolved returns a Future already resolved with the given value.
func Resolved[T any](value T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value}
	close(f.done)
	return f
}

// Failed returns a Future already resolved with the given error.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done returns a channel that is closed once the future is resolved.
// Useful in select statements alongside other channels.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or the context is cancelled.
// On cancellation it returns the zero value and the context error; the
// underlying operation keeps running and its result is still available
// to other waiters.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-f.done:
		return f.value, f.err
	}
}

// Value blocks until the future resolves and returns its result.
func (f *Future[T]) Value() (T, error) {
	<-f.done
	return f.value, f.err
}
