// Package future provides a resolve-once result cell: a one-shot
// asynchronous container that settles exactly once, to a value or an
// error, no matter how many goroutines race to settle it or how many
// consumers observe it. It is the single primitive behind both delivery
// modes of the one-time read bridge.
package future

import (
	"context"
	"sync"

	"github.com/agentstation/ripple/pkg/errors"
)

// Value is a one-shot asynchronous result. The zero value is not usable;
// create instances with New. All methods are safe for concurrent use.
type Value[T any] struct {
	mu   sync.Mutex
	done chan struct{}
	val  T
	err  error
	subs []func(T, error)
}

// New returns an unsettled future.
func New[T any]() *Value[T] {
	return &Value[T]{done: make(chan struct{})}
}

// Complete settles the future with v and reports whether this call won
// the settle. Calls after the first settle, by either Complete or Fail,
// are no-ops that report false.
func (f *Value[T]) Complete(v T) bool {
	return f.settle(v, nil)
}

// Fail settles the future with err and reports whether this call won the
// settle.
func (f *Value[T]) Fail(err error) bool {
	var zero T
	return f.settle(zero, err)
}

func (f *Value[T]) settle(v T, err error) bool {
	f.mu.Lock()
	if f.settled() {
		f.mu.Unlock()
		return false
	}
	f.val, f.err = v, err
	subs := f.subs
	f.subs = nil
	close(f.done)
	f.mu.Unlock()

	// Subscribers run outside the lock, in registration order, on the
	// settling goroutine.
	for _, fn := range subs {
		fn(v, err)
	}
	return true
}

// Done returns a channel that is closed once the future settles.
func (f *Value[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future has settled.
func (f *Value[T]) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled()
}

// settled must be called with mu held.
func (f *Value[T]) settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the settled outcome. Calling it before the future
// settles returns the zero value and errors.ErrPending.
func (f *Value[T]) Result() (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
		var zero T
		return zero, errors.ErrPending
	}
}

// Wait blocks until the future settles or ctx is done, whichever comes
// first. A context error does not settle the future; the read it tracks
// may still complete later.
func (f *Value[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Subscribe registers fn to run exactly once when the future settles,
// with either the value or a non-nil error. If the future has already
// settled, fn runs synchronously before Subscribe returns; otherwise it
// runs on the settling goroutine.
func (f *Value[T]) Subscribe(fn func(value T, err error)) {
	f.mu.Lock()
	if f.settled() {
		v, err := f.val, f.err
		f.mu.Unlock()
		fn(v, err)
		return
	}
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
}
