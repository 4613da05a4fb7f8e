package ripple

import (
	"github.com/agentstation/ripple/pkg/future"
)

// ReadValue reads the value at q exactly once. The returned future
// settles when the backend delivers the snapshot or reports a
// cancellation, and never settles more than once. There is no way to
// cancel the read itself; callers who stop caring can abandon the future
// or bound their wait with future.Value.Wait and a context.
func ReadValue(q Query) *future.Value[any] {
	f := future.New[any]()
	q.AddSingleValueListener(NewValueListener().
		OnDataChange(func(snap Snapshot) { f.Complete(snap.Value()) }).
		OnCancelled(func(derr DataError) { f.Fail(derr.Err()) }).
		Build())
	return f
}

// ReadValueFunc is the callback form of ReadValue. fn is invoked exactly
// once, with either the raw value and a nil error or the zero value and
// a non-nil error, on whatever goroutine the backend delivers on.
func ReadValueFunc(q Query, fn func(value any, err error)) {
	ReadValue(q).Subscribe(fn)
}

// ReadValueAs reads the value at q exactly once and decodes it into T
// using the snapshot's own marshaling rules. A decode failure rejects
// the future through the same path as a backend cancellation.
func ReadValueAs[T any](q Query) *future.Value[T] {
	f := future.New[T]()
	q.AddSingleValueListener(NewValueListener().
		OnDataChange(func(snap Snapshot) {
			var v T
			if err := snap.ValueAs(&v); err != nil {
				f.Fail(err)
				return
			}
			f.Complete(v)
		}).
		OnCancelled(func(derr DataError) { f.Fail(derr.Err()) }).
		Build())
	return f
}

// ReadValueAsFunc is the callback form of ReadValueAs, invoked exactly
// once with exactly one of the value or the error set.
func ReadValueAsFunc[T any](q Query, fn func(value T, err error)) {
	ReadValueAs[T](q).Subscribe(fn)
}
