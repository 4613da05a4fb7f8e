// Package ripple builds conforming event listeners for realtime
// data-change notification backends from sparse handler declarations,
// and bridges the backend's one-shot read primitive into futures and
// callbacks.
//
// Backends expose locations in their data tree as a Query. A caller that
// only cares about one or two event kinds declares just those handlers;
// the builders produce listener values that satisfy the backend's full
// listener contract and silently ignore everything else:
//
//	listener := ripple.NewChildListener().
//		OnChildAdded(func(snap ripple.Snapshot, prev string) {
//			// ...
//		}).
//		Build()
//	query.AddChildListener(listener)
//
//	// ... later ...
//	query.RemoveChildListener(listener)
//
// The listener value itself is the deregistration handle; its lifetime
// is the caller's responsibility. This package never removes listeners
// on its own, never retries, and never logs on the caller's behalf;
// every failure the backend reports reaches exactly one caller-visible
// error path.
package ripple

// Query is a location or filtered view in a realtime backend's data
// tree, the subject of subscriptions and one-time reads. Implementations
// are provided by the backend (pkg/memdb ships an embeddable one); this
// package only consumes them.
type Query interface {
	// AddValueListener subscribes l to value change events at this
	// location and returns it as the handle for RemoveValueListener.
	AddValueListener(l ValueListener) ValueListener

	// AddChildListener subscribes l to child events at this location
	// and returns it as the handle for RemoveChildListener.
	AddChildListener(l ChildListener) ChildListener

	// AddSingleValueListener subscribes l for exactly one value event.
	// The backend deregisters l itself after the first delivery.
	AddSingleValueListener(l ValueListener)

	// RemoveValueListener detaches a listener previously registered
	// with AddValueListener.
	RemoveValueListener(l ValueListener)

	// RemoveChildListener detaches a listener previously registered
	// with AddChildListener.
	RemoveChildListener(l ChildListener)
}

// Snapshot is the state of a query location at a point in time.
type Snapshot interface {
	// Key is the last path segment of the snapshot's location.
	Key() string

	// Value returns the raw value at the location, or nil if no value
	// exists there.
	Value() any

	// ValueAs decodes the value into target, which must be a non-nil
	// pointer. The backend's own marshaling rules decide what is
	// convertible.
	ValueAs(target any) error
}

// DataError describes a subscription or read failure reported by the
// backend.
type DataError interface {
	// Code is the backend's numeric error code.
	Code() int

	// Message is a human-readable description of the failure.
	Message() string

	// Err converts the failure to an error for return and rejection
	// paths.
	Err() error
}

// ValueListener is the complete contract a backend dispatches value
// events on. Every method must be present for registration to be
// accepted; use ValueListenerBuilder to satisfy it from a partial set
// of handlers.
type ValueListener interface {
	OnDataChange(snap Snapshot)
	OnCancelled(derr DataError)
}

// ChildListener is the complete contract for child events at a
// location. previousKey is the key ordered immediately before the
// child, or "" when the child is first.
type ChildListener interface {
	OnChildAdded(snap Snapshot, previousKey string)
	OnChildChanged(snap Snapshot, previousKey string)
	OnChildMoved(snap Snapshot, previousKey string)
	OnChildRemoved(snap Snapshot)
	OnCancelled(derr DataError)
}
