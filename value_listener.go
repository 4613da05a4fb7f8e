package ripple

// ValueListenerBuilder assembles a ValueListener from individually
// optional handlers. Setters return the builder for chaining; setting a
// slot twice silently replaces the earlier handler. Builders are not
// safe for concurrent mutation.
type ValueListenerBuilder struct {
	onDataChange func(Snapshot)
	onCancelled  func(DataError)
}

// NewValueListener returns a builder with no handlers set.
func NewValueListener() *ValueListenerBuilder {
	return &ValueListenerBuilder{}
}

// OnDataChange sets the handler invoked when the value at the location
// changes.
func (b *ValueListenerBuilder) OnDataChange(fn func(Snapshot)) *ValueListenerBuilder {
	b.onDataChange = fn
	return b
}

// OnCancelled sets the handler invoked when the backend cancels the
// subscription.
func (b *ValueListenerBuilder) OnCancelled(fn func(DataError)) *ValueListenerBuilder {
	b.onCancelled = fn
	return b
}

// Build returns an immutable ValueListener. Events whose slot was never
// set are ignored. Build may be called more than once; each listener
// shares the handler references but no other state, so the builder can
// keep being reconfigured afterwards.
//
// Building with no handlers set is legal and yields a listener that
// ignores everything. Panics raised inside a handler are not recovered
// here; they propagate to whatever dispatched the event.
func (b *ValueListenerBuilder) Build() ValueListener {
	return &valueListener{
		onDataChange: b.onDataChange,
		onCancelled:  b.onCancelled,
	}
}

// valueListener is the built form. Its handler fields never change after
// construction, so it may be dispatched to concurrently without locking.
type valueListener struct {
	onDataChange func(Snapshot)
	onCancelled  func(DataError)
}

func (l *valueListener) OnDataChange(snap Snapshot) {
	if l.onDataChange != nil {
		l.onDataChange(snap)
	}
}

func (l *valueListener) OnCancelled(derr DataError) {
	if l.onCancelled != nil {
		l.onCancelled(derr)
	}
}
