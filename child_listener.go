package ripple

// ChildListenerBuilder assembles a ChildListener from individually
// optional handlers, mirroring ValueListenerBuilder for the five child
// event slots. Last write wins on a slot; builders are not safe for
// concurrent mutation.
type ChildListenerBuilder struct {
	onChildAdded   func(Snapshot, string)
	onChildChanged func(Snapshot, string)
	onChildMoved   func(Snapshot, string)
	onChildRemoved func(Snapshot)
	onCancelled    func(DataError)
}

// NewChildListener returns a builder with no handlers set.
func NewChildListener() *ChildListenerBuilder {
	return &ChildListenerBuilder{}
}

// OnChildAdded sets the handler invoked when a child appears under the
// location.
func (b *ChildListenerBuilder) OnChildAdded(fn func(snap Snapshot, previousKey string)) *ChildListenerBuilder {
	b.onChildAdded = fn
	return b
}

// OnChildChanged sets the handler invoked when an existing child's value
// changes.
func (b *ChildListenerBuilder) OnChildChanged(fn func(snap Snapshot, previousKey string)) *ChildListenerBuilder {
	b.onChildChanged = fn
	return b
}

// OnChildMoved sets the handler invoked when a child's ordering position
// changes.
func (b *ChildListenerBuilder) OnChildMoved(fn func(snap Snapshot, previousKey string)) *ChildListenerBuilder {
	b.onChildMoved = fn
	return b
}

// OnChildRemoved sets the handler invoked when a child disappears.
func (b *ChildListenerBuilder) OnChildRemoved(fn func(snap Snapshot)) *ChildListenerBuilder {
	b.onChildRemoved = fn
	return b
}

// OnCancelled sets the handler invoked when the backend cancels the
// subscription.
func (b *ChildListenerBuilder) OnCancelled(fn func(DataError)) *ChildListenerBuilder {
	b.onCancelled = fn
	return b
}

// Build returns an immutable ChildListener. Events whose slot was never
// set are ignored; handler panics propagate to the dispatch context.
// Build may be called more than once for independent listeners sharing
// the same handler references.
func (b *ChildListenerBuilder) Build() ChildListener {
	return &childListener{
		onChildAdded:   b.onChildAdded,
		onChildChanged: b.onChildChanged,
		onChildMoved:   b.onChildMoved,
		onChildRemoved: b.onChildRemoved,
		onCancelled:    b.onCancelled,
	}
}

type childListener struct {
	onChildAdded   func(Snapshot, string)
	onChildChanged func(Snapshot, string)
	onChildMoved   func(Snapshot, string)
	onChildRemoved func(Snapshot)
	onCancelled    func(DataError)
}

func (l *childListener) OnChildAdded(snap Snapshot, previousKey string) {
	if l.onChildAdded != nil {
		l.onChildAdded(snap, previousKey)
	}
}

func (l *childListener) OnChildChanged(snap Snapshot, previousKey string) {
	if l.onChildChanged != nil {
		l.onChildChanged(snap, previousKey)
	}
}

func (l *childListener) OnChildMoved(snap Snapshot, previousKey string) {
	if l.onChildMoved != nil {
		l.onChildMoved(snap, previousKey)
	}
}

func (l *childListener) OnChildRemoved(snap Snapshot) {
	if l.onChildRemoved != nil {
		l.onChildRemoved(snap)
	}
}

func (l *childListener) OnCancelled(derr DataError) {
	if l.onCancelled != nil {
		l.onCancelled(derr)
	}
}
