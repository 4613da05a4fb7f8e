package ripple

// Single-handler attach helpers for the common case of listening to one
// event kind. Each builds a one-slot listener, registers it on the
// query, and returns it as the handle for the query's remove call.

// OnValueChanged subscribes fn to value change events at q.
func OnValueChanged(q Query, fn func(Snapshot)) ValueListener {
	return q.AddValueListener(NewValueListener().OnDataChange(fn).Build())
}

// OnChildAdded subscribes fn to child additions under q.
func OnChildAdded(q Query, fn func(snap Snapshot, previousKey string)) ChildListener {
	return q.AddChildListener(NewChildListener().OnChildAdded(fn).Build())
}

// OnChildChanged subscribes fn to child value changes under q.
func OnChildChanged(q Query, fn func(snap Snapshot, previousKey string)) ChildListener {
	return q.AddChildListener(NewChildListener().OnChildChanged(fn).Build())
}

// OnChildMoved subscribes fn to child ordering changes under q.
func OnChildMoved(q Query, fn func(snap Snapshot, previousKey string)) ChildListener {
	return q.AddChildListener(NewChildListener().OnChildMoved(fn).Build())
}

// OnChildRemoved subscribes fn to child removals under q.
func OnChildRemoved(q Query, fn func(Snapshot)) ChildListener {
	return q.AddChildListener(NewChildListener().OnChildRemoved(fn).Build())
}
