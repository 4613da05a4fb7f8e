package memdb

import (
	"github.com/agentstation/ripple"
)

// Ref is a reference to one location in the database tree. It implements
// ripple.Query; listener registration follows the realtime-database
// convention of delivering current state on attach: value listeners
// receive the present snapshot immediately and child listeners receive
// one OnChildAdded per existing child, in key order, before any change
// events.
type Ref struct {
	db   *DB
	path string
}

// Path returns the normalized location path, always with a leading
// slash.
func (r *Ref) Path() string {
	return "/" + r.path
}

// Child returns a reference to the named child location.
func (r *Ref) Child(key string) *Ref {
	return r.db.Ref(r.path + "/" + key)
}

// Get returns a deep copy of the current value at this location.
func (r *Ref) Get() any {
	return r.db.Get(r.path)
}

// Set replaces the value at this location.
func (r *Ref) Set(value any) error {
	return r.db.Set(r.path, value)
}

// Update applies several child writes at this location as one mutation.
func (r *Ref) Update(children map[string]any) error {
	return r.db.Update(r.path, children)
}

// Delete removes the value at this location.
func (r *Ref) Delete() error {
	return r.db.Delete(r.path)
}

// AddValueListener implements ripple.Query. The listener immediately
// receives the current snapshot, then one OnDataChange per mutation that
// changes the value at this location. On a closed database the listener
// is cancelled instead.
func (r *Ref) AddValueListener(l ripple.ValueListener) ripple.ValueListener {
	r.db.mu.Lock()
	if r.db.closed {
		r.db.mu.Unlock()
		l.OnCancelled(closedError())
		return l
	}
	r.db.valueRegs[r.path] = append(r.db.valueRegs[r.path], l)
	snap := newSnapshot(lastKey(splitPath(r.path)), deepCopy(valueAt(r.db.root, splitPath(r.path))))
	r.db.mu.Unlock()

	l.OnDataChange(snap)
	return l
}

// AddChildListener implements ripple.Query. The listener immediately
// receives OnChildAdded for each existing child in key order, then child
// events for later mutations. On a closed database the listener is
// cancelled instead.
func (r *Ref) AddChildListener(l ripple.ChildListener) ripple.ChildListener {
	r.db.mu.Lock()
	if r.db.closed {
		r.db.mu.Unlock()
		l.OnCancelled(closedError())
		return l
	}
	r.db.childRegs[r.path] = append(r.db.childRegs[r.path], l)
	children := childrenAt(r.db.root, splitPath(r.path))
	keys := sortedKeys(children)
	snaps := make([]ripple.Snapshot, len(keys))
	for i, key := range keys {
		snaps[i] = newSnapshot(key, deepCopy(children[key]))
	}
	r.db.mu.Unlock()

	for i, snap := range snaps {
		prev := ""
		if i > 0 {
			prev = keys[i-1]
		}
		l.OnChildAdded(snap, prev)
	}
	return l
}

// AddSingleValueListener implements ripple.Query. The listener receives
// the current snapshot exactly once; it is never registered, so there is
// nothing to remove afterwards. On a closed database the listener is
// cancelled instead.
func (r *Ref) AddSingleValueListener(l ripple.ValueListener) {
	r.db.mu.Lock()
	if r.db.closed {
		r.db.mu.Unlock()
		l.OnCancelled(closedError())
		return
	}
	snap := newSnapshot(lastKey(splitPath(r.path)), deepCopy(valueAt(r.db.root, splitPath(r.path))))
	r.db.mu.Unlock()

	l.OnDataChange(snap)
}

// RemoveValueListener implements ripple.Query. Removing a listener that
// was never registered is a no-op.
func (r *Ref) RemoveValueListener(l ripple.ValueListener) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	regs := r.db.valueRegs[r.path]
	for i, reg := range regs {
		if reg == l {
			r.db.valueRegs[r.path] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// RemoveChildListener implements ripple.Query. Removing a listener that
// was never registered is a no-op.
func (r *Ref) RemoveChildListener(l ripple.ChildListener) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	regs := r.db.childRegs[r.path]
	for i, reg := range regs {
		if reg == l {
			r.db.childRegs[r.path] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}
