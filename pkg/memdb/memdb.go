// Package memdb is an embeddable in-memory realtime database that
// implements the ripple.Query boundary. It keeps a tree of values
// addressed by slash paths and notifies registered listeners on every
// mutation, which makes it a reference backend for tests, examples, and
// tools that want realtime semantics without a network transport.
//
// Event delivery is synchronous: a mutation dispatches to every matching
// listener before the mutating call returns, with deep-copied snapshots
// so handlers can never alias live tree state. Dispatch order is
// deterministic: locations in lexicographic path order, and listeners on
// the same location in registration order.
// Handlers may mutate the database re-entrantly; no lock is held while
// they run. Because children are ordered lexicographically by key, a
// child's ordering position never changes and OnChildMoved is never
// emitted by this backend.
package memdb

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/ripple"
	"github.com/agentstation/ripple/pkg/errors"
	"github.com/agentstation/ripple/pkg/logging"
)

// DB is an in-memory value tree with realtime change notification.
// All methods are safe for concurrent use.
type DB struct {
	mu     sync.Mutex
	root   any
	closed bool
	logger *zerolog.Logger

	valueRegs map[string][]ripple.ValueListener
	childRegs map[string][]ripple.ChildListener
}

// Option configures a DB instance.
type Option func(*DB) error

// WithLogger sets the logger used for dispatch tracing. Defaults to the
// package logging default.
func WithLogger(logger *zerolog.Logger) Option {
	return func(db *DB) error {
		if logger == nil {
			return errors.New("memdb: nil logger")
		}
		db.logger = logger
		return nil
	}
}

// WithSeed sets the initial value tree. The seed is deep-copied.
func WithSeed(root any) Option {
	return func(db *DB) error {
		db.root = deepCopy(root)
		return nil
	}
}

// New creates an empty database with the given options.
func New(opts ...Option) (*DB, error) {
	db := &DB{
		logger:    logging.Default(),
		valueRegs: make(map[string][]ripple.ValueListener),
		childRegs: make(map[string][]ripple.ChildListener),
	}
	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Ref returns a reference to the location at path, which is a
// slash-separated walk from the root ("/", "/rooms/lobby", ...).
// Empty segments are ignored, so "rooms/lobby" and "/rooms/lobby/" name
// the same location. The reference implements ripple.Query.
func (db *DB) Ref(path string) *Ref {
	return &Ref{db: db, path: normalize(path)}
}

// Get returns a deep copy of the value at path, or nil if none exists.
func (db *DB) Get(path string) any {
	db.mu.Lock()
	defer db.mu.Unlock()
	return deepCopy(valueAt(db.root, splitPath(normalize(path))))
}

// Set replaces the value at path, creating intermediate nodes as needed.
// Setting nil removes the value.
func (db *DB) Set(path string, value any) error {
	path = normalize(path)
	return db.apply("set", path, func(root any) (any, error) {
		return setAt(root, splitPath(path), deepCopy(value)), nil
	})
}

// Update applies several child writes under path as one mutation; keys
// must be plain names, not paths.
func (db *DB) Update(path string, children map[string]any) error {
	path = normalize(path)
	return db.apply("update", path, func(root any) (any, error) {
		for key, value := range children {
			if key == "" || strings.Contains(key, "/") {
				return nil, errors.NewPathError("update", path+"/"+key, errors.ErrInvalidPath)
			}
			root = setAt(root, append(splitPath(path), key), deepCopy(value))
		}
		return root, nil
	})
}

// Delete removes the value at path. Deleting a missing path is a no-op.
func (db *DB) Delete(path string) error {
	path = normalize(path)
	return db.apply("delete", path, func(root any) (any, error) {
		return setAt(root, splitPath(path), nil), nil
	})
}

// Close cancels every registered listener with ErrDatabaseClosed and
// rejects all further mutations and registrations. Close is idempotent.
func (db *DB) Close() error {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return nil
	}
	db.closed = true
	valueRegs := db.valueRegs
	childRegs := db.childRegs
	db.valueRegs = make(map[string][]ripple.ValueListener)
	db.childRegs = make(map[string][]ripple.ChildListener)
	db.mu.Unlock()

	derr := closedError()
	for _, path := range sortedKeys(valueRegs) {
		for _, l := range valueRegs[path] {
			db.logger.Debug().Str("path", path).Msg("cancelling value listener")
			l.OnCancelled(derr)
		}
	}
	for _, path := range sortedKeys(childRegs) {
		for _, l := range childRegs[path] {
			db.logger.Debug().Str("path", path).Msg("cancelling child listener")
			l.OnCancelled(derr)
		}
	}
	return nil
}

// apply runs one mutation and dispatches the resulting events. The tree
// lock is released before any handler runs.
func (db *DB) apply(op, path string, mutate func(root any) (any, error)) error {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return errors.NewPathError(op, "/"+path, errors.ErrDatabaseClosed)
	}
	old := db.root
	next, err := mutate(deepCopy(db.root))
	if err != nil {
		db.mu.Unlock()
		return err
	}
	db.root = next
	events := db.collectEvents(old, next)
	db.mu.Unlock()

	db.logger.Debug().
		Str("op", op).
		Str("path", "/"+path).
		Int("events", len(events)).
		Msg("mutation applied")
	for _, dispatch := range events {
		dispatch()
	}
	return nil
}

// collectEvents diffs the old and new trees against every registration.
// Must be called with db.mu held; the returned thunks are run after it
// is released. Registrations are visited in lexicographic path order so
// dispatch order never depends on map iteration.
func (db *DB) collectEvents(old, next any) []func() {
	var events []func()

	for _, path := range sortedKeys(db.valueRegs) {
		segs := splitPath(path)
		before := valueAt(old, segs)
		after := valueAt(next, segs)
		if reflect.DeepEqual(before, after) {
			continue
		}
		snap := newSnapshot(lastKey(segs), deepCopy(after))
		for _, l := range db.valueRegs[path] {
			listener := l
			events = append(events, func() { listener.OnDataChange(snap) })
		}
	}

	for _, path := range sortedKeys(db.childRegs) {
		segs := splitPath(path)
		before := childrenAt(old, segs)
		after := childrenAt(next, segs)
		diffs := diffChildren(before, after)
		if len(diffs) == 0 {
			continue
		}
		for _, l := range db.childRegs[path] {
			listener := l
			for _, d := range diffs {
				dispatch := d
				events = append(events, func() { dispatch(listener) })
			}
		}
	}

	return events
}

// childDispatch delivers one child event to one listener.
type childDispatch func(ripple.ChildListener)

// diffChildren compares two child maps and produces dispatch thunks in
// removed-then-added-then-changed order, each group sorted by key.
func diffChildren(before, after map[string]any) []childDispatch {
	var diffs []childDispatch

	for _, key := range sortedKeys(before) {
		if _, ok := after[key]; !ok {
			snap := newSnapshot(key, deepCopy(before[key]))
			diffs = append(diffs, func(l ripple.ChildListener) { l.OnChildRemoved(snap) })
		}
	}

	afterKeys := sortedKeys(after)
	for i, key := range afterKeys {
		prev := ""
		if i > 0 {
			prev = afterKeys[i-1]
		}
		snap := newSnapshot(key, deepCopy(after[key]))
		previousKey := prev
		if _, ok := before[key]; !ok {
			diffs = append(diffs, func(l ripple.ChildListener) { l.OnChildAdded(snap, previousKey) })
		} else if !reflect.DeepEqual(before[key], after[key]) {
			diffs = append(diffs, func(l ripple.ChildListener) { l.OnChildChanged(snap, previousKey) })
		}
	}

	return diffs
}

// normalize trims surrounding slashes and collapses empty segments.
func normalize(path string) string {
	segs := splitPath(path)
	return strings.Join(segs, "/")
}

// splitPath returns the non-empty segments of a slash path; nil for the
// root.
func splitPath(path string) []string {
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// lastKey is the snapshot key for a location: the final segment, or ""
// at the root.
func lastKey(segs []string) string {
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// valueAt walks the tree to the value at segs, or nil if the walk leaves
// the tree.
func valueAt(node any, segs []string) any {
	for _, seg := range segs {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = m[seg]
	}
	return node
}

// childrenAt returns the child map at segs, or nil if the location holds
// no map.
func childrenAt(node any, segs []string) map[string]any {
	m, _ := valueAt(node, segs).(map[string]any)
	return m
}

// setAt writes value at segs, creating intermediate maps and pruning
// branches emptied by a nil write. It returns the new subtree for node.
func setAt(node any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}

	m, ok := node.(map[string]any)
	if !ok {
		if value == nil {
			return node // nothing to remove under a scalar
		}
		m = make(map[string]any)
	}

	child := setAt(m[segs[0]], segs[1:], value)
	if child == nil {
		delete(m, segs[0])
		if len(m) == 0 {
			return nil
		}
		return m
	}
	m[segs[0]] = child
	return m
}

// sortedKeys returns m's keys in lexicographic order, the canonical
// ordering for both children and listener locations.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// deepCopy clones the tree forms this store traffics in: maps, slices,
// and scalar leaves. Scalars are returned as-is.
func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, child := range val {
			m[k] = deepCopy(child)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, child := range val {
			s[i] = deepCopy(child)
		}
		return s
	default:
		return v
	}
}
