package ripple

import (
	"github.com/agentstation/ripple/pkg/errors"
)

// Handlers declares listener slots by event name, the declarative
// alternative to chained setters. Keys must be the Handler* constants
// for the listener family being built; anything else fails loudly so a
// caller typo never turns into silently dropped events.
type Handlers map[string]any

// Handler slot names accepted by NewValueListenerFrom and
// NewChildListenerFrom.
const (
	HandlerDataChange   = "onDataChange"
	HandlerCancelled    = "onCancelled"
	HandlerChildAdded   = "onChildAdded"
	HandlerChildChanged = "onChildChanged"
	HandlerChildMoved   = "onChildMoved"
	HandlerChildRemoved = "onChildRemoved"
)

// NewValueListenerFrom returns a ValueListenerBuilder pre-populated from
// h. Valid slots are HandlerDataChange (func(Snapshot)) and
// HandlerCancelled (func(DataError)). An unknown name yields an
// UnknownHandlerError and a mismatched function type a HandlerTypeError;
// in both cases no builder is returned.
func NewValueListenerFrom(h Handlers) (*ValueListenerBuilder, error) {
	b := NewValueListener()
	for name, fn := range h {
		switch name {
		case HandlerDataChange:
			f, ok := fn.(func(Snapshot))
			if !ok {
				return nil, errors.NewHandlerTypeError(name, "func(ripple.Snapshot)", fn)
			}
			b.OnDataChange(f)
		case HandlerCancelled:
			f, ok := fn.(func(DataError))
			if !ok {
				return nil, errors.NewHandlerTypeError(name, "func(ripple.DataError)", fn)
			}
			b.OnCancelled(f)
		default:
			return nil, errors.NewUnknownHandlerError(name, "value")
		}
	}
	return b, nil
}

// NewChildListenerFrom returns a ChildListenerBuilder pre-populated from
// h. Valid slots are HandlerChildAdded, HandlerChildChanged and
// HandlerChildMoved (func(Snapshot, string)), HandlerChildRemoved
// (func(Snapshot)) and HandlerCancelled (func(DataError)). Unknown names
// and mismatched function types fail the same way as
// NewValueListenerFrom.
func NewChildListenerFrom(h Handlers) (*ChildListenerBuilder, error) {
	b := NewChildListener()
	for name, fn := range h {
		switch name {
		case HandlerChildAdded:
			f, ok := fn.(func(Snapshot, string))
			if !ok {
				return nil, errors.NewHandlerTypeError(name, "func(ripple.Snapshot, string)", fn)
			}
			b.OnChildAdded(f)
		case HandlerChildChanged:
			f, ok := fn.(func(Snapshot, string))
			if !ok {
				return nil, errors.NewHandlerTypeError(name, "func(ripple.Snapshot, string)", fn)
			}
			b.OnChildChanged(f)
		case HandlerChildMoved:
			f, ok := fn.(func(Snapshot, string))
			if !ok {
				return nil, errors.NewHandlerTypeError(name, "func(ripple.Snapshot, string)", fn)
			}
			b.OnChildMoved(f)
		case HandlerChildRemoved:
			f, ok := fn.(func(Snapshot))
			if !ok {
				return nil, errors.NewHandlerTypeError(name, "func(ripple.Snapshot)", fn)
			}
			b.OnChildRemoved(f)
		case HandlerCancelled:
			f, ok := fn.(func(DataError))
			if !ok {
				return nil, errors.NewHandlerTypeError(name, "func(ripple.DataError)", fn)
			}
			b.OnCancelled(f)
		default:
			return nil, errors.NewUnknownHandlerError(name, "child")
		}
	}
	return b, nil
}
