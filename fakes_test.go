package ripple

import (
	"fmt"
	"reflect"

	"github.com/agentstation/ripple/pkg/errors"
)

// fakeSnapshot is a minimal Snapshot for driving listeners directly.
type fakeSnapshot struct {
	key       string
	val       any
	decodeErr error
}

func (s *fakeSnapshot) Key() string {
	return s.key
}

func (s *fakeSnapshot) Value() any {
	return s.val
}

// ValueAs assigns the raw value when it is assignable to the target's
// element type, mimicking a backend marshaling facility.
func (s *fakeSnapshot) ValueAs(target any) error {
	if s.decodeErr != nil {
		return s.decodeErr
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("target must be a non-nil pointer")
	}
	val := reflect.ValueOf(s.val)
	if !val.IsValid() || !val.Type().AssignableTo(rv.Elem().Type()) {
		return errors.NewDecodeError(s.key, fmt.Sprintf("%T", target), errors.ErrDecode)
	}
	rv.Elem().Set(val)
	return nil
}

// fakeDataError is a minimal DataError.
type fakeDataError struct {
	code    int
	message string
}

func (e *fakeDataError) Code() int {
	return e.code
}

func (e *fakeDataError) Message() string {
	return e.message
}

func (e *fakeDataError) Err() error {
	return errors.NewCancelledError(e.code, e.message, nil)
}

// fakeQuery records listener registrations and lets tests drive the
// backend's side of the contract.
type fakeQuery struct {
	valueListeners  []ValueListener
	childListeners  []ChildListener
	singleListeners []ValueListener
	removedValue    []ValueListener
	removedChild    []ChildListener
}

func (q *fakeQuery) AddValueListener(l ValueListener) ValueListener {
	q.valueListeners = append(q.valueListeners, l)
	return l
}

func (q *fakeQuery) AddChildListener(l ChildListener) ChildListener {
	q.childListeners = append(q.childListeners, l)
	return l
}

func (q *fakeQuery) AddSingleValueListener(l ValueListener) {
	q.singleListeners = append(q.singleListeners, l)
}

func (q *fakeQuery) RemoveValueListener(l ValueListener) {
	q.removedValue = append(q.removedValue, l)
}

func (q *fakeQuery) RemoveChildListener(l ChildListener) {
	q.removedChild = append(q.removedChild, l)
}
