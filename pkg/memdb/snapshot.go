package memdb

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/agentstation/ripple/pkg/errors"
)

// snapshot is an immutable view of one location. Its value is deep-copied
// at dispatch time, so handlers can hold or mutate it freely.
type snapshot struct {
	key string
	val any
}

func newSnapshot(key string, val any) *snapshot {
	return &snapshot{key: key, val: val}
}

// Key implements ripple.Snapshot.
func (s *snapshot) Key() string {
	return s.key
}

// Value implements ripple.Snapshot.
func (s *snapshot) Value() any {
	return s.val
}

// ValueAs implements ripple.Snapshot. Decoding is weakly typed: "42"
// converts to int and map trees decode into structs via `yaml` field
// tags or field names.
func (s *snapshot) ValueAs(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "yaml",
	})
	if err != nil {
		return errors.NewDecodeError(s.key, fmt.Sprintf("%T", target), err)
	}
	if err := dec.Decode(s.val); err != nil {
		return errors.NewDecodeError(s.key, fmt.Sprintf("%T", target), err)
	}
	return nil
}

// Error codes reported through ripple.DataError.
const (
	// CodeClosed is reported when the database is closed while listeners
	// are attached, or on registration against a closed database.
	CodeClosed = 1
)

// dataError implements ripple.DataError.
type dataError struct {
	code    int
	message string
	err     error
}

func closedError() *dataError {
	return &dataError{
		code:    CodeClosed,
		message: "database closed",
		err:     errors.ErrDatabaseClosed,
	}
}

// Code implements ripple.DataError.
func (e *dataError) Code() int {
	return e.code
}

// Message implements ripple.DataError.
func (e *dataError) Message() string {
	return e.message
}

// Err implements ripple.DataError.
func (e *dataError) Err() error {
	return errors.NewCancelledError(e.code, e.message, e.err)
}
