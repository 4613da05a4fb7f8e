// Package errors provides custom error types for the ripple system.
// These errors enable better error handling, programmatic error
// checking, and improved debugging throughout the library and the
// backends that implement its query boundary.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the ripple system
var (
	// ErrUnknownHandler indicates a declarative handler name that no
	// listener slot matches
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrInvalidHandler indicates a handler whose function type does not
	// match its slot
	ErrInvalidHandler = errors.New("invalid handler")

	// ErrCancelled indicates the backend cancelled a subscription or
	// one-time read
	ErrCancelled = errors.New("subscription cancelled")

	// ErrDecode indicates a snapshot value could not be decoded into the
	// requested type
	ErrDecode = errors.New("decode failed")

	// ErrNotFound indicates that no value exists at a location
	ErrNotFound = errors.New("not found")

	// ErrInvalidPath indicates a malformed location path
	ErrInvalidPath = errors.New("invalid path")

	// ErrDatabaseClosed indicates an operation on a closed database
	ErrDatabaseClosed = errors.New("database closed")

	// ErrPending indicates a future's result was requested before it
	// settled
	ErrPending = errors.New("future not settled")
)

// UnknownHandlerError reports a declarative handler name that does not
// belong to the listener family being configured.
type UnknownHandlerError struct {
	Name   string // handler name as written by the caller
	Family string // listener family, "value" or "child"
}

// Error implements the error interface
func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("unknown handler %q for %s listener", e.Name, e.Family)
}

// Is implements errors.Is support
func (e *UnknownHandlerError) Is(target error) bool {
	return target == ErrUnknownHandler
}

// NewUnknownHandlerError creates a new UnknownHandlerError
func NewUnknownHandlerError(name, family string) *UnknownHandlerError {
	return &UnknownHandlerError{Name: name, Family: family}
}

// HandlerTypeError reports a declarative handler whose function type
// does not match the slot it was assigned to.
type HandlerTypeError struct {
	Name string // handler slot name
	Want string // expected function type
	Got  any    // value the caller supplied
}

// Error implements the error interface
func (e *HandlerTypeError) Error() string {
	return fmt.Sprintf("handler %q must be %s, got %T", e.Name, e.Want, e.Got)
}

// Is implements errors.Is support
func (e *HandlerTypeError) Is(target error) bool {
	return target == ErrInvalidHandler
}

// NewHandlerTypeError creates a new HandlerTypeError
func NewHandlerTypeError(name, want string, got any) *HandlerTypeError {
	return &HandlerTypeError{Name: name, Want: want, Got: got}
}

// CancelledError is the error form of a backend cancellation, carrying
// the backend's code and message.
type CancelledError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *CancelledError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("cancelled (code %d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("cancelled: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *CancelledError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// NewCancelledError creates a new CancelledError
func NewCancelledError(code int, message string, err error) *CancelledError {
	return &CancelledError{Code: code, Message: message, Err: err}
}

// DecodeError reports a snapshot value that could not be converted to
// the caller's requested type.
type DecodeError struct {
	Key    string // snapshot key, may be empty at the root
	Target string // requested type
	Err    error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("decoding value at %q into %s: %v", e.Key, e.Target, e.Err)
	}
	return fmt.Sprintf("decoding value into %s: %v", e.Target, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(key, target string, err error) *DecodeError {
	return &DecodeError{Key: key, Target: target, Err: err}
}

// PathError reports a failed operation on a database location.
type PathError struct {
	Op   string // operation, e.g. "set", "update", "delete"
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new PathError
func NewPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}

// IsUnknownHandler checks if an error indicates an unknown handler name
func IsUnknownHandler(err error) bool {
	return errors.Is(err, ErrUnknownHandler)
}

// IsInvalidHandler checks if an error indicates a mistyped handler
func IsInvalidHandler(err error) bool {
	return errors.Is(err, ErrInvalidHandler)
}

// IsCancelled checks if an error came from a backend cancellation
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsDecode checks if an error came from a failed value coercion
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsNotFound checks if an error indicates a missing value
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClosed checks if an error indicates a closed database
func IsClosed(err error) bool {
	return errors.Is(err, ErrDatabaseClosed)
}

// IsPending checks if an error indicates an unsettled future
func IsPending(err error) bool {
	return errors.Is(err, ErrPending)
}
