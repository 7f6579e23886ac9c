// Package errors splits failures into user errors, which the person at the
// keyboard can fix, and system errors coming from storage or the machine.
// Validation failures carry a sentinel so callers can match them with Is.
package errors

import (
	"errors"
	"fmt"
)

// Raised when a task cannot be created.
var (
	ErrEmptyName       = errors.New("task name is empty")
	ErrMissingDay      = errors.New("no day selected")
	ErrDuplicateName   = errors.New("task already exists")
	ErrInvalidDay      = errors.New("invalid day")
	ErrInvalidPriority = errors.New("invalid priority")
)

var (
	ErrCorruptData         = errors.New("stored task data is corrupted")
	ErrUnsupportedVersion  = errors.New("stored task data has an unsupported version")
	ErrNothingToUndo       = errors.New("nothing to undo")
	ErrDiskFull            = errors.New("disk full")
	ErrLockHeld            = errors.New("database locked by another process")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUnknownBackend      = errors.New("unknown storage backend")
	ErrConfirmationMissing = errors.New("confirmation required")
)

// Kind names a validation failure in machine-readable output.
type Kind string

const (
	KindNone          Kind = ""
	KindEmptyName     Kind = "empty_name"
	KindMissingDay    Kind = "missing_day"
	KindDuplicateName Kind = "duplicate_name"
	KindInvalidDay    Kind = "invalid_day"
	KindInvalidPrio   Kind = "invalid_priority"
)

var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrEmptyName, KindEmptyName},
	{ErrMissingDay, KindMissingDay},
	{ErrDuplicateName, KindDuplicateName},
	{ErrInvalidDay, KindInvalidDay},
	{ErrInvalidPriority, KindInvalidPrio},
}

// KindOf returns the validation kind of err, or KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindNone
}

// UserError is a failure caused by input. Field and Value, when both set,
// are echoed back in the message.
type UserError struct {
	Message    string
	Suggestion string
	Field      string
	Value      string
	Cause      error
}

func (e *UserError) Error() string {
	if e.Field == "" || e.Value == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: '%s'", e.Message, e.Value)
}

func (e *UserError) Unwrap() error { return e.Cause }

func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Field: field, Value: value}
}

// Invalid reports a validation sentinel against field. The message is the
// sentinel's text and the suggestion comes from the suggestion table.
func Invalid(cause error, field, value string) *UserError {
	return &UserError{
		Message:    cause.Error(),
		Suggestion: suggestionFor(cause),
		Field:      field,
		Value:      value,
		Cause:      cause,
	}
}

// SystemError is a failure the user cannot fix by changing input.
type SystemError struct {
	Message string
	Cause   error
	Op      string
}

func (e *SystemError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Cause == nil || e.Cause.Error() == e.Message {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *SystemError) Unwrap() error { return e.Cause }

func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause}
}

func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause, Op: op}
}

func asType[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}

func IsUserError(err error) bool {
	_, ok := asType[*UserError](err)
	return ok
}

func IsSystemError(err error) bool {
	_, ok := asType[*SystemError](err)
	return ok
}

// AsUserError finds the first UserError in err's chain.
func AsUserError(err error) (*UserError, bool) { return asType[*UserError](err) }

// AsSystemError finds the first SystemError in err's chain.
func AsSystemError(err error) (*SystemError, bool) { return asType[*SystemError](err) }

// Is, As and New mirror the standard library so callers need one import.
func Is(err, target error) bool     { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }
func New(text string) error         { return errors.New(text) }

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
