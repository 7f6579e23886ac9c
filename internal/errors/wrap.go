package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// maxStackDepth bounds captured stacks.
const maxStackDepth = 32

// StackFrame is one caller in a captured stack.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s\n\t%s:%d", f.Function, f.File, f.Line)
}

// ContextError adds a message to a cause.
type ContextError struct {
	Message string
	Cause   error
}

func (e *ContextError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *ContextError) Unwrap() error { return e.Cause }

// WithContext prefixes err with message. A nil err stays nil.
func WithContext(err error, message string) error {
	if err == nil {
		return nil
	}
	return &ContextError{Message: message, Cause: err}
}

// WithContextf is WithContext with a format string.
func WithContextf(err error, format string, args ...interface{}) error {
	return WithContext(err, fmt.Sprintf(format, args...))
}

// WithStack records the caller's stack on err. Errors that already carry
// a stack are returned unchanged. The message is not repeated.
func WithStack(err error) error {
	if err == nil || len(GetStack(err)) > 0 {
		return err
	}
	return &stackError{cause: err, stack: captureStack(2)}
}

// stackError carries a stack without changing the message.
type stackError struct {
	cause error
	stack []StackFrame
}

func (e *stackError) Error() string { return e.cause.Error() }
func (e *stackError) Unwrap() error { return e.cause }

// captureStack records callers above skip frames, leaving out the Go
// runtime and the test harness.
func captureStack(skip int) []StackFrame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var stack []StackFrame
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && !strings.HasPrefix(frame.Function, "testing.") {
			stack = append(stack, StackFrame{Function: frame.Function, File: frame.File, Line: frame.Line})
		}
		if !more {
			return stack
		}
	}
}

// GetStack returns the first stack recorded in err's chain.
func GetStack(err error) []StackFrame {
	for ; err != nil; err = Unwrap(err) {
		if e, ok := err.(*stackError); ok {
			return e.stack
		}
	}
	return nil
}

// Chain lists the messages of err and every error it wraps, outermost
// first. Wrappers that add nothing to the message are skipped.
func Chain(err error) []string {
	var chain []string
	for ; err != nil; err = Unwrap(err) {
		msg := err.Error()
		if len(chain) > 0 && chain[len(chain)-1] == msg {
			continue
		}
		chain = append(chain, msg)
	}
	return chain
}

// RootCause returns the innermost error of the chain.
func RootCause(err error) error {
	for {
		next := Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// Unwrap returns the error err wraps, or nil.
func Unwrap(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	return nil
}

// FormatDebugError prints err with its chain, category and stack for
// --debug output.
func FormatDebugError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %v\n", err)

	if chain := Chain(err); len(chain) > 1 {
		sb.WriteString("\nError chain:\n")
		for i, msg := range chain {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, msg)
		}
	}

	fmt.Fprintf(&sb, "\nCategory: %s\n", Classify(err))

	if frames := GetStack(err); len(frames) > 0 {
		sb.WriteString("\nStack trace:\n")
		for i, f := range frames {
			fmt.Fprintf(&sb, "  %d. %s\n       at %s:%d\n", i+1, f.Function, f.File, f.Line)
		}
	}
	return sb.String()
}
