package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/weekly/internal/errors"
)

// ParseError describes input that could not be parsed, with examples of
// what is accepted.
type ParseError struct {
	Input    string
	Field    string
	Message  string
	Examples []string
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// FormatWithExamples returns the error message followed by examples.
func (e *ParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ToUserError converts the parse error for the CLI error printer. The
// sentinel cause is kept so errors.KindOf still works.
func (e *ParseError) ToUserError() *errors.UserError {
	ue := errors.Invalid(e.Cause, e.Field, e.Input)
	if len(e.Examples) > 0 {
		ue.Suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}
	return ue
}

// DayExamples lists accepted day formats.
var DayExamples = []string{
	"monday",
	"fri",
	"tomorrow",
	"next friday",
	"2026-10-23",
	"0..6",
	"segunda",
}

// PriorityExamples lists accepted priority formats.
var PriorityExamples = []string{
	"1",
	"high",
	"medium",
	"low",
	"3",
}

// NewDayError creates a day parse error with standard examples.
func NewDayError(input, message string) *ParseError {
	return &ParseError{
		Input:    input,
		Field:    "day",
		Message:  message,
		Examples: DayExamples,
		Cause:    errors.ErrInvalidDay,
	}
}

// NewPriorityError creates a priority parse error with standard examples.
func NewPriorityError(input string) *ParseError {
	return &ParseError{
		Input:    input,
		Field:    "priority",
		Message:  "expected 1, 2, 3 or high, medium, low",
		Examples: PriorityExamples,
		Cause:    errors.ErrInvalidPriority,
	}
}
