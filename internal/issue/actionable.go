package issue

import (
	"strings"
)

// ActionableError is an error the user can fix, with hints on how.
type ActionableError struct {
	// Operation describes what was being attempted (e.g., "create project").
	Operation string

	// Suggestions are shown below the error, one per line.
	Suggestions []string

	// Cause is the underlying error (optional).
	Cause error
}

// NewActionable creates an ActionableError for operation.
func NewActionable(operation string, cause error, suggestions ...string) *ActionableError {
	return &ActionableError{
		Operation:   operation,
		Cause:       cause,
		Suggestions: suggestions,
	}
}

// Error returns the one-line form: "failed to <operation>: <cause>".
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the error followed by its suggestions:
//
//	failed to <operation>: <cause>
//
//	  • <suggestion 1>
//	  • <suggestion 2>
func (e *ActionableError) Format() string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}
	return msg.String()
}
