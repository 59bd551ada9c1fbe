package issue

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the phase that produced it.
type Kind string

const (
	// KindValidation is a bad project name. Nothing has been created yet.
	KindValidation Kind = "VALIDATION"
	// KindPreflight is a conflicting target directory or a misconfigured shell.
	KindPreflight Kind = "PREFLIGHT"
	// KindNetwork is a failed registry or DNS lookup. Callers degrade
	// instead of failing.
	KindNetwork Kind = "NETWORK"
	// KindInstall is a non-zero exit from the package manager.
	KindInstall Kind = "INSTALL"
	// KindUnexpected is anything else that goes wrong during install.
	KindUnexpected Kind = "UNEXPECTED"
)

// ErrCancelled reports that the user declined a confirmation prompt.
// It is not a failure and maps to exit status 0.
var ErrCancelled = errors.New("cancelled by user")

// Error is a classified error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given kind and formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf extracts the kind of the outermost *Error in err's chain.
// Returns empty string if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
