package issue

import (
	"errors"
	"fmt"
)

// ExitError signals a process exit status without calling os.Exit below main.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the wrapped message, or a generic one.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an exit code.
func Exit(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by the command tree to a process status.
// nil and ErrCancelled exit 0, an ExitError its own code, and anything else 1.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrCancelled) {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
