package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the relnotes CLI
const (
	// ExitSuccess covers every run that got two tags, including runs that
	// found no commits or could not read the log.
	ExitSuccess = 0

	// ExitUsage indicates missing positional arguments or unparseable flags
	ExitUsage = 1

	// ExitInterrupted indicates the run was cancelled by SIGINT (128+2)
	ExitInterrupted = 130
)

// ExitCoder is implemented by errors that carry a process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
// It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code  int
	cause error
}

// NewExitError wraps cause with an exit code. Codes <= 0 become ExitUsage.
func NewExitError(code int, cause error) error {
	if code <= 0 {
		code = ExitUsage
	}
	return &ExitError{code: code, cause: cause}
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.cause.Error()
}

// ExitCode returns the process exit code.
func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// ExitCodeOf extracts an exit code from any error, defaulting to ExitUsage.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitUsage
}
