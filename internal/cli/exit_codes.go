package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
)

// Exit codes for the chlog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitPipelineFailed indicates the changelog could not be processed
	// (structural errors, missing sections, empty notes)
	ExitPipelineFailed = 1

	// ExitInvalidOptions indicates invalid flags, arguments or configuration
	ExitInvalidOptions = 2

	// ExitInternalError indicates an unexpected failure such as an I/O error
	ExitInternalError = 3
)

// ExitError is an error that carries a process exit code. The message has
// already been reported when it is returned.
type ExitError struct {
	code int
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Code returns the exit code.
func (e *ExitError) Code() int {
	return e.code
}

// ExitCode returns the exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitInternalError
}

// exitCodeFor maps an error category to its exit code.
func exitCodeFor(category clierrors.ErrorCategory) int {
	switch category {
	case clierrors.Option:
		return ExitInvalidOptions
	case clierrors.Pipeline:
		return ExitPipelineFailed
	default:
		return ExitInternalError
	}
}
