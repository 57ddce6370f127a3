// Package errors provides structured error handling for the chlog CLI.
// It includes categorized errors with actionable remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Option errors are caused by invalid flags, arguments or configuration.
	Option ErrorCategory = iota
	// Pipeline errors occur while reading, validating or changing the changelog.
	Pipeline
	// Internal errors are bugs or unexpected I/O failures.
	Internal
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Option:
		return "Option Error"
	case Pipeline:
		return "Changelog Error"
	case Internal:
		return "Internal Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Option, Pipeline, Internal)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for option errors).
	Usage string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewOptionError creates a new option error with the given message and remediation steps.
func NewOptionError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Option,
		Message:     message,
		Remediation: remediation,
	}
}

// NewOptionErrorWithUsage creates a new option error that includes correct usage syntax.
func NewOptionErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Option,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// NewPipelineError creates a new pipeline error.
func NewPipelineError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Pipeline,
		Message:     message,
		Remediation: remediation,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Internal,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}

// IsCLIError checks if an error is or wraps a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError attempts to convert an error to a CLIError.
// Returns nil if the error is not a CLIError.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
