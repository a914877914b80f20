package errors

import (
	"errors"
	"fmt"
)

// Exit codes for ccs
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitNotARepo        = 2
	ExitWorktreeError   = 3
	ExitBranchError     = 4
	ExitContainerFailed = 5
	ExitConfigError     = 6
	ExitSecretsError    = 7
)

// CCSError is the base error type for ccs
type CCSError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CCSError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CCSError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CCSError) ExitCode() int {
	return e.Code
}

// New creates a new CCSError
func New(code int, message string) *CCSError {
	return &CCSError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CCSError
func Wrap(code int, message string, cause error) *CCSError {
	return &CCSError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// NotARepo returns an error for a path outside any git repository
func NotARepo(path string) *CCSError {
	return New(ExitNotARepo, fmt.Sprintf("not a git repository: %s", path))
}

// WorktreeError returns an error for worktree provisioning failures
func WorktreeError(message string, cause error) *CCSError {
	return Wrap(ExitWorktreeError, message, cause)
}

// BranchError returns an error for branch resolution failures
func BranchError(message string, cause error) *CCSError {
	return Wrap(ExitBranchError, message, cause)
}

// ContainerFailed returns an error for container operations
func ContainerFailed(op string, cause error) *CCSError {
	return Wrap(ExitContainerFailed, fmt.Sprintf("container %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CCSError {
	return Wrap(ExitConfigError, message, cause)
}

// SecretsError returns an error for secret resolution failures
func SecretsError(message string, cause error) *CCSError {
	return Wrap(ExitSecretsError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *CCSError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var ccsErr *CCSError
	if errors.As(err, &ccsErr) {
		return ccsErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
