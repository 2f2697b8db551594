package progress

import (
	"fmt"

	"lingobot-api/internal/common"
)

// Error codes for the progress module
const (
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeRepository       = "REPOSITORY_ERROR"
)

// ProgressError interface for progress-specific errors
type ProgressError interface {
	error
	Code() string
	Message() string
	Temporary() bool
}

// SessionValidationError represents a rejected learn-words batch. The call
// fails before any mutation, so the user record is untouched.
type SessionValidationError struct {
	Field      string
	Value      interface{}
	ErrMessage string
}

func (e SessionValidationError) Error() string {
	return fmt.Sprintf("session validation failed for '%s': %s (value: %v)", e.Field, e.ErrMessage, e.Value)
}

func (e SessionValidationError) Code() string {
	return ErrCodeValidationFailed
}

func (e SessionValidationError) Message() string {
	return e.ErrMessage
}

func (e SessionValidationError) Temporary() bool {
	return false
}

// RepositoryError represents database operation failures
type RepositoryError struct {
	Operation string
	Details   string
	Cause     error
}

func (e RepositoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repository error during %s: %s (caused by: %v)", e.Operation, e.Details, e.Cause)
	}
	return fmt.Sprintf("repository error during %s: %s", e.Operation, e.Details)
}

func (e RepositoryError) Code() string {
	return ErrCodeRepository
}

func (e RepositoryError) Message() string {
	return e.Details
}

func (e RepositoryError) Temporary() bool {
	return true // Database errors can often be retried
}

func (e RepositoryError) Unwrap() error {
	return e.Cause
}

// WrapRepositoryError wraps an error as a RepositoryError
func WrapRepositoryError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return RepositoryError{
		Operation: operation,
		Details:   "database operation failed",
		Cause:     err,
	}
}

// NewSessionValidationError creates a new SessionValidationError
func NewSessionValidationError(field string, value interface{}, message string) error {
	return SessionValidationError{
		Field:      field,
		Value:      value,
		ErrMessage: message,
	}
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	if progressErr, ok := err.(ProgressError); ok {
		return progressErr.Code() == ErrCodeUserNotFound
	}
	return common.IsNotFound(err)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	if progressErr, ok := err.(ProgressError); ok {
		return progressErr.Code() == ErrCodeValidationFailed
	}
	return common.IsValidation(err)
}

// IsTemporaryError checks if the error is temporary and can be retried
func IsTemporaryError(err error) bool {
	if progressErr, ok := err.(ProgressError); ok {
		return progressErr.Temporary()
	}
	return false
}
