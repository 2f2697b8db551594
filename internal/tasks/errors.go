package tasks

import "fmt"

// TaskValidationError is returned when a task fails its field constraints.
type TaskValidationError struct {
	Field   string
	Message string
}

func (e TaskValidationError) Error() string {
	return fmt.Sprintf("invalid task %s: %s", e.Field, e.Message)
}

// NewTaskValidationError creates a new TaskValidationError
func NewTaskValidationError(field, message string) TaskValidationError {
	return TaskValidationError{Field: field, Message: message}
}

// IsTaskValidationError checks if an error is a task validation error
func IsTaskValidationError(err error) bool {
	_, ok := err.(TaskValidationError)
	return ok
}
