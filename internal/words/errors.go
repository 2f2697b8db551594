package words

import "fmt"

// BatchValidationError is returned when a lookup or sample request exceeds
// the catalog's batch limits.
type BatchValidationError struct {
	Field   string
	Size    int
	Limit   int
	Message string
}

func (e BatchValidationError) Error() string {
	return fmt.Sprintf("invalid %s (size %d, limit %d): %s", e.Field, e.Size, e.Limit, e.Message)
}

// NewBatchValidationError creates a new BatchValidationError
func NewBatchValidationError(field string, size, limit int, message string) BatchValidationError {
	return BatchValidationError{Field: field, Size: size, Limit: limit, Message: message}
}

// IsBatchValidationError checks if an error is a batch validation error
func IsBatchValidationError(err error) bool {
	_, ok := err.(BatchValidationError)
	return ok
}
