package common

import (
	"fmt"
	"strconv"
)

// UserID is the Telegram numeric identifier of a user.
type UserID int64

// String returns the decimal representation of the UserID.
func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// WordID identifies an entry in the word catalog.
type WordID int64

// String returns the decimal representation of the WordID.
func (id WordID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// TaskID identifies a to-do item.
type TaskID int64

// String returns the decimal representation of the TaskID.
func (id TaskID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ChatID is a Telegram chat identifier.
type ChatID int64

// Common error types

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
}

type InternalError struct {
	Message string
	Cause   error
}

func (e InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: %s (caused by: %v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e InternalError) Unwrap() error {
	return e.Cause
}

// IsNotFound checks whether err is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(NotFoundError)
	return ok
}

// IsValidation checks whether err is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}
