package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTask      = errors.New("invalid task")
	ErrInvalidTaskID    = errors.New("invalid task id")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// ValidationError rejects a request before anything reaches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid task: %s", e.Reason)
	}
	return fmt.Sprintf("invalid task field %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTask
}

// StorageError carries a failed persistence call up to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("task storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
