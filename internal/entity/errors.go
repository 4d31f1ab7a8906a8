package entity

import (
	"errors"
	"fmt"
)

var (
	// Validation errors
	ErrValidation           = errors.New("validation error")
	ErrInvalidContentLength = fmt.Errorf("%w: content length must be between %d and %d characters", ErrValidation, MinContentLength, MaxContentLength)

	// Notification errors
	ErrNotificationNotFound      = errors.New("notification not found")
	ErrNotificationAlreadyExists = errors.New("notification already exists")

	// Storage errors
	ErrStorage = errors.New("storage error")
)

// StorageError is returned by repositories when the underlying store fails.
// It matches ErrStorage and unwraps to the cause.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
