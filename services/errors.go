package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound signals that a referenced entity does not exist
	ErrNotFound = errors.New("record not found")

	// ErrMaxAttemptsReached signals that the submission ceiling for a lab
	// has been hit; distinct from validation so callers can show an
	// attempt-limit message instead of a transient-failure one
	ErrMaxAttemptsReached = errors.New("maximum submission attempts reached")
)

// ValidationError reports a structural rule violated by the input, caught
// before any write
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness constraint violation
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StorageError wraps any other persistence failure; the underlying driver
// error never reaches API callers
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage failure: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// mapStorageErr translates driver errors into the service taxonomy.
// Taxonomy errors pass through unchanged so transaction callbacks can
// return them directly.
func mapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var ce *ConflictError
	if errors.As(err, &ve) || errors.As(err, &ce) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrMaxAttemptsReached) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Message: "duplicate key"}
	}
	return &StorageError{Err: err}
}
