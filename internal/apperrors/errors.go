package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a lost update: the resource changed between read and write.
var ErrConflict = errors.New("resource was modified concurrently")

// ErrSequenceExhausted indicates a numbering sequence ran past its upper bound.
// Practically unreachable with yearly sequences, but modeled explicitly so the
// failure mode is a rejected posting instead of a malformed document number.
var ErrSequenceExhausted = errors.New("sequence exhausted")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and a message suitable
// for surfacing at the handler boundary.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
