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

// ErrConflict indicates a stale read was detected during a read-modify-write.
// Callers retry once before surfacing it.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrLocked indicates an attempt to modify configuration that has been
// locked after initialization.
var ErrLocked = errors.New("configuration is locked after initialization")

// ErrConfiguration indicates a required default account mapping is missing.
// Financial posting is best-effort secondary to the primary business record,
// so callers log this and continue.
var ErrConfiguration = errors.New("configuration error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the underlying error.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
