// Package service provides the application-level query and mutation services
// over the task store. It owns input validation for the listing surface: the
// sort allow-list, pagination bounds, and column names are all checked here
// before anything reaches SQL.
package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected conditions. Callers check these with
// errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrInvalidInput indicates a request carried a missing or malformed
	// field. Never retried automatically.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSortField indicates a sort field outside the allow-list.
	ErrInvalidSortField = fmt.Errorf("%w: sort field not allowed", ErrInvalidInput)

	// ErrInvalidPage indicates a negative offset or limit.
	ErrInvalidPage = fmt.Errorf("%w: offset and limit must be non-negative", ErrInvalidInput)
)

// TaskServiceError is a custom error type for unexpected task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}
