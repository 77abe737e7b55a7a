package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrTitleEmpty is returned when a task title is empty or whitespace.
	ErrTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskIDEmpty is returned when a task ID is empty.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrInvalidColumn is returned when a column name is not one of the
	// fixed board columns.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)
