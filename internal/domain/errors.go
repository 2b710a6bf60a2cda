// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCode is returned when a catalog code is not a
	// well-formed 13-digit numeric string.
	ErrInvalidCode = errors.New("invalid catalog code")

	// ErrInvalidQuantity is returned when a copy count is not positive,
	// or an availability override falls outside [0, total].
	ErrInvalidQuantity = errors.New("invalid quantity")
)
