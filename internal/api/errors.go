package api

import (
	"errors"
	"net/http"

	"github.com/openlibro/biblio-api/internal/domain"
	"github.com/openlibro/biblio-api/internal/service"
	"github.com/openlibro/biblio-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrBookNotFound),
		errors.Is(err, store.ErrLoanNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrBookExists),
		errors.Is(err, service.ErrBookUnavailable),
		errors.Is(err, service.ErrLoanLimitExceeded):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"

	case errors.Is(err, store.ErrLoanNotFound):
		return "No active loan found for this book and user"

	case errors.Is(err, store.ErrBookExists):
		return "A book with this catalog code already exists"

	case errors.Is(err, service.ErrBookUnavailable):
		return "No copies of this book are available"

	case errors.Is(err, service.ErrLoanLimitExceeded):
		return "Active loan limit reached"

	case errors.Is(err, domain.ErrInvalidCode):
		return "Catalog code must be exactly 13 digits"

	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Quantity is out of range"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
