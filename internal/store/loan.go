package store

import (
	"context"

	"github.com/openlibro/biblio-api/internal/domain"
)

// LoanStore defines the interface for loan data access.
type LoanStore interface {
	// NextID issues the next loan identifier. Identifiers are sequential
	// ("LOAN-1", "LOAN-2", ...) and never reused; issuing one inside a
	// transaction that rolls back returns the number to the pool, so ids
	// advance only on successful borrows.
	NextID(ctx context.Context) (string, error)

	// Create saves a new loan to the store.
	// Returns ErrDuplicate if a loan with the same ID already exists.
	// Returns ErrInvalidEntity wrapping the validation error if the loan
	// data is invalid.
	Create(ctx context.Context, loan *domain.Loan) error

	// GetActive retrieves the active loan for the given (book, user)
	// pair. When more than one active loan matches, the earliest created
	// one is returned. Returns ErrLoanNotFound if no active loan matches.
	// The returned loan is a copy; mutating it does not affect the store.
	GetActive(ctx context.Context, bookCode, userID string) (*domain.Loan, error)

	// Update overwrites an existing loan record, typically to persist the
	// Active→Returned transition. Returns ErrLoanNotFound if no loan with
	// that ID exists.
	Update(ctx context.Context, loan *domain.Loan) error

	// ListActiveByUser returns the user's active loans in creation order.
	ListActiveByUser(ctx context.Context, userID string) ([]*domain.Loan, error)

	// CountActiveByUser returns the number of active loans the user holds.
	CountActiveByUser(ctx context.Context, userID string) (int, error)

	// List returns a snapshot of every loan ever created, active or not,
	// in creation order.
	List(ctx context.Context) ([]*domain.Loan, error)

	// WithTx returns a LoanStore view bound to the provided transaction.
	WithTx(tx *Tx) LoanStore
}
