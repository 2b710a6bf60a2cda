package store

import (
	"context"

	"github.com/openlibro/biblio-api/internal/domain"
)

// BookStore defines the interface for book data access.
type BookStore interface {
	// Create saves a new book to the store.
	// Returns ErrBookExists if the catalog code is already registered.
	// Returns ErrInvalidEntity wrapping the validation error if the book
	// data is invalid.
	Create(ctx context.Context, book *domain.Book) error

	// GetByCode retrieves a book by its catalog code.
	// Returns ErrBookNotFound if the book does not exist.
	// The returned book is a copy; mutating it does not affect the store.
	GetByCode(ctx context.Context, code string) (*domain.Book, error)

	// FindByTitle returns every book whose title contains the query as a
	// case-insensitive substring. Surrounding whitespace in the query is
	// ignored. A blank query yields an empty slice, not an error.
	FindByTitle(ctx context.Context, query string) ([]*domain.Book, error)

	// FindByAuthor returns every book whose author contains the query as
	// a case-insensitive substring, with the same blank-query contract as
	// FindByTitle.
	FindByAuthor(ctx context.Context, query string) ([]*domain.Book, error)

	// List returns a snapshot of every registered book, ordered by
	// catalog code. Later store mutations are not observable through a
	// previously returned slice.
	List(ctx context.Context) ([]*domain.Book, error)

	// SetAvailable overwrites a book's available count. This is the
	// administrative override path, distinct from MarkBorrowed and
	// MarkReturned. Returns ErrBookNotFound if the book does not exist
	// and ErrInvalidEntity if the new count falls outside [0, total].
	SetAvailable(ctx context.Context, code string, available int) error

	// MarkBorrowed decrements a book's available count by one. At zero
	// it is a silent no-op, not an error.
	// Returns ErrBookNotFound if the book does not exist.
	MarkBorrowed(ctx context.Context, code string) error

	// MarkReturned increments a book's available count by one. At the
	// total it is a silent no-op, not an error.
	// Returns ErrBookNotFound if the book does not exist.
	MarkReturned(ctx context.Context, code string) error

	// Exists reports whether a book with the given catalog code is
	// registered. It has no failure path beyond context plumbing.
	Exists(ctx context.Context, code string) (bool, error)

	// WithTx returns a BookStore view bound to the provided transaction.
	// All operations on the returned store act on the transaction's
	// working state and become visible only when the transaction commits.
	WithTx(tx *Tx) BookStore
}
