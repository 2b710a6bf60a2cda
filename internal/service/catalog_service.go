package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openlibro/biblio-api/internal/domain"
	"github.com/openlibro/biblio-api/internal/store"
	"github.com/openlibro/biblio-api/internal/validation"
)

// CatalogService provides catalog-related operations over the set of
// registered books.
type CatalogService interface {
	// Register adds a new book to the catalog with every copy available.
	// Fails with domain.ErrInvalidCode for a malformed catalog code,
	// store.ErrBookExists for a code already registered, and
	// domain.ErrInvalidQuantity for a non-positive copy count, checked in
	// that order.
	Register(ctx context.Context, code, title, author string, totalCopies int) (*domain.Book, error)

	// GetByCode retrieves a book by its catalog code.
	// Fails with store.ErrBookNotFound if the code is not registered.
	GetByCode(ctx context.Context, code string) (*domain.Book, error)

	// FindByTitle returns the books whose title contains the query as a
	// case-insensitive substring. A blank query yields an empty slice.
	FindByTitle(ctx context.Context, query string) ([]*domain.Book, error)

	// FindByAuthor is FindByTitle over the author field.
	FindByAuthor(ctx context.Context, query string) ([]*domain.Book, error)

	// List returns a snapshot of every registered book.
	List(ctx context.Context) ([]*domain.Book, error)

	// SetAvailability overwrites a book's available count. This is an
	// administrative override, distinct from the borrow/return paths.
	// Fails with store.ErrBookNotFound for an unknown code and
	// domain.ErrInvalidQuantity when the count falls outside [0, total].
	SetAvailability(ctx context.Context, code string, available int) error

	// Exists reports whether a book with the given code is registered.
	Exists(ctx context.Context, code string) (bool, error)
}

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	books  store.BookStore
	mem    *store.Memory
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService backed by the given store.
func NewCatalogService(books store.BookStore, mem *store.Memory, logger *slog.Logger) CatalogService {
	return &CatalogServiceImpl{
		books:  books,
		mem:    mem,
		logger: logger.With("component", "catalog_service"),
	}
}

// Register adds a new book to the catalog.
// Uses a transaction so the duplicate check and the insert are atomic.
func (s *CatalogServiceImpl) Register(
	ctx context.Context,
	code, title, author string,
	totalCopies int,
) (*domain.Book, error) {
	if !validation.IsValidCatalogCode(code) {
		s.logger.Debug("rejected registration with malformed catalog code",
			"code", code)
		return nil, fmt.Errorf("failed to register book: %w", domain.ErrInvalidCode)
	}

	var book *domain.Book
	err := store.RunInTransaction(ctx, s.mem, func(ctx context.Context, tx *store.Tx) error {
		txBooks := s.books.WithTx(tx)

		exists, err := txBooks.Exists(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to check for existing book: %w", err)
		}
		if exists {
			return store.ErrBookExists
		}

		if !validation.IsPositiveQuantity(totalCopies) {
			return domain.ErrInvalidQuantity
		}

		book, err = domain.NewBook(code, title, author, totalCopies)
		if err != nil {
			return err
		}

		return txBooks.Create(ctx, book)
	})

	if err != nil {
		if errors.Is(err, store.ErrBookExists) {
			s.logger.Debug("attempted to register duplicate catalog code",
				"code", code)
		} else if errors.Is(err, domain.ErrInvalidQuantity) {
			s.logger.Debug("rejected registration with non-positive copy count",
				"code", code,
				"total_copies", totalCopies)
		} else {
			s.logger.Error("failed to register book",
				"error", err,
				"code", code)
		}
		return nil, fmt.Errorf("failed to register book: %w", err)
	}

	s.logger.Info("book registered successfully",
		"code", book.Code,
		"title", book.Title,
		"total_copies", book.TotalCopies)

	return book, nil
}

// GetByCode retrieves a book by its catalog code.
func (s *CatalogServiceImpl) GetByCode(ctx context.Context, code string) (*domain.Book, error) {
	book, err := s.books.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found by code",
				"code", code)
		} else {
			s.logger.Error("failed to retrieve book",
				"error", err,
				"code", code)
		}
		return nil, fmt.Errorf("failed to retrieve book: %w", err)
	}

	return book, nil
}

// FindByTitle returns the books matching the title query.
func (s *CatalogServiceImpl) FindByTitle(ctx context.Context, query string) ([]*domain.Book, error) {
	books, err := s.books.FindByTitle(ctx, query)
	if err != nil {
		s.logger.Error("failed to search books by title",
			"error", err,
			"query", query)
		return nil, fmt.Errorf("failed to search books by title: %w", err)
	}

	return books, nil
}

// FindByAuthor returns the books matching the author query.
func (s *CatalogServiceImpl) FindByAuthor(ctx context.Context, query string) ([]*domain.Book, error) {
	books, err := s.books.FindByAuthor(ctx, query)
	if err != nil {
		s.logger.Error("failed to search books by author",
			"error", err,
			"query", query)
		return nil, fmt.Errorf("failed to search books by author: %w", err)
	}

	return books, nil
}

// List returns a snapshot of every registered book.
func (s *CatalogServiceImpl) List(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		s.logger.Error("failed to list books", "error", err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

// SetAvailability overwrites a book's available count.
// Uses a transaction so the bounds check and the write are atomic.
func (s *CatalogServiceImpl) SetAvailability(ctx context.Context, code string, available int) error {
	err := store.RunInTransaction(ctx, s.mem, func(ctx context.Context, tx *store.Tx) error {
		txBooks := s.books.WithTx(tx)

		book, err := txBooks.GetByCode(ctx, code)
		if err != nil {
			return err
		}

		if available < 0 || available > book.TotalCopies {
			return domain.ErrInvalidQuantity
		}

		return txBooks.SetAvailable(ctx, code, available)
	})

	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) || errors.Is(err, domain.ErrInvalidQuantity) {
			s.logger.Debug("rejected availability override",
				"error", err,
				"code", code,
				"available", available)
		} else {
			s.logger.Error("failed to override availability",
				"error", err,
				"code", code)
		}
		return fmt.Errorf("failed to override availability: %w", err)
	}

	s.logger.Info("availability overridden",
		"code", code,
		"available", available)

	return nil
}

// Exists reports whether a book with the given code is registered.
func (s *CatalogServiceImpl) Exists(ctx context.Context, code string) (bool, error) {
	exists, err := s.books.Exists(ctx, code)
	if err != nil {
		s.logger.Error("failed to check book existence",
			"error", err,
			"code", code)
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}

	return exists, nil
}
