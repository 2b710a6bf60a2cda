package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openlibro/biblio-api/internal/domain"
	"github.com/openlibro/biblio-api/internal/store"
)

// MaxActiveLoansPerUser is the admission-control cap: the number of
// simultaneous active loans a single user may hold.
const MaxActiveLoansPerUser = 3

// LedgerService provides loan-related operations. A ledger is bound to
// exactly one catalog store at construction; borrowing and returning
// mutate book availability through that store inside one transaction, so
// the two aggregates never drift apart.
type LedgerService interface {
	// Borrow opens a loan of the given book for the given user.
	// Checks run in order: store.ErrBookNotFound for an unknown code,
	// ErrBookUnavailable when no copy is available, ErrLoanLimitExceeded
	// when the user already holds MaxActiveLoansPerUser active loans.
	// The first failing check short-circuits with no state mutation.
	// On success the created loan is returned and the book's available
	// count is one lower.
	Borrow(ctx context.Context, bookCode, userID string) (*domain.Loan, error)

	// Return closes the unique active loan for the (book, user) pair and
	// increments the book's availability. Fails with store.ErrLoanNotFound
	// if no active loan matches; a second Return for the same pair fails
	// the same way, so closure is not repeatable.
	Return(ctx context.Context, bookCode, userID string) error

	// ActiveLoans returns the user's active loans in creation order.
	ActiveLoans(ctx context.Context, userID string) ([]*domain.Loan, error)

	// CountActive returns the number of active loans the user holds. It
	// is the same count Borrow uses for admission control.
	CountActive(ctx context.Context, userID string) (int, error)

	// List returns a snapshot of every loan ever created, active or not.
	List(ctx context.Context) ([]*domain.Loan, error)
}

// LedgerServiceImpl implements the LedgerService interface.
type LedgerServiceImpl struct {
	books  store.BookStore
	loans  store.LoanStore
	mem    *store.Memory
	logger *slog.Logger
}

// NewLedgerService creates a new LedgerService bound to the given stores.
func NewLedgerService(
	books store.BookStore,
	loans store.LoanStore,
	mem *store.Memory,
	logger *slog.Logger,
) LedgerService {
	return &LedgerServiceImpl{
		books:  books,
		loans:  loans,
		mem:    mem,
		logger: logger.With("component", "ledger_service"),
	}
}

// Borrow opens a loan, decrementing the book's availability in the same
// transaction that stores the loan record.
func (s *LedgerServiceImpl) Borrow(ctx context.Context, bookCode, userID string) (*domain.Loan, error) {
	var loan *domain.Loan
	err := store.RunInTransaction(ctx, s.mem, func(ctx context.Context, tx *store.Tx) error {
		txBooks := s.books.WithTx(tx)
		txLoans := s.loans.WithTx(tx)

		book, err := txBooks.GetByCode(ctx, bookCode)
		if err != nil {
			return err
		}

		if !book.IsAvailable() {
			return ErrBookUnavailable
		}

		active, err := txLoans.CountActiveByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to count active loans: %w", err)
		}
		if active >= MaxActiveLoansPerUser {
			return ErrLoanLimitExceeded
		}

		id, err := txLoans.NextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to issue loan ID: %w", err)
		}

		loan, err = domain.NewLoan(id, bookCode, userID, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := txLoans.Create(ctx, loan); err != nil {
			return fmt.Errorf("failed to store loan: %w", err)
		}

		return txBooks.MarkBorrowed(ctx, bookCode)
	})

	if err != nil {
		switch {
		case errors.Is(err, store.ErrBookNotFound):
			s.logger.Debug("borrow rejected: book not found",
				"book_code", bookCode,
				"user_id", userID)
		case errors.Is(err, ErrBookUnavailable):
			s.logger.Debug("borrow rejected: no copies available",
				"book_code", bookCode,
				"user_id", userID)
		case errors.Is(err, ErrLoanLimitExceeded):
			s.logger.Debug("borrow rejected: active loan limit reached",
				"user_id", userID,
				"limit", MaxActiveLoansPerUser)
		default:
			s.logger.Error("failed to borrow book",
				"error", err,
				"book_code", bookCode,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to borrow book: %w", err)
	}

	s.logger.Info("loan opened",
		"loan_id", loan.ID,
		"book_code", bookCode,
		"user_id", userID)

	return loan, nil
}

// Return closes the matching active loan and restores one copy to the
// book's availability in the same transaction.
func (s *LedgerServiceImpl) Return(ctx context.Context, bookCode, userID string) error {
	var loanID string
	err := store.RunInTransaction(ctx, s.mem, func(ctx context.Context, tx *store.Tx) error {
		txBooks := s.books.WithTx(tx)
		txLoans := s.loans.WithTx(tx)

		loan, err := txLoans.GetActive(ctx, bookCode, userID)
		if err != nil {
			return err
		}

		if err := loan.Close(time.Now().UTC()); err != nil {
			return err
		}

		if err := txLoans.Update(ctx, loan); err != nil {
			return fmt.Errorf("failed to update loan: %w", err)
		}

		loanID = loan.ID
		return txBooks.MarkReturned(ctx, bookCode)
	})

	if err != nil {
		if errors.Is(err, store.ErrLoanNotFound) {
			s.logger.Debug("return rejected: no active loan for pair",
				"book_code", bookCode,
				"user_id", userID)
		} else {
			s.logger.Error("failed to return book",
				"error", err,
				"book_code", bookCode,
				"user_id", userID)
		}
		return fmt.Errorf("failed to return book: %w", err)
	}

	s.logger.Info("loan closed",
		"loan_id", loanID,
		"book_code", bookCode,
		"user_id", userID)

	return nil
}

// ActiveLoans returns the user's active loans.
func (s *LedgerServiceImpl) ActiveLoans(ctx context.Context, userID string) ([]*domain.Loan, error) {
	loans, err := s.loans.ListActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list active loans",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}

	return loans, nil
}

// CountActive returns the number of active loans the user holds.
func (s *LedgerServiceImpl) CountActive(ctx context.Context, userID string) (int, error) {
	count, err := s.loans.CountActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count active loans",
			"error", err,
			"user_id", userID)
		return 0, fmt.Errorf("failed to count active loans: %w", err)
	}

	return count, nil
}

// List returns every loan ever created.
func (s *LedgerServiceImpl) List(ctx context.Context) ([]*domain.Loan, error) {
	loans, err := s.loans.List(ctx)
	if err != nil {
		s.logger.Error("failed to list loans", "error", err)
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	return loans, nil
}
