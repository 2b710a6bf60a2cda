package domain

import (
	"errors"
	"time"
)

// Loan-specific validation errors.
var (
	ErrEmptyLoanID   = errors.New("loan ID cannot be empty")
	ErrEmptyBookCode = errors.New("loan book code cannot be empty")
	ErrEmptyUserID   = errors.New("loan user ID cannot be empty")
	ErrZeroLoanDate  = errors.New("loan date cannot be zero")
	ErrLoanNotActive = errors.New("loan is not active")
)

// Loan represents a single borrowing record. It is created active and
// transitions to returned exactly once; a returned loan is terminal and
// its ReturnedAt is never mutated afterwards.
type Loan struct {
	ID         string     `json:"id"`
	BookCode   string     `json:"book_code"`
	UserID     string     `json:"user_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Active     bool       `json:"active"`
}

// NewLoan creates a new active Loan for the given book and user.
// The ID is assigned by the caller (the ledger owns id generation).
// Returns an error if validation fails.
func NewLoan(id, bookCode, userID string, loanedAt time.Time) (*Loan, error) {
	loan := &Loan{
		ID:       id,
		BookCode: bookCode,
		UserID:   userID,
		LoanedAt: loanedAt,
		Active:   true,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	return loan, nil
}

// Validate checks if the Loan has valid data.
func (l *Loan) Validate() error {
	if l.ID == "" {
		return ErrEmptyLoanID
	}

	if l.BookCode == "" {
		return ErrEmptyBookCode
	}

	if l.UserID == "" {
		return ErrEmptyUserID
	}

	if l.LoanedAt.IsZero() {
		return ErrZeroLoanDate
	}

	return nil
}

// Close marks the loan as returned at the given time. Returned is a
// terminal state: closing an inactive loan fails with ErrLoanNotActive
// and leaves the record untouched.
func (l *Loan) Close(returnedAt time.Time) error {
	if !l.Active {
		return ErrLoanNotActive
	}

	l.Active = false
	l.ReturnedAt = &returnedAt

	return nil
}
