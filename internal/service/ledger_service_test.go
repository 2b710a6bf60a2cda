package service

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlibro/biblio-api/internal/store"
)

// newLibrary wires a catalog and a ledger over one shared in-memory store,
// the same way cmd/server does.
func newLibrary(t *testing.T) (CatalogService, LedgerService) {
	t.Helper()
	mem := store.NewMemory()
	log := slog.Default()
	catalog := NewCatalogService(mem.Books(), mem, log)
	ledger := NewLedgerService(mem.Books(), mem.Loans(), mem, log)
	return catalog, ledger
}

func availableCopies(t *testing.T, catalog CatalogService, code string) int {
	t.Helper()
	book, err := catalog.GetByCode(context.Background(), code)
	require.NoError(t, err)
	return book.AvailableCopies
}

func TestLedgerBorrow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1234567890123", "Dune", "Frank Herbert", 2)
	require.NoError(t, err)

	loan, err := ledger.Borrow(ctx, "1234567890123", "U1")
	require.NoError(t, err)
	assert.Equal(t, "LOAN-1", loan.ID)
	assert.Equal(t, "1234567890123", loan.BookCode)
	assert.Equal(t, "U1", loan.UserID)
	assert.True(t, loan.Active)
	assert.False(t, loan.LoanedAt.IsZero())
	assert.Equal(t, 1, availableCopies(t, catalog, "1234567890123"))
}

func TestLedgerBorrowBookNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, ledger := newLibrary(t)

	_, err := ledger.Borrow(ctx, "9999999999999", "U1")
	assert.ErrorIs(t, err, store.ErrBookNotFound)

	loans, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, loans, "no loan is created when the book is unknown")
}

func TestLedgerBorrowUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1234567890123", "Dune", "Frank Herbert", 1)
	require.NoError(t, err)

	_, err = ledger.Borrow(ctx, "1234567890123", "U1")
	require.NoError(t, err)

	_, err = ledger.Borrow(ctx, "1234567890123", "U2")
	assert.ErrorIs(t, err, ErrBookUnavailable)
	assert.Equal(t, 0, availableCopies(t, catalog, "1234567890123"),
		"a failed borrow leaves availability unchanged")

	count, err := ledger.CountActive(ctx, "U2")
	require.NoError(t, err)
	assert.Zero(t, count, "no loan is created when no copy is available")
}

func TestLedgerBorrowLoanLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	codes := make([]string, 0, MaxActiveLoansPerUser+1)
	for i := 0; i <= MaxActiveLoansPerUser; i++ {
		code := fmt.Sprintf("111111111111%d", i)
		_, err := catalog.Register(ctx, code, fmt.Sprintf("Book %d", i), "Author", 1)
		require.NoError(t, err)
		codes = append(codes, code)
	}

	for i := 0; i < MaxActiveLoansPerUser; i++ {
		_, err := ledger.Borrow(ctx, codes[i], "U1")
		require.NoError(t, err)
	}

	// The fourth borrow fails with no loan created and no copy removed
	_, err := ledger.Borrow(ctx, codes[MaxActiveLoansPerUser], "U1")
	assert.ErrorIs(t, err, ErrLoanLimitExceeded)
	assert.Equal(t, 1, availableCopies(t, catalog, codes[MaxActiveLoansPerUser]))

	count, err := ledger.CountActive(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, MaxActiveLoansPerUser, count)

	// Returning one book frees a slot
	require.NoError(t, ledger.Return(ctx, codes[0], "U1"))

	_, err = ledger.Borrow(ctx, codes[MaxActiveLoansPerUser], "U1")
	require.NoError(t, err)
}

func TestLedgerReturn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1234567890123", "Dune", "Frank Herbert", 1)
	require.NoError(t, err)

	_, err = ledger.Borrow(ctx, "1234567890123", "U1")
	require.NoError(t, err)
	require.NoError(t, ledger.Return(ctx, "1234567890123", "U1"))

	assert.Equal(t, 1, availableCopies(t, catalog, "1234567890123"))

	loans, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.False(t, loans[0].Active)
	assert.NotNil(t, loans[0].ReturnedAt)

	// Closure is not repeatable
	err = ledger.Return(ctx, "1234567890123", "U1")
	assert.ErrorIs(t, err, store.ErrLoanNotFound)
	assert.Equal(t, 1, availableCopies(t, catalog, "1234567890123"))
}

func TestLedgerReturnWithoutLoan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1234567890123", "Dune", "Frank Herbert", 1)
	require.NoError(t, err)

	err = ledger.Return(ctx, "1234567890123", "U1")
	assert.ErrorIs(t, err, store.ErrLoanNotFound)
	assert.Equal(t, 1, availableCopies(t, catalog, "1234567890123"))
}

// The availability cycle from the admission rules: one copy circulating
// between two users.
func TestLedgerAvailabilityCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1234567890123", "Dune", "Frank Herbert", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, availableCopies(t, catalog, "1234567890123"))

	_, err = ledger.Borrow(ctx, "1234567890123", "U1")
	require.NoError(t, err)
	assert.Equal(t, 0, availableCopies(t, catalog, "1234567890123"))

	_, err = ledger.Borrow(ctx, "1234567890123", "U2")
	assert.ErrorIs(t, err, ErrBookUnavailable)

	require.NoError(t, ledger.Return(ctx, "1234567890123", "U1"))
	assert.Equal(t, 1, availableCopies(t, catalog, "1234567890123"))

	_, err = ledger.Borrow(ctx, "1234567890123", "U2")
	require.NoError(t, err)
	assert.Equal(t, 0, availableCopies(t, catalog, "1234567890123"))
}

// One user may hold several simultaneous loans of the same title when the
// catalog has enough copies; only the per-user cap limits it.
func TestLedgerSameBookTwice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1234567890123", "Dune", "Frank Herbert", 2)
	require.NoError(t, err)

	first, err := ledger.Borrow(ctx, "1234567890123", "U1")
	require.NoError(t, err)
	second, err := ledger.Borrow(ctx, "1234567890123", "U1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 0, availableCopies(t, catalog, "1234567890123"))

	// Returns close one loan at a time, earliest first
	require.NoError(t, ledger.Return(ctx, "1234567890123", "U1"))

	active, err := ledger.ActiveLoans(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestLedgerLoanIDsAdvanceOnSuccessOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1234567890123", "Dune", "Frank Herbert", 1)
	require.NoError(t, err)

	loan, err := ledger.Borrow(ctx, "1234567890123", "U1")
	require.NoError(t, err)
	assert.Equal(t, "LOAN-1", loan.ID)

	// A rejected borrow consumes no id
	_, err = ledger.Borrow(ctx, "1234567890123", "U2")
	assert.ErrorIs(t, err, ErrBookUnavailable)

	require.NoError(t, ledger.Return(ctx, "1234567890123", "U1"))

	loan, err = ledger.Borrow(ctx, "1234567890123", "U2")
	require.NoError(t, err)
	assert.Equal(t, "LOAN-2", loan.ID, "ids are never reused, even after loans close")
}

func TestLedgerActiveLoansAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog, ledger := newLibrary(t)

	_, err := catalog.Register(ctx, "1111111111111", "A", "X", 1)
	require.NoError(t, err)
	_, err = catalog.Register(ctx, "2222222222222", "B", "Y", 1)
	require.NoError(t, err)

	_, err = ledger.Borrow(ctx, "1111111111111", "U1")
	require.NoError(t, err)
	_, err = ledger.Borrow(ctx, "2222222222222", "U1")
	require.NoError(t, err)
	require.NoError(t, ledger.Return(ctx, "1111111111111", "U1"))

	active, err := ledger.ActiveLoans(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "2222222222222", active[0].BookCode)

	count, err := ledger.CountActive(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "List includes closed loans")
}
