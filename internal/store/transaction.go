// Package store provides abstractions and implementations for data access.
package store

import (
	"context"
	"log/slog"

	"github.com/openlibro/biblio-api/internal/platform/logger"
)

// Tx is a unit of work over a private copy of the store state. Stores
// bound to a Tx (via WithTx) read and mutate the copy; the copy replaces
// the live state only when the surrounding RunInTransaction call returns
// without error.
type Tx struct {
	state *memoryState
}

// TxFn is a function that executes within a store transaction.
// It receives the context and the transaction, and returns an error if
// the operation fails. The transaction is committed if the function
// returns nil, or discarded if it returns an error.
type TxFn func(ctx context.Context, tx *Tx) error

// RunInTransaction executes the given function atomically against the
// store. The write lock is held for the whole call, so the function
// observes and produces a consistent view spanning both the book catalog
// and the loan ledger. On error (or panic) the working copy is discarded
// and the live state is untouched: no partial mutation is ever observable
// after a failed operation.
func RunInTransaction(ctx context.Context, m *Memory, fn TxFn) error {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &Tx{state: m.state.clone()}

	if err := fn(ctx, tx); err != nil {
		log.Debug("discarded transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	m.state = tx.state
	log.Debug("transaction committed successfully")
	return nil
}
