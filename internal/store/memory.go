package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/openlibro/biblio-api/internal/domain"
)

// loanIDPrefix is prepended to the sequential loan counter.
const loanIDPrefix = "LOAN-"

// memoryState holds the combined catalog and ledger state. Both maps and
// the loan counter live in one struct so a single lock (and a single
// transaction) can cover every cross-aggregate operation.
type memoryState struct {
	books     map[string]domain.Book
	loans     map[string]domain.Loan
	loanOrder []string // loan IDs in creation order; map iteration is not deterministic
	loanSeq   int      // last issued loan number
}

func newMemoryState() *memoryState {
	return &memoryState{
		books: make(map[string]domain.Book),
		loans: make(map[string]domain.Loan),
	}
}

// clone produces an independent copy of the state. Entities are stored by
// value, so copying the maps is a deep copy.
func (s *memoryState) clone() *memoryState {
	cp := &memoryState{
		books:     make(map[string]domain.Book, len(s.books)),
		loans:     make(map[string]domain.Loan, len(s.loans)),
		loanOrder: make([]string, len(s.loanOrder)),
		loanSeq:   s.loanSeq,
	}
	for code, b := range s.books {
		cp.books[code] = b
	}
	for id, l := range s.loans {
		cp.loans[id] = l
	}
	copy(cp.loanOrder, s.loanOrder)
	return cp
}

// Memory is the in-process store backing both the book catalog and the
// loan ledger. It owns the keyed state exclusively: entities go in and
// come out by value, and all access is serialized under one RWMutex so
// the borrow/return flows observe a consistent combined state.
type Memory struct {
	mu    sync.RWMutex
	state *memoryState
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{state: newMemoryState()}
}

// Books returns a BookStore view over the shared state.
func (m *Memory) Books() BookStore {
	return &memoryBookStore{m: m}
}

// Loans returns a LoanStore view over the shared state.
func (m *Memory) Loans() LoanStore {
	return &memoryLoanStore{m: m}
}

// memoryBookStore implements BookStore. Outside a transaction each call
// takes the store lock for its own duration; bound to a Tx it works on
// the transaction's private state, which is already under the write lock.
type memoryBookStore struct {
	m  *Memory
	tx *Tx
}

func (s *memoryBookStore) WithTx(tx *Tx) BookStore {
	return &memoryBookStore{tx: tx}
}

func (s *memoryBookStore) read(fn func(st *memoryState) error) error {
	if s.tx != nil {
		return fn(s.tx.state)
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return fn(s.m.state)
}

func (s *memoryBookStore) write(fn func(st *memoryState) error) error {
	if s.tx != nil {
		return fn(s.tx.state)
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return fn(s.m.state)
}

func (s *memoryBookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	return s.write(func(st *memoryState) error {
		if _, ok := st.books[book.Code]; ok {
			return ErrBookExists
		}
		st.books[book.Code] = *book
		return nil
	})
}

func (s *memoryBookStore) GetByCode(ctx context.Context, code string) (*domain.Book, error) {
	var book domain.Book
	err := s.read(func(st *memoryState) error {
		b, ok := st.books[code]
		if !ok {
			return ErrBookNotFound
		}
		book = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *memoryBookStore) FindByTitle(ctx context.Context, query string) ([]*domain.Book, error) {
	return s.findBy(query, func(b *domain.Book) string { return b.Title })
}

func (s *memoryBookStore) FindByAuthor(ctx context.Context, query string) ([]*domain.Book, error) {
	return s.findBy(query, func(b *domain.Book) string { return b.Author })
}

func (s *memoryBookStore) findBy(query string, field func(*domain.Book) string) ([]*domain.Book, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*domain.Book{}, nil
	}

	matches := []*domain.Book{}
	err := s.read(func(st *memoryState) error {
		for _, b := range st.books {
			if strings.Contains(strings.ToLower(field(&b)), query) {
				book := b
				matches = append(matches, &book)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortBooksByCode(matches)
	return matches, nil
}

func (s *memoryBookStore) List(ctx context.Context) ([]*domain.Book, error) {
	books := []*domain.Book{}
	err := s.read(func(st *memoryState) error {
		for _, b := range st.books {
			book := b
			books = append(books, &book)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortBooksByCode(books)
	return books, nil
}

func (s *memoryBookStore) SetAvailable(ctx context.Context, code string, available int) error {
	return s.write(func(st *memoryState) error {
		b, ok := st.books[code]
		if !ok {
			return ErrBookNotFound
		}
		b.AvailableCopies = available
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
		}
		st.books[code] = b
		return nil
	})
}

func (s *memoryBookStore) MarkBorrowed(ctx context.Context, code string) error {
	return s.write(func(st *memoryState) error {
		b, ok := st.books[code]
		if !ok {
			return ErrBookNotFound
		}
		b.Borrow()
		st.books[code] = b
		return nil
	})
}

func (s *memoryBookStore) MarkReturned(ctx context.Context, code string) error {
	return s.write(func(st *memoryState) error {
		b, ok := st.books[code]
		if !ok {
			return ErrBookNotFound
		}
		b.Return()
		st.books[code] = b
		return nil
	})
}

func (s *memoryBookStore) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.read(func(st *memoryState) error {
		_, exists = st.books[code]
		return nil
	})
	return exists, err
}

func sortBooksByCode(books []*domain.Book) {
	sort.Slice(books, func(i, j int) bool { return books[i].Code < books[j].Code })
}

// memoryLoanStore implements LoanStore with the same locking scheme as
// memoryBookStore.
type memoryLoanStore struct {
	m  *Memory
	tx *Tx
}

func (s *memoryLoanStore) WithTx(tx *Tx) LoanStore {
	return &memoryLoanStore{tx: tx}
}

func (s *memoryLoanStore) read(fn func(st *memoryState) error) error {
	if s.tx != nil {
		return fn(s.tx.state)
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return fn(s.m.state)
}

func (s *memoryLoanStore) write(fn func(st *memoryState) error) error {
	if s.tx != nil {
		return fn(s.tx.state)
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return fn(s.m.state)
}

func (s *memoryLoanStore) NextID(ctx context.Context) (string, error) {
	var id string
	err := s.write(func(st *memoryState) error {
		st.loanSeq++
		id = fmt.Sprintf("%s%d", loanIDPrefix, st.loanSeq)
		return nil
	})
	return id, err
}

func (s *memoryLoanStore) Create(ctx context.Context, loan *domain.Loan) error {
	if err := loan.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	return s.write(func(st *memoryState) error {
		if _, ok := st.loans[loan.ID]; ok {
			return ErrDuplicate
		}
		st.loans[loan.ID] = *loan
		st.loanOrder = append(st.loanOrder, loan.ID)
		return nil
	})
}

func (s *memoryLoanStore) GetActive(ctx context.Context, bookCode, userID string) (*domain.Loan, error) {
	var loan domain.Loan
	err := s.read(func(st *memoryState) error {
		for _, id := range st.loanOrder {
			l := st.loans[id]
			if l.Active && l.BookCode == bookCode && l.UserID == userID {
				loan = l
				return nil
			}
		}
		return ErrLoanNotFound
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *memoryLoanStore) Update(ctx context.Context, loan *domain.Loan) error {
	if err := loan.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	return s.write(func(st *memoryState) error {
		if _, ok := st.loans[loan.ID]; !ok {
			return ErrLoanNotFound
		}
		st.loans[loan.ID] = *loan
		return nil
	})
}

func (s *memoryLoanStore) ListActiveByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	loans := []*domain.Loan{}
	err := s.read(func(st *memoryState) error {
		for _, id := range st.loanOrder {
			l := st.loans[id]
			if l.Active && l.UserID == userID {
				loan := l
				loans = append(loans, &loan)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (s *memoryLoanStore) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	err := s.read(func(st *memoryState) error {
		for _, l := range st.loans {
			if l.Active && l.UserID == userID {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (s *memoryLoanStore) List(ctx context.Context) ([]*domain.Loan, error) {
	loans := []*domain.Loan{}
	err := s.read(func(st *memoryState) error {
		for _, id := range st.loanOrder {
			loan := st.loans[id]
			loans = append(loans, &loan)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loans, nil
}
