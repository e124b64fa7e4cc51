// Package memory provides an in-process implementation of the tourdesk
// repositories and capacity ledger. It backs the service tests and runs
// anywhere a database is unwanted.
package memory

import (
	"context"
	"sync"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: Store implements domain.Transactor.
var _ domain.Transactor = (*Store)(nil)

// Store holds tours, customers and expenses in maps guarded by mu.
// Each tour's seat counter has its own lock in seats.
type Store struct {
	mu        sync.RWMutex
	tours     map[string]domain.Tour
	seats     map[string]*seat
	customers map[string]domain.Customer
	expenses  map[string]domain.Expense

	// txMu serializes WithinTx callers so an undo log only ever reverts
	// its own writes.
	txMu sync.Mutex
}

// seat is the booked counter of one tour.
type seat struct {
	mu     sync.Mutex
	booked int
	max    int
}

func New() *Store {
	return &Store{
		tours:     make(map[string]domain.Tour),
		seats:     make(map[string]*seat),
		customers: make(map[string]domain.Customer),
		expenses:  make(map[string]domain.Expense),
	}
}

func (s *Store) Tours() *TourRepository         { return &TourRepository{store: s} }
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{store: s} }
func (s *Store) Expenses() *ExpenseRepository   { return &ExpenseRepository{store: s} }
func (s *Store) Ledger() *Ledger                { return &Ledger{store: s} }

type txKey struct{}

// undoLog records the inverse of every write made inside a transaction.
type undoLog struct {
	steps []func()
}

// WithinTx runs fn with an undo log in ctx. If fn fails, every write it made
// through this store is reverted in reverse order. A nested call joins the
// outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		for i := len(log.steps) - 1; i >= 0; i-- {
			log.steps[i]()
		}
		return err
	}
	return nil
}

// onRollback registers undo for the transaction in ctx, if any.
func onRollback(ctx context.Context, undo func()) {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok {
		log.steps = append(log.steps, undo)
	}
}

// seatFor returns the counter of a tour, or nil when the tour does not exist.
func (s *Store) seatFor(tourID string) *seat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seats[tourID]
}
