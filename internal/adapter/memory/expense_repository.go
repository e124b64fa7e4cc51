package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: ExpenseRepository implements domain.ExpenseRepository.
var _ domain.ExpenseRepository = (*ExpenseRepository)(nil)

type ExpenseRepository struct {
	store *Store
}

func (r *ExpenseRepository) Create(ctx context.Context, e domain.Expense) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.TourID != "" {
		if _, ok := s.tours[e.TourID]; !ok {
			return &domain.ReferenceError{TourID: e.TourID}
		}
	}
	s.expenses[e.ID] = e

	onRollback(ctx, func() {
		s.mu.Lock()
		delete(s.expenses, e.ID)
		s.mu.Unlock()
	})
	return nil
}

func (r *ExpenseRepository) GetByID(_ context.Context, id string) (domain.Expense, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.expenses[id]
	if !ok {
		return domain.Expense{}, domain.ErrExpenseNotFound
	}
	return e, nil
}

// List returns expenses newest first.
func (r *ExpenseRepository) List(_ context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Expense, 0, len(r.store.expenses))
	for _, e := range r.store.expenses {
		if filter.TourID != "" && e.TourID != filter.TourID {
			continue
		}
		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b domain.Expense) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	delete(s.expenses, id)

	onRollback(ctx, func() {
		s.mu.Lock()
		s.expenses[prev.ID] = prev
		s.mu.Unlock()
	})
	return nil
}
