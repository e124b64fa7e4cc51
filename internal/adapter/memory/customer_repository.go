package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: CustomerRepository implements domain.CustomerRepository.
var _ domain.CustomerRepository = (*CustomerRepository)(nil)

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) Create(ctx context.Context, c domain.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tours[c.TourID]; !ok {
		return &domain.ReferenceError{TourID: c.TourID}
	}
	s.customers[c.ID] = c

	onRollback(ctx, func() {
		s.mu.Lock()
		delete(s.customers, c.ID)
		s.mu.Unlock()
	})
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return c, nil
}

// List returns customers in registration order.
func (r *CustomerRepository) List(_ context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		if filter.TourID != "" && c.TourID != filter.TourID {
			continue
		}
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b domain.Customer) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c domain.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.customers[c.ID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	s.customers[c.ID] = c

	onRollback(ctx, func() {
		s.mu.Lock()
		s.customers[prev.ID] = prev
		s.mu.Unlock()
	})
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	delete(s.customers, id)

	onRollback(ctx, func() {
		s.mu.Lock()
		s.customers[prev.ID] = prev
		s.mu.Unlock()
	})
	return nil
}
