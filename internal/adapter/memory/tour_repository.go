package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: TourRepository implements domain.TourRepository.
var _ domain.TourRepository = (*TourRepository)(nil)

type TourRepository struct {
	store *Store
}

func (r *TourRepository) Create(ctx context.Context, tour domain.Tour) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tour.BookedCount = 0
	s.tours[tour.ID] = tour
	s.seats[tour.ID] = &seat{max: tour.MaxCapacity}

	onRollback(ctx, func() {
		s.mu.Lock()
		delete(s.tours, tour.ID)
		delete(s.seats, tour.ID)
		s.mu.Unlock()
	})
	return nil
}

func (r *TourRepository) GetByID(_ context.Context, id string) (domain.Tour, error) {
	s := r.store
	s.mu.RLock()
	tour, ok := s.tours[id]
	st := s.seats[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Tour{}, domain.ErrTourNotFound
	}

	st.mu.Lock()
	tour.BookedCount = st.booked
	st.mu.Unlock()
	return tour, nil
}

// List returns tours ordered by start date.
func (r *TourRepository) List(ctx context.Context) ([]domain.Tour, error) {
	r.store.mu.RLock()
	ids := make([]string, 0, len(r.store.tours))
	for id := range r.store.tours {
		ids = append(ids, id)
	}
	r.store.mu.RUnlock()

	tours := make([]domain.Tour, 0, len(ids))
	for _, id := range ids {
		tour, err := r.GetByID(ctx, id)
		if err != nil {
			continue // deleted concurrently
		}
		tours = append(tours, tour)
	}

	slices.SortFunc(tours, func(a, b domain.Tour) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return tours, nil
}

// Update replaces the editable fields of a tour. The seat counter is kept,
// and capacity cannot drop below it.
func (r *TourRepository) Update(ctx context.Context, tour domain.Tour) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.tours[tour.ID]
	if !ok {
		return domain.ErrTourNotFound
	}
	st := s.seats[tour.ID]

	st.mu.Lock()
	defer st.mu.Unlock()
	if tour.MaxCapacity < st.booked {
		return &domain.CapacityConflictError{
			TourID:      tour.ID,
			MaxCapacity: tour.MaxCapacity,
			BookedCount: st.booked,
		}
	}

	prevMax := st.max
	st.max = tour.MaxCapacity
	tour.BookedCount = 0
	tour.CreatedAt = prev.CreatedAt
	s.tours[tour.ID] = tour

	onRollback(ctx, func() {
		s.mu.Lock()
		s.tours[prev.ID] = prev
		s.mu.Unlock()
		st.mu.Lock()
		st.max = prevMax
		st.mu.Unlock()
	})
	return nil
}

func (r *TourRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.tours[id]
	if !ok {
		return domain.ErrTourNotFound
	}

	var booked int
	for _, c := range s.customers {
		if c.TourID == id {
			booked++
		}
	}
	if booked > 0 {
		return &domain.TourInUseError{TourID: id, Customers: booked}
	}

	st := s.seats[id]
	delete(s.tours, id)
	delete(s.seats, id)

	// Expenses outlive their tour and become general expenses.
	var detached []string
	for eid, e := range s.expenses {
		if e.TourID == id {
			e.TourID = ""
			s.expenses[eid] = e
			detached = append(detached, eid)
		}
	}

	onRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tours[id] = prev
		s.seats[id] = st
		for _, eid := range detached {
			if e, ok := s.expenses[eid]; ok {
				e.TourID = id
				s.expenses[eid] = e
			}
		}
	})
	return nil
}
