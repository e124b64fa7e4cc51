package memory

import (
	"context"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: Ledger implements domain.CapacityLedger.
var _ domain.CapacityLedger = (*Ledger)(nil)

// Ledger implements domain.CapacityLedger with one mutex per tour, so
// bookings on different tours never contend.
type Ledger struct {
	store *Store
}

func (l *Ledger) Reserve(ctx context.Context, tourID string) error {
	st := l.store.seatFor(tourID)
	if st == nil {
		return domain.ErrTourNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.booked >= st.max {
		return &domain.CapacityExceededError{TourID: tourID, MaxCapacity: st.max}
	}
	st.booked++

	onRollback(ctx, func() {
		st.mu.Lock()
		if st.booked > 0 {
			st.booked--
		}
		st.mu.Unlock()
	})
	return nil
}

// Release frees one seat. Releasing from an empty tour leaves it at zero.
func (l *Ledger) Release(ctx context.Context, tourID string) error {
	st := l.store.seatFor(tourID)
	if st == nil {
		return domain.ErrTourNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.booked == 0 {
		return nil
	}
	st.booked--

	onRollback(ctx, func() {
		st.mu.Lock()
		st.booked++
		st.mu.Unlock()
	})
	return nil
}

// Reconcile sets the counter to the number of customers booked on the tour.
func (l *Ledger) Reconcile(ctx context.Context, tourID string) (int, error) {
	s := l.store
	s.mu.RLock()
	st := s.seats[tourID]
	var booked int
	for _, c := range s.customers {
		if c.TourID == tourID {
			booked++
		}
	}
	s.mu.RUnlock()
	if st == nil {
		return 0, domain.ErrTourNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	prev := st.booked
	st.booked = booked

	onRollback(ctx, func() {
		st.mu.Lock()
		st.booked = prev
		st.mu.Unlock()
	})
	return booked, nil
}
