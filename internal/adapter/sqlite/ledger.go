package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: Ledger implements domain.CapacityLedger.
var _ domain.CapacityLedger = (*Ledger)(nil)

// Ledger implements domain.CapacityLedger on the tours.booked_count column.
// Every change is one conditional UPDATE, so the bound and the floor hold
// without a read-then-write window.
type Ledger struct {
	store *Store
}

func (l *Ledger) Reserve(ctx context.Context, tourID string) error {
	q := l.store.conn(ctx)

	result, err := q.ExecContext(ctx,
		`UPDATE tours SET booked_count = booked_count + 1, updated_at = ?
		 WHERE id = ? AND booked_count < max_capacity`,
		time.Now().UTC().Format(timeFormat), tourID,
	)
	if err != nil {
		return fmt.Errorf("reserving seat: %w", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var capacity int
	err = q.QueryRowContext(ctx, `SELECT max_capacity FROM tours WHERE id = ?`, tourID).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrTourNotFound
	}
	if err != nil {
		return fmt.Errorf("reading capacity: %w", err)
	}
	return &domain.CapacityExceededError{TourID: tourID, MaxCapacity: capacity}
}

// Release frees one seat. Releasing from an empty tour leaves it at zero.
func (l *Ledger) Release(ctx context.Context, tourID string) error {
	result, err := l.store.conn(ctx).ExecContext(ctx,
		`UPDATE tours SET booked_count = MAX(booked_count - 1, 0), updated_at = ?
		 WHERE id = ?`,
		time.Now().UTC().Format(timeFormat), tourID,
	)
	if err != nil {
		return fmt.Errorf("releasing seat: %w", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}

// Reconcile sets booked_count to the number of customers booked on the tour.
func (l *Ledger) Reconcile(ctx context.Context, tourID string) (int, error) {
	var booked int
	err := l.store.conn(ctx).QueryRowContext(ctx,
		`UPDATE tours
		 SET booked_count = (SELECT COUNT(*) FROM customers WHERE customers.tour_id = tours.id),
		     updated_at = ?
		 WHERE id = ?
		 RETURNING booked_count`,
		time.Now().UTC().Format(timeFormat), tourID,
	).Scan(&booked)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrTourNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("reconciling tour: %w", err)
	}
	return booked, nil
}
