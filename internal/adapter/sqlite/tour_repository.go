package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: TourRepository implements domain.TourRepository.
var _ domain.TourRepository = (*TourRepository)(nil)

// TourRepository implements domain.TourRepository using SQLite.
type TourRepository struct {
	store *Store
}

const tourColumns = `id, name, destination, start_date, end_date, price, transport_mode,
	description, image_url, max_capacity, booked_count, created_at, updated_at`

func (r *TourRepository) Create(ctx context.Context, t domain.Tour) error {
	_, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO tours (`+tourColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Destination,
		t.StartDate.Format(dateFormat), t.EndDate.Format(dateFormat),
		t.Price, t.TransportMode, t.Description, t.ImageURL,
		t.MaxCapacity, t.BookedCount,
		t.CreatedAt.Format(timeFormat),
		t.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting tour: %w", err)
	}
	return nil
}

func (r *TourRepository) GetByID(ctx context.Context, id string) (domain.Tour, error) {
	t, err := scanTour(r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT `+tourColumns+` FROM tours WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Tour{}, domain.ErrTourNotFound
	}
	return t, err
}

func (r *TourRepository) List(ctx context.Context) ([]domain.Tour, error) {
	rows, err := r.store.conn(ctx).QueryContext(ctx,
		`SELECT `+tourColumns+` FROM tours ORDER BY start_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing tours: %w", err)
	}
	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}

	return tours, rows.Err()
}

// Update writes the editable fields of t. BookedCount is ignored, and the
// update is refused if MaxCapacity would fall below the current bookings.
func (r *TourRepository) Update(ctx context.Context, t domain.Tour) error {
	q := r.store.conn(ctx)

	result, err := q.ExecContext(ctx,
		`UPDATE tours SET name = ?, destination = ?, start_date = ?, end_date = ?, price = ?,
		     transport_mode = ?, description = ?, image_url = ?, max_capacity = ?, updated_at = ?
		 WHERE id = ? AND booked_count <= ?`,
		t.Name, t.Destination,
		t.StartDate.Format(dateFormat), t.EndDate.Format(dateFormat),
		t.Price, t.TransportMode, t.Description, t.ImageURL, t.MaxCapacity,
		time.Now().UTC().Format(timeFormat),
		t.ID, t.MaxCapacity,
	)
	if err != nil {
		return fmt.Errorf("updating tour: %w", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var booked int
	err = q.QueryRowContext(ctx, `SELECT booked_count FROM tours WHERE id = ?`, t.ID).Scan(&booked)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrTourNotFound
	}
	if err != nil {
		return fmt.Errorf("reading booked count: %w", err)
	}
	return &domain.CapacityConflictError{TourID: t.ID, MaxCapacity: t.MaxCapacity, BookedCount: booked}
}

// Delete removes a tour that no customer references.
func (r *TourRepository) Delete(ctx context.Context, id string) error {
	q := r.store.conn(ctx)

	var customers int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE tour_id = ?`, id,
	).Scan(&customers); err != nil {
		return fmt.Errorf("counting tour customers: %w", err)
	}
	if customers > 0 {
		return &domain.TourInUseError{TourID: id, Customers: customers}
	}

	result, err := q.ExecContext(ctx, `DELETE FROM tours WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.TourInUseError{TourID: id}
		}
		return fmt.Errorf("deleting tour: %w", err)
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

func scanTour(row scanner) (domain.Tour, error) {
	var t domain.Tour
	var startDate, endDate, createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Name, &t.Destination, &startDate, &endDate, &t.Price,
		&t.TransportMode, &t.Description, &t.ImageURL, &t.MaxCapacity, &t.BookedCount,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tour{}, err
		}
		return domain.Tour{}, fmt.Errorf("scanning tour: %w", err)
	}

	t.StartDate, _ = time.Parse(dateFormat, startDate)
	t.EndDate, _ = time.Parse(dateFormat, endDate)
	t.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	t.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return t, nil
}
