package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: ExpenseRepository implements domain.ExpenseRepository.
var _ domain.ExpenseRepository = (*ExpenseRepository)(nil)

// ExpenseRepository implements domain.ExpenseRepository using SQLite.
type ExpenseRepository struct {
	store *Store
}

const expenseColumns = `id, tour_id, category, description, amount, date, created_at`

func (r *ExpenseRepository) Create(ctx context.Context, e domain.Expense) error {
	_, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, nullable(e.TourID), e.Category, e.Description, e.Amount,
		e.Date.Format(dateFormat), e.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.ReferenceError{TourID: e.TourID}
		}
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (domain.Expense, error) {
	e, err := scanExpense(r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Expense{}, domain.ErrExpenseNotFound
	}
	return e, err
}

func (r *ExpenseRepository) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	var args []any

	if filter.TourID != "" {
		query += ` WHERE tour_id = ?`
		args = append(args, filter.TourID)
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.store.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.store.conn(ctx).ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row scanner) (domain.Expense, error) {
	var e domain.Expense
	var tourID sql.NullString
	var date, createdAt string

	err := row.Scan(&e.ID, &tourID, &e.Category, &e.Description, &e.Amount, &date, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Expense{}, err
		}
		return domain.Expense{}, fmt.Errorf("scanning expense: %w", err)
	}

	e.TourID = tourID.String
	e.Date, _ = time.Parse(dateFormat, date)
	e.CreatedAt, _ = time.Parse(timeFormat, createdAt)

	return e, nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
