package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// ExpenseService records business expenses, optionally against a tour.
type ExpenseService struct {
	expenses domain.ExpenseRepository
	tours    domain.TourRepository
}

func NewExpenseService(expenses domain.ExpenseRepository, tours domain.TourRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses, tours: tours}
}

func (s *ExpenseService) Create(ctx context.Context, d domain.ExpenseDraft) (domain.Expense, error) {
	if err := d.Validate(); err != nil {
		return domain.Expense{}, err
	}

	if d.TourID != "" {
		if _, err := s.tours.GetByID(ctx, d.TourID); err != nil {
			if errors.Is(err, domain.ErrTourNotFound) {
				return domain.Expense{}, &domain.ReferenceError{TourID: d.TourID}
			}
			return domain.Expense{}, fmt.Errorf("loading tour: %w", err)
		}
	}

	expense := domain.NewExpense(generateID(), d)
	if err := s.expenses.Create(ctx, expense); err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (domain.Expense, error) {
	return s.expenses.GetByID(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	return s.expenses.List(ctx, filter)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.expenses.Delete(ctx, id)
}
