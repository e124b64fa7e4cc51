package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// ExpenseResponse is the API representation of an expense.
type ExpenseResponse struct {
	ID          string  `json:"expense_id"`
	TourID      string  `json:"tour_id,omitempty" doc:"Empty for general expenses"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date" doc:"YYYY-MM-DD"`
	CreatedAt   string  `json:"created_at"`
}

func toExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		TourID:      e.TourID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format(dateFormat),
		CreatedAt:   e.CreatedAt.Format(timestampFormat),
	}
}

type CreateExpenseInput struct {
	Body struct {
		TourID      string  `json:"tour_id,omitempty" doc:"Tour the expense belongs to"`
		Category    string  `json:"category" minLength:"1" doc:"transport, accommodation, food, guides, ..."`
		Description string  `json:"description"`
		Amount      float64 `json:"amount" exclusiveMinimum:"0"`
		Date        string  `json:"date" format:"date"`
	}
}

type ExpenseIDInput struct {
	ID string `path:"id" doc:"Expense ID"`
}

type ListExpensesInput struct {
	TourID string `query:"tour_id" required:"false" doc:"Only expenses of this tour"`
}

type ExpenseOutput struct {
	Body ExpenseResponse
}

type ListExpensesOutput struct {
	Body []ExpenseResponse
}

func (h *handlers) registerExpenses(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-expenses",
		Method:      http.MethodGet,
		Path:        "/api/expenses",
		Summary:     "List expenses, newest first",
		Tags:        []string{"Expenses"},
	}, func(ctx context.Context, input *ListExpensesInput) (*ListExpensesOutput, error) {
		expenses, err := h.Expenses.List(ctx, domain.ExpenseFilter{TourID: input.TourID})
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}

		resp := make([]ExpenseResponse, len(expenses))
		for i, e := range expenses {
			resp[i] = toExpenseResponse(e)
		}
		return &ListExpensesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-expense",
		Method:      http.MethodPost,
		Path:        "/api/expenses",
		Summary:     "Record an expense",
		Tags:        []string{"Expenses"},
	}, func(ctx context.Context, input *CreateExpenseInput) (*ExpenseOutput, error) {
		date, err := parseDate("date", input.Body.Date)
		if err != nil {
			return nil, err
		}
		e, err := h.Expenses.Create(ctx, domain.ExpenseDraft{
			TourID:      input.Body.TourID,
			Category:    input.Body.Category,
			Description: input.Body.Description,
			Amount:      input.Body.Amount,
			Date:        date,
		})
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &ExpenseOutput{Body: toExpenseResponse(e)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-expense",
		Method:      http.MethodGet,
		Path:        "/api/expenses/{id}",
		Summary:     "Get an expense by ID",
		Tags:        []string{"Expenses"},
	}, func(ctx context.Context, input *ExpenseIDInput) (*ExpenseOutput, error) {
		e, err := h.Expenses.Get(ctx, input.ID)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &ExpenseOutput{Body: toExpenseResponse(e)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-expense",
		Method:        http.MethodDelete,
		Path:          "/api/expenses/{id}",
		Summary:       "Delete an expense",
		Tags:          []string{"Expenses"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *ExpenseIDInput) (*struct{}, error) {
		if err := h.Expenses.Delete(ctx, input.ID); err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return nil, nil
	})
}
