package domain

import "time"

// Expense is money spent running the business, optionally attributed to a tour.
type Expense struct {
	ID          string
	TourID      string // empty for general expenses
	Category    string // transport, accommodation, food, guides, ...
	Description string
	Amount      float64
	Date        time.Time
	CreatedAt   time.Time
}

// ExpenseDraft is the input for recording an expense.
type ExpenseDraft struct {
	TourID      string
	Category    string
	Description string
	Amount      float64
	Date        time.Time
}

func NewExpense(id string, d ExpenseDraft) Expense {
	return Expense{
		ID:          id,
		TourID:      d.TourID,
		Category:    d.Category,
		Description: d.Description,
		Amount:      d.Amount,
		Date:        d.Date,
		CreatedAt:   time.Now().UTC(),
	}
}

func (d ExpenseDraft) Validate() error {
	if d.Category == "" {
		return &ValidationError{Field: "category", Kind: KindRequired, Reason: "category is required"}
	}
	if d.Amount <= 0 {
		return &ValidationError{Field: "amount", Kind: KindFormat, Reason: "amount must be positive"}
	}
	return nil
}
