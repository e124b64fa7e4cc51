package domain

import "context"

// TourRepository defines the persistence contract for tours.
// Update never writes BookedCount; that is the ledger's job.
type TourRepository interface {
	Create(ctx context.Context, tour Tour) error
	GetByID(ctx context.Context, id string) (Tour, error)
	List(ctx context.Context) ([]Tour, error)
	Update(ctx context.Context, tour Tour) error
	Delete(ctx context.Context, id string) error
}

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer Customer) error
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]Customer, error)
	Update(ctx context.Context, customer Customer) error
	Delete(ctx context.Context, id string) error
}

// CustomerFilter holds optional criteria for listing customers.
type CustomerFilter struct {
	TourID string
}

// ExpenseRepository defines the persistence contract for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense Expense) error
	GetByID(ctx context.Context, id string) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Delete(ctx context.Context, id string) error
}

// ExpenseFilter holds optional criteria for listing expenses.
type ExpenseFilter struct {
	TourID string
}

// CapacityLedger owns every tour's booked-seat counter.
//
// Reserve and Release are atomic per tour: concurrent callers never lose an
// update, Reserve never exceeds MaxCapacity and Release never goes below zero.
// Reconcile recomputes the counter from the live customers of the tour.
type CapacityLedger interface {
	Reserve(ctx context.Context, tourID string) error
	Release(ctx context.Context, tourID string) error
	Reconcile(ctx context.Context, tourID string) (int, error)
}

// Transactor runs fn as a single unit of work. Stores participating through
// ctx either all commit or all roll back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher defines the contract for emitting booking events.
type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent, customer Customer) error
}

// TransitionValidator checks payment state changes.
type TransitionValidator interface {
	Apply(ctx context.Context, current PaymentStatus, event PaymentEvent) (PaymentStatus, error)
}
