package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// BookingEventArgs is a snapshot of a booking at the time the event was
// published, so the worker never needs to query the database. Identity
// document numbers are not carried.
type BookingEventArgs struct {
	Event         string  `json:"event"`
	CustomerID    string  `json:"customer_id"`
	TourID        string  `json:"tour_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	PaymentStatus string  `json:"payment_status"`
	AmountPaid    float64 `json:"amount_paid"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (BookingEventArgs) Kind() string { return "booking.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, event domain.BookingEvent, c domain.Customer) error {
	_, err := p.client.Insert(ctx, BookingEventArgs{
		Event:         string(event),
		CustomerID:    c.ID,
		TourID:        c.TourID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		PaymentStatus: string(c.PaymentStatus),
		AmountPaid:    c.AmountPaid,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing booking event job: %w", err)
	}
	return nil
}
