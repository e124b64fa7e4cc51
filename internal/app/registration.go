package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// RegistrationDeps groups the adapters the registration service needs.
type RegistrationDeps struct {
	Tours     domain.TourRepository
	Customers domain.CustomerRepository
	Ledger    domain.CapacityLedger
	Tx        domain.Transactor
	Publisher domain.EventPublisher
	Payments  domain.TransitionValidator
	Logger    *slog.Logger
}

// RegistrationService owns the customer lifecycle. It validates identity
// documents before touching any store and keeps every tour's seat counter
// in step with its customers.
type RegistrationService struct {
	tours     domain.TourRepository
	customers domain.CustomerRepository
	ledger    domain.CapacityLedger
	tx        domain.Transactor
	publisher domain.EventPublisher
	payments  domain.TransitionValidator
	logger    *slog.Logger
}

func NewRegistrationService(deps RegistrationDeps) *RegistrationService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{
		tours:     deps.Tours,
		customers: deps.Customers,
		ledger:    deps.Ledger,
		tx:        deps.Tx,
		publisher: deps.Publisher,
		payments:  deps.Payments,
		logger:    logger,
	}
}

// Register validates the draft, then stores the customer and reserves a seat
// on its tour in one transaction. Either both happen or neither does.
func (s *RegistrationService) Register(ctx context.Context, d domain.CustomerDraft) (domain.Customer, error) {
	if err := validateCustomer(&d); err != nil {
		return domain.Customer{}, err
	}
	if d.TourID == "" {
		return domain.Customer{}, required("tour_id")
	}

	if _, err := s.tours.GetByID(ctx, d.TourID); err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			return domain.Customer{}, &domain.ReferenceError{TourID: d.TourID}
		}
		return domain.Customer{}, fmt.Errorf("loading tour: %w", err)
	}

	customer := domain.NewCustomer(generateID(), d)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.customers.Create(ctx, customer); err != nil {
			return err
		}
		return s.ledger.Reserve(ctx, customer.TourID)
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.publish(ctx, domain.EventCustomerRegistered, customer)
	return customer, nil
}

// Update re-validates and replaces a customer's editable fields. It never
// moves a customer between tours and leaves payment state alone.
func (s *RegistrationService) Update(ctx context.Context, id string, d domain.CustomerDraft) (domain.Customer, error) {
	if err := validateCustomer(&d); err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if d.TourID != "" && d.TourID != customer.TourID {
		return domain.Customer{}, &domain.ValidationError{Field: "tour_id", Kind: domain.KindFormat,
			Reason: "a customer cannot be moved to another tour; deregister and register again"}
	}

	customer.Apply(d)
	customer.UpdatedAt = time.Now().UTC()

	if err := s.customers.Update(ctx, customer); err != nil {
		return domain.Customer{}, fmt.Errorf("updating customer: %w", err)
	}

	s.publish(ctx, domain.EventCustomerUpdated, customer)
	return customer, nil
}

// Deregister deletes a customer and frees their seat in one transaction.
func (s *RegistrationService) Deregister(ctx context.Context, id string) error {
	var customer domain.Customer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		customer, err = s.customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.customers.Delete(ctx, id); err != nil {
			return err
		}
		return s.ledger.Release(ctx, customer.TourID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, domain.EventCustomerDeregistered, customer)
	return nil
}

// Payment is a payment action against a booking.
type Payment struct {
	Event  domain.PaymentEvent
	Amount float64
	Method string
}

// RecordPayment moves a customer's payment status along the payment state
// machine. Payments add to the amount paid; a refund resets it.
func (s *RegistrationService) RecordPayment(ctx context.Context, id string, p Payment) (domain.Customer, error) {
	if p.Event != domain.EventRefund && p.Amount <= 0 {
		return domain.Customer{}, &domain.ValidationError{Field: "amount", Kind: domain.KindFormat,
			Reason: "amount must be positive"}
	}

	var customer domain.Customer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		customer, err = s.customers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		next, err := s.payments.Apply(ctx, customer.PaymentStatus, p.Event)
		if err != nil {
			return err
		}

		customer.PaymentStatus = next
		if p.Event == domain.EventRefund {
			customer.AmountPaid = 0
		} else {
			customer.AmountPaid += p.Amount
		}
		if p.Method != "" {
			customer.PaymentMethod = p.Method
		}
		customer.UpdatedAt = time.Now().UTC()

		return s.customers.Update(ctx, customer)
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.publish(ctx, domain.EventPaymentRecorded, customer)
	return customer, nil
}

func (s *RegistrationService) Get(ctx context.Context, id string) (domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *RegistrationService) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	return s.customers.List(ctx, filter)
}

// publish emits a booking event after the write has committed. The booking
// stands even if the event is lost, so failures are only logged.
func (s *RegistrationService) publish(ctx context.Context, event domain.BookingEvent, c domain.Customer) {
	if err := s.publisher.Publish(ctx, event, c); err != nil {
		s.logger.ErrorContext(ctx, "publishing booking event",
			"event", event,
			"customer_id", c.ID,
			"tour_id", c.TourID,
			"error", err,
		)
	}
}
