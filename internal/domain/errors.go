package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrTourNotFound     = errors.New("tour not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrExpenseNotFound  = errors.New("expense not found")
)

// ValidationKind classifies why a field was rejected.
type ValidationKind string

const (
	KindRequired ValidationKind = "required"
	KindFormat   ValidationKind = "format"
	KindChecksum ValidationKind = "checksum"
)

// ValidationError is returned when an input field fails a format or checksum check.
// It is always raised before any store is written.
type ValidationError struct {
	Field  string
	Kind   ValidationKind
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferenceError is returned when an input refers to a tour that does not exist.
type ReferenceError struct {
	TourID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("tour %q not found", e.TourID)
}

func (e *ReferenceError) Unwrap() error { return ErrTourNotFound }

// CapacityExceededError is returned when a reservation would take a tour past its capacity.
type CapacityExceededError struct {
	TourID      string
	MaxCapacity int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("tour %q is fully booked (capacity %d)", e.TourID, e.MaxCapacity)
}

// CapacityConflictError is returned when a tour's capacity would drop below its bookings.
type CapacityConflictError struct {
	TourID      string
	MaxCapacity int
	BookedCount int
}

func (e *CapacityConflictError) Error() string {
	return fmt.Sprintf("tour %q has %d bookings, capacity %d is too small", e.TourID, e.BookedCount, e.MaxCapacity)
}

// TourInUseError is returned when deleting a tour that still has customers.
type TourInUseError struct {
	TourID    string
	Customers int
}

func (e *TourInUseError) Error() string {
	return fmt.Sprintf("tour %q still has %d customers", e.TourID, e.Customers)
}

// TransitionError is returned when a payment event is not allowed from the current status.
type TransitionError struct {
	Event   PaymentEvent
	Current PaymentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from payment status %q", e.Event, e.Current)
}
