package domain

import "time"

// Customer is a traveller booked on exactly one tour.
type Customer struct {
	ID     string
	TourID string

	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string

	Email   string
	Mobile  string
	Address string
	City    string
	State   string
	Pincode string

	AadhaarNumber string
	PANNumber     string // empty when not supplied; upper-cased otherwise

	EmergencyContactName   string
	EmergencyContactNumber string
	SpecialRequirements    string

	PaymentStatus PaymentStatus
	AmountPaid    float64
	PaymentMethod string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerDraft is the unvalidated input for registering or updating a customer.
type CustomerDraft struct {
	TourID string

	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string

	Email   string
	Mobile  string
	Address string
	City    string
	State   string
	Pincode string

	AadhaarNumber string
	PANNumber     string

	EmergencyContactName   string
	EmergencyContactNumber string
	SpecialRequirements    string
	PaymentMethod          string
}

// NewCustomer creates a customer with no payment recorded yet.
func NewCustomer(id string, d CustomerDraft) Customer {
	now := time.Now().UTC()
	c := Customer{
		ID:            id,
		TourID:        d.TourID,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	c.Apply(d)
	return c
}

// Apply copies the draft's editable fields onto c. Payment state and the
// tour reference are left alone.
func (c *Customer) Apply(d CustomerDraft) {
	c.FirstName = d.FirstName
	c.LastName = d.LastName
	c.DateOfBirth = d.DateOfBirth
	c.Gender = d.Gender
	c.Email = d.Email
	c.Mobile = d.Mobile
	c.Address = d.Address
	c.City = d.City
	c.State = d.State
	c.Pincode = d.Pincode
	c.AadhaarNumber = d.AadhaarNumber
	c.PANNumber = d.PANNumber
	c.EmergencyContactName = d.EmergencyContactName
	c.EmergencyContactNumber = d.EmergencyContactNumber
	c.SpecialRequirements = d.SpecialRequirements
	if d.PaymentMethod != "" {
		c.PaymentMethod = d.PaymentMethod
	}
}

// BookingEvent names something that happened to a customer's booking.
type BookingEvent string

const (
	EventCustomerRegistered   BookingEvent = "customer_registered"
	EventCustomerUpdated      BookingEvent = "customer_updated"
	EventCustomerDeregistered BookingEvent = "customer_deregistered"
	EventPaymentRecorded      BookingEvent = "payment_recorded"
)
