package domain

// PaymentStatus is the closed set of payment states of a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ParsePaymentStatus reports whether s names a known payment status.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return PaymentStatus(s), true
	}
	return "", false
}

// PaymentEvent is an action that moves a booking between payment states.
type PaymentEvent string

const (
	EventPayPartial PaymentEvent = "pay_partial"
	EventPayFull    PaymentEvent = "pay_full"
	EventRefund     PaymentEvent = "refund"
)

// Transition defines a valid state change: an event moves a booking from Src to Dst.
type Transition struct {
	Event PaymentEvent
	Src   PaymentStatus
	Dst   PaymentStatus
}

// PaymentTransitions lists every allowed payment state change.
// Consumed by the FSM adapter.
var PaymentTransitions = []Transition{
	{Event: EventPayPartial, Src: PaymentPending, Dst: PaymentPartial},
	{Event: EventPayFull, Src: PaymentPending, Dst: PaymentPaid},
	{Event: EventPayFull, Src: PaymentPartial, Dst: PaymentPaid},
	{Event: EventRefund, Src: PaymentPartial, Dst: PaymentPending},
	{Event: EventRefund, Src: PaymentPaid, Dst: PaymentPending},
}
