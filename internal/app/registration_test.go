package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neomorfeo/tourdesk/internal/adapter/fsm"
	"github.com/neomorfeo/tourdesk/internal/adapter/memory"
	"github.com/neomorfeo/tourdesk/internal/app"
	"github.com/neomorfeo/tourdesk/internal/domain"
)

// --- Fakes ---

type publishedEvent struct {
	event    domain.BookingEvent
	customer domain.Customer
}

type mockPublisher struct {
	events []publishedEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, e domain.BookingEvent, c domain.Customer) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{event: e, customer: c})
	return nil
}

type fixture struct {
	store *memory.Store
	pub   *mockPublisher
	reg   *app.RegistrationService
	tours *app.TourService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	pub := &mockPublisher{}
	return &fixture{
		store: store,
		pub:   pub,
		reg: app.NewRegistrationService(app.RegistrationDeps{
			Tours:     store.Tours(),
			Customers: store.Customers(),
			Ledger:    store.Ledger(),
			Tx:        store,
			Publisher: pub,
			Payments:  fsm.New(),
		}),
		tours: app.NewTourService(store.Tours(), store.Ledger(), nil),
	}
}

func (f *fixture) tour(t *testing.T, capacity int) domain.Tour {
	t.Helper()
	tour, err := f.tours.Create(context.Background(), domain.TourDraft{
		Name:        "Magical Bhutan Adventure",
		Destination: "Thimphu, Paro, Punakha - Bhutan",
		StartDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC),
		Price:       85000,
		MaxCapacity: capacity,
	})
	if err != nil {
		t.Fatalf("creating tour: %v", err)
	}
	return tour
}

func (f *fixture) booked(t *testing.T, tourID string) int {
	t.Helper()
	tour, err := f.tours.Get(context.Background(), tourID)
	if err != nil {
		t.Fatalf("loading tour: %v", err)
	}
	return tour.BookedCount
}

func draft(tourID string) domain.CustomerDraft {
	return domain.CustomerDraft{
		TourID:        tourID,
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "asha@example.com",
		Mobile:        "+91 98765 43210",
		AadhaarNumber: "234123412346",
		PANNumber:     "abcde1234f",
	}
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)

	c, err := f.reg.Register(context.Background(), draft(tour.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.ID == "" {
		t.Error("ID should not be empty")
	}
	if c.PANNumber != "ABCDE1234F" {
		t.Errorf("PANNumber = %q, want upper-cased", c.PANNumber)
	}
	if c.PaymentStatus != domain.PaymentPending {
		t.Errorf("PaymentStatus = %q, want %q", c.PaymentStatus, domain.PaymentPending)
	}
	if got := f.booked(t, tour.ID); got != 1 {
		t.Errorf("BookedCount = %d, want 1", got)
	}

	if len(f.pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.pub.events))
	}
	if f.pub.events[0].event != domain.EventCustomerRegistered {
		t.Errorf("event = %q, want %q", f.pub.events[0].event, domain.EventCustomerRegistered)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.CustomerDraft)
		field string
		kind  domain.ValidationKind
	}{
		{"missing aadhaar", func(d *domain.CustomerDraft) { d.AadhaarNumber = "" }, "aadhaar_number", domain.KindRequired},
		{"short aadhaar", func(d *domain.CustomerDraft) { d.AadhaarNumber = "12345" }, "aadhaar_number", domain.KindFormat},
		{"uniform aadhaar", func(d *domain.CustomerDraft) { d.AadhaarNumber = "111111111111" }, "aadhaar_number", domain.KindFormat},
		{"aadhaar checksum", func(d *domain.CustomerDraft) { d.AadhaarNumber = "234123412345" }, "aadhaar_number", domain.KindChecksum},
		{"bad pan", func(d *domain.CustomerDraft) { d.PANNumber = "ABCD1234F" }, "pan_number", domain.KindFormat},
		{"bad mobile", func(d *domain.CustomerDraft) { d.Mobile = "5876543210" }, "mobile", domain.KindFormat},
		{"bad email", func(d *domain.CustomerDraft) { d.Email = "asha@example" }, "email", domain.KindFormat},
		{"missing first name", func(d *domain.CustomerDraft) { d.FirstName = "" }, "first_name", domain.KindRequired},
		{"missing tour", func(d *domain.CustomerDraft) { d.TourID = "" }, "tour_id", domain.KindRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tour := f.tour(t, 5)

			d := draft(tour.ID)
			tt.edit(&d)
			_, err := f.reg.Register(context.Background(), d)

			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field || vErr.Kind != tt.kind {
				t.Errorf("got %s/%s, want %s/%s", vErr.Field, vErr.Kind, tt.field, tt.kind)
			}

			customers, _ := f.reg.List(context.Background(), domain.CustomerFilter{})
			if len(customers) != 0 {
				t.Errorf("got %d customers, want 0", len(customers))
			}
			if got := f.booked(t, tour.ID); got != 0 {
				t.Errorf("BookedCount = %d, want 0", got)
			}
			if len(f.pub.events) != 0 {
				t.Errorf("expected no events, got %d", len(f.pub.events))
			}
		})
	}
}

func TestRegister_UnknownTour(t *testing.T) {
	f := newFixture(t)

	_, err := f.reg.Register(context.Background(), draft("missing"))

	var refErr *domain.ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
	if refErr.TourID != "missing" {
		t.Errorf("TourID = %q, want %q", refErr.TourID, "missing")
	}
	if !errors.Is(err, domain.ErrTourNotFound) {
		t.Error("ReferenceError should unwrap to ErrTourNotFound")
	}
}

func TestRegister_FullTourRollsBackCustomer(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 1)
	ctx := context.Background()

	if _, err := f.reg.Register(ctx, draft(tour.ID)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := f.reg.Register(ctx, draft(tour.ID))
	var capErr *domain.CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}

	customers, _ := f.reg.List(ctx, domain.CustomerFilter{TourID: tour.ID})
	if len(customers) != 1 {
		t.Errorf("got %d customers, want 1", len(customers))
	}
	if got := f.booked(t, tour.ID); got != 1 {
		t.Errorf("BookedCount = %d, want 1", got)
	}
}

func TestRegister_PublishFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	f.pub.err = errors.New("queue unavailable")

	c, err := f.reg.Register(context.Background(), draft(tour.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.reg.Get(context.Background(), c.ID); err != nil {
		t.Errorf("customer should be stored: %v", err)
	}
	if got := f.booked(t, tour.ID); got != 1 {
		t.Errorf("BookedCount = %d, want 1", got)
	}
}

// --- Update / Deregister ---

func TestUpdate_KeepsTourAndPayment(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	ctx := context.Background()

	c, _ := f.reg.Register(ctx, draft(tour.ID))
	if _, err := f.reg.RecordPayment(ctx, c.ID, app.Payment{Event: domain.EventPayPartial, Amount: 1000}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	d := draft("")
	d.City = "Pune"
	updated, err := f.reg.Update(ctx, c.ID, d)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.City != "Pune" {
		t.Errorf("City = %q, want %q", updated.City, "Pune")
	}
	if updated.TourID != tour.ID {
		t.Errorf("TourID = %q, want %q", updated.TourID, tour.ID)
	}
	if updated.PaymentStatus != domain.PaymentPartial || updated.AmountPaid != 1000 {
		t.Errorf("payment = %s/%v, want partial/1000", updated.PaymentStatus, updated.AmountPaid)
	}
	if got := f.booked(t, tour.ID); got != 1 {
		t.Errorf("BookedCount = %d, want 1", got)
	}
}

func TestUpdate_RejectsTourChange(t *testing.T) {
	f := newFixture(t)
	first := f.tour(t, 5)
	second := f.tour(t, 5)
	ctx := context.Background()

	c, _ := f.reg.Register(ctx, draft(first.ID))

	_, err := f.reg.Update(ctx, c.ID, draft(second.ID))
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "tour_id" {
		t.Fatalf("expected ValidationError on tour_id, got %v", err)
	}
}

func TestUpdate_InvalidChecksum(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	ctx := context.Background()

	c, _ := f.reg.Register(ctx, draft(tour.ID))

	d := draft(tour.ID)
	d.AadhaarNumber = "499118665247"
	_, err := f.reg.Update(ctx, c.ID, d)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Kind != domain.KindChecksum {
		t.Fatalf("expected checksum ValidationError, got %v", err)
	}

	stored, _ := f.reg.Get(ctx, c.ID)
	if stored.AadhaarNumber != "234123412346" {
		t.Errorf("AadhaarNumber = %q, should be unchanged", stored.AadhaarNumber)
	}
}

func TestDeregister_ReleasesSeat(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	ctx := context.Background()

	c, _ := f.reg.Register(ctx, draft(tour.ID))
	if err := f.reg.Deregister(ctx, c.ID); err != nil {
		t.Fatalf("Deregister failed: %v", err)
	}

	if _, err := f.reg.Get(ctx, c.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
	if got := f.booked(t, tour.ID); got != 0 {
		t.Errorf("BookedCount = %d, want 0", got)
	}
	if last := f.pub.events[len(f.pub.events)-1]; last.event != domain.EventCustomerDeregistered {
		t.Errorf("event = %q, want %q", last.event, domain.EventCustomerDeregistered)
	}
}

func TestDeregister_NotFoundLeavesLedger(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	ctx := context.Background()

	if _, err := f.reg.Register(ctx, draft(tour.ID)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := f.reg.Deregister(ctx, "nonexistent"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if got := f.booked(t, tour.ID); got != 1 {
		t.Errorf("BookedCount = %d, want 1", got)
	}
}

func TestRegisterDeregister_CountMatchesLiveCustomers(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 10)
	ctx := context.Background()

	var ids []string
	for range 6 {
		c, err := f.reg.Register(ctx, draft(tour.ID))
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		ids = append(ids, c.ID)
	}
	for _, id := range ids[:4] {
		if err := f.reg.Deregister(ctx, id); err != nil {
			t.Fatalf("Deregister failed: %v", err)
		}
	}

	if got := f.booked(t, tour.ID); got != 2 {
		t.Errorf("BookedCount = %d, want 2", got)
	}
}

// --- Payments ---

func TestRecordPayment_Lifecycle(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	ctx := context.Background()
	c, _ := f.reg.Register(ctx, draft(tour.ID))

	c, err := f.reg.RecordPayment(ctx, c.ID, app.Payment{Event: domain.EventPayPartial, Amount: 20000, Method: "upi"})
	if err != nil {
		t.Fatalf("pay_partial failed: %v", err)
	}
	if c.PaymentStatus != domain.PaymentPartial || c.AmountPaid != 20000 || c.PaymentMethod != "upi" {
		t.Errorf("got %s/%v/%s, want partial/20000/upi", c.PaymentStatus, c.AmountPaid, c.PaymentMethod)
	}

	c, err = f.reg.RecordPayment(ctx, c.ID, app.Payment{Event: domain.EventPayFull, Amount: 65000})
	if err != nil {
		t.Fatalf("pay_full failed: %v", err)
	}
	if c.PaymentStatus != domain.PaymentPaid || c.AmountPaid != 85000 {
		t.Errorf("got %s/%v, want paid/85000", c.PaymentStatus, c.AmountPaid)
	}

	c, err = f.reg.RecordPayment(ctx, c.ID, app.Payment{Event: domain.EventRefund})
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if c.PaymentStatus != domain.PaymentPending || c.AmountPaid != 0 {
		t.Errorf("got %s/%v, want pending/0", c.PaymentStatus, c.AmountPaid)
	}
}

func TestRecordPayment_InvalidTransition(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	ctx := context.Background()
	c, _ := f.reg.Register(ctx, draft(tour.ID))

	_, err := f.reg.RecordPayment(ctx, c.ID, app.Payment{Event: domain.EventRefund})
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Current != domain.PaymentPending {
		t.Errorf("current = %q, want %q", trErr.Current, domain.PaymentPending)
	}
}

func TestRecordPayment_RequiresAmount(t *testing.T) {
	f := newFixture(t)
	tour := f.tour(t, 5)
	ctx := context.Background()
	c, _ := f.reg.Register(ctx, draft(tour.ID))

	_, err := f.reg.RecordPayment(ctx, c.ID, app.Payment{Event: domain.EventPayFull})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "amount" {
		t.Fatalf("expected ValidationError on amount, got %v", err)
	}
}

func TestRecordPayment_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.reg.RecordPayment(context.Background(), "nonexistent", app.Payment{Event: domain.EventPayFull, Amount: 1})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}
