package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

func TestCustomer_Create_And_GetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustCreateTour(t, store, newTour("t-1", 5))

	c := newCustomer("c-1", "t-1")
	c.PANNumber = "ABCDE1234F"
	mustCreateCustomer(t, store, c)

	got, err := store.Customers().GetByID(ctx, "c-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.TourID != "t-1" {
		t.Errorf("TourID = %q, want %q", got.TourID, "t-1")
	}
	if got.AadhaarNumber != "234123412346" {
		t.Errorf("AadhaarNumber = %q, want %q", got.AadhaarNumber, "234123412346")
	}
	if got.PANNumber != "ABCDE1234F" {
		t.Errorf("PANNumber = %q, want %q", got.PANNumber, "ABCDE1234F")
	}
	if got.PaymentStatus != domain.PaymentPending {
		t.Errorf("PaymentStatus = %q, want %q", got.PaymentStatus, domain.PaymentPending)
	}
	if got.DateOfBirth.Format("2006-01-02") != "1990-05-17" {
		t.Errorf("DateOfBirth = %v, want 1990-05-17", got.DateOfBirth)
	}
}

func TestCustomer_Create_UnknownTour(t *testing.T) {
	store := newTestStore(t)

	err := store.Customers().Create(context.Background(), newCustomer("c-1", "missing"))

	var refErr *domain.ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
}

func TestCustomer_GetByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Customers().GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomer_List_FilterByTour(t *testing.T) {
	store := newTestStore(t)
	mustCreateTour(t, store, newTour("t-1", 5))
	mustCreateTour(t, store, newTour("t-2", 5))
	mustCreateCustomer(t, store, newCustomer("c-1", "t-1"))
	mustCreateCustomer(t, store, newCustomer("c-2", "t-1"))
	mustCreateCustomer(t, store, newCustomer("c-3", "t-2"))

	all, err := store.Customers().List(context.Background(), domain.CustomerFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d customers, want 3", len(all))
	}

	filtered, err := store.Customers().List(context.Background(), domain.CustomerFilter{TourID: "t-1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("got %d customers, want 2", len(filtered))
	}
}

func TestCustomer_Update(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustCreateTour(t, store, newTour("t-1", 5))

	c := newCustomer("c-1", "t-1")
	mustCreateCustomer(t, store, c)

	c.City = "Mysuru"
	c.PaymentStatus = domain.PaymentPartial
	c.AmountPaid = 20000
	if err := store.Customers().Update(ctx, c); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := store.Customers().GetByID(ctx, "c-1")
	if got.City != "Mysuru" {
		t.Errorf("City = %q, want %q", got.City, "Mysuru")
	}
	if got.PaymentStatus != domain.PaymentPartial {
		t.Errorf("PaymentStatus = %q, want %q", got.PaymentStatus, domain.PaymentPartial)
	}
	if got.AmountPaid != 20000 {
		t.Errorf("AmountPaid = %v, want 20000", got.AmountPaid)
	}
}

func TestCustomer_Update_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Customers().Update(context.Background(), newCustomer("nonexistent", "t-1"))
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomer_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustCreateTour(t, store, newTour("t-1", 5))
	mustCreateCustomer(t, store, newCustomer("c-1", "t-1"))

	if err := store.Customers().Delete(ctx, "c-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Customers().Delete(ctx, "c-1"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("second delete: expected ErrCustomerNotFound, got %v", err)
	}
}
