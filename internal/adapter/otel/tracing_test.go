package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/neomorfeo/tourdesk/internal/adapter/memory"
	adapter "github.com/neomorfeo/tourdesk/internal/adapter/otel"
	"github.com/neomorfeo/tourdesk/internal/domain"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	tour := domain.NewTour("t-1", domain.TourDraft{
		Name:        "Sri Lanka Cultural Paradise",
		Destination: "Colombo - Sri Lanka",
		StartDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC),
		MaxCapacity: 1,
	})
	if err := store.Tours().Create(context.Background(), tour); err != nil {
		t.Fatalf("creating tour: %v", err)
	}
	return store
}

func onlySpan(t *testing.T, exporter *tracetest.InMemoryExporter) tracetest.SpanStub {
	t.Helper()
	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	return spans[0]
}

// assertAttribute checks that a span has an attribute with the given key and string value.
func assertAttribute(t *testing.T, span tracetest.SpanStub, key, want string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			got := attr.Value.Emit()
			if got != want {
				t.Errorf("attribute %q = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Errorf("attribute %q not found on span %q", key, span.Name)
}

// --- Tours ---

func TestTracingTourRepository_GetByID_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingTourRepository(seededStore(t).Tours())

	if _, err := repo.GetByID(context.Background(), "t-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	span := onlySpan(t, exporter)
	if span.Name != "TourRepository.GetByID" {
		t.Errorf("span name = %q, want %q", span.Name, "TourRepository.GetByID")
	}
	assertAttribute(t, span, "tour.id", "t-1")
}

func TestTracingTourRepository_GetByID_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingTourRepository(seededStore(t).Tours())

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}

	span := onlySpan(t, exporter)
	if span.Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", span.Status.Code, codes.Error)
	}
	if len(span.Events) == 0 {
		t.Error("expected error event on span")
	}
}

func TestTracingTourRepository_List_RecordsResultCount(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingTourRepository(seededStore(t).Tours())

	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertAttribute(t, onlySpan(t, exporter), "result.count", "1")
}

// --- Customers ---

func TestTracingCustomerRepository_Create_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingCustomerRepository(seededStore(t).Customers())

	c := domain.NewCustomer("c-1", domain.CustomerDraft{TourID: "t-1", AadhaarNumber: "234123412346"})
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	span := onlySpan(t, exporter)
	if span.Name != "CustomerRepository.Create" {
		t.Errorf("span name = %q, want %q", span.Name, "CustomerRepository.Create")
	}
	assertAttribute(t, span, "customer.id", "c-1")
	assertAttribute(t, span, "tour.id", "t-1")
	assertAttribute(t, span, "customer.payment_status", "pending")

	for _, attr := range span.Attributes {
		if attr.Value.Emit() == "234123412346" {
			t.Errorf("attribute %q carries the Aadhaar number", attr.Key)
		}
	}
}

func TestTracingCustomerRepository_List_RecordsFilter(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingCustomerRepository(seededStore(t).Customers())

	if _, err := repo.List(context.Background(), domain.CustomerFilter{TourID: "t-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	span := onlySpan(t, exporter)
	assertAttribute(t, span, "filter.tour_id", "t-1")
	assertAttribute(t, span, "result.count", "0")
}

func TestTracingCustomerRepository_Delete_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingCustomerRepository(seededStore(t).Customers())

	if err := repo.Delete(context.Background(), "nonexistent"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}

	if span := onlySpan(t, exporter); span.Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", span.Status.Code, codes.Error)
	}
}
