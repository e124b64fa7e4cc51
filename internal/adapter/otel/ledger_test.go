package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	adapter "github.com/neomorfeo/tourdesk/internal/adapter/otel"
	"github.com/neomorfeo/tourdesk/internal/domain"
)

func setupTestMeter(t *testing.T) *sdkmetric.ManualReader {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return reader
}

// operationCount returns the ledger counter value for one operation/outcome pair.
func operationCount(t *testing.T, reader *sdkmetric.ManualReader, op, outcome string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collecting metrics: %v", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "tourdesk.ledger.operations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				gotOp, _ := dp.Attributes.Value(attribute.Key("operation"))
				gotOutcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
				if gotOp.AsString() == op && gotOutcome.AsString() == outcome {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestTracingLedger_CountsOutcomes(t *testing.T) {
	setupTestTracer(t)
	reader := setupTestMeter(t)
	ledger, err := adapter.NewTracingLedger(seededStore(t).Ledger())
	if err != nil {
		t.Fatalf("NewTracingLedger failed: %v", err)
	}
	ctx := context.Background()

	if err := ledger.Reserve(ctx, "t-1"); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	var full *domain.CapacityExceededError
	if err := ledger.Reserve(ctx, "t-1"); !errors.As(err, &full) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
	if err := ledger.Release(ctx, "missing"); !errors.Is(err, domain.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}

	if got := operationCount(t, reader, "reserve", "ok"); got != 1 {
		t.Errorf("reserve/ok = %d, want 1", got)
	}
	if got := operationCount(t, reader, "reserve", "full"); got != 1 {
		t.Errorf("reserve/full = %d, want 1", got)
	}
	if got := operationCount(t, reader, "release", "not_found"); got != 1 {
		t.Errorf("release/not_found = %d, want 1", got)
	}
}

func TestTracingLedger_Reconcile_RecordsBookedCount(t *testing.T) {
	exporter := setupTestTracer(t)
	setupTestMeter(t)
	ledger, err := adapter.NewTracingLedger(seededStore(t).Ledger())
	if err != nil {
		t.Fatalf("NewTracingLedger failed: %v", err)
	}

	if _, err := ledger.Reconcile(context.Background(), "t-1"); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	span := onlySpan(t, exporter)
	if span.Name != "CapacityLedger.Reconcile" {
		t.Errorf("span name = %q, want %q", span.Name, "CapacityLedger.Reconcile")
	}
	assertAttribute(t, span, "tour.id", "t-1")
	assertAttribute(t, span, "tour.booked_count", "0")
}

func TestTracingLedger_Reserve_FullMarksSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	setupTestMeter(t)
	ledger, err := adapter.NewTracingLedger(seededStore(t).Ledger())
	if err != nil {
		t.Fatalf("NewTracingLedger failed: %v", err)
	}
	ctx := context.Background()

	_ = ledger.Reserve(ctx, "t-1")
	_ = ledger.Reserve(ctx, "t-1")

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[1].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[1].Status.Code, codes.Error)
	}
}
