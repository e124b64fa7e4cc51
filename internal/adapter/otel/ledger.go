package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// TracingLedger wraps a domain.CapacityLedger with a span per operation and
// counts operations by outcome in tourdesk.ledger.operations.
type TracingLedger struct {
	next       domain.CapacityLedger
	tracer     trace.Tracer
	operations metric.Int64Counter
}

// Compile-time check: TracingLedger implements domain.CapacityLedger.
var _ domain.CapacityLedger = (*TracingLedger)(nil)

func NewTracingLedger(next domain.CapacityLedger) (*TracingLedger, error) {
	operations, err := otel.Meter(instrumentationName).Int64Counter("tourdesk.ledger.operations",
		metric.WithDescription("Seat ledger operations by kind and outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ledger counter: %w", err)
	}

	return &TracingLedger{
		next:       next,
		tracer:     otel.Tracer(instrumentationName),
		operations: operations,
	}, nil
}

func (l *TracingLedger) Reserve(ctx context.Context, tourID string) error {
	ctx, span := l.start(ctx, "CapacityLedger.Reserve", tourID)

	err := l.next.Reserve(ctx, tourID)
	l.count(ctx, "reserve", err)
	finish(span, err)
	return err
}

func (l *TracingLedger) Release(ctx context.Context, tourID string) error {
	ctx, span := l.start(ctx, "CapacityLedger.Release", tourID)

	err := l.next.Release(ctx, tourID)
	l.count(ctx, "release", err)
	finish(span, err)
	return err
}

func (l *TracingLedger) Reconcile(ctx context.Context, tourID string) (int, error) {
	ctx, span := l.start(ctx, "CapacityLedger.Reconcile", tourID)

	booked, err := l.next.Reconcile(ctx, tourID)
	if err == nil {
		span.SetAttributes(attribute.Int("tour.booked_count", booked))
	}
	l.count(ctx, "reconcile", err)
	finish(span, err)
	return booked, err
}

func (l *TracingLedger) start(ctx context.Context, name, tourID string) (context.Context, trace.Span) {
	return l.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("tour.id", tourID)))
}

func (l *TracingLedger) count(ctx context.Context, op string, err error) {
	l.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome(err)),
	))
}

func outcome(err error) string {
	var full *domain.CapacityExceededError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &full):
		return "full"
	case errors.Is(err, domain.ErrTourNotFound):
		return "not_found"
	default:
		return "error"
	}
}
