package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// TracingCustomerRepository wraps a domain.CustomerRepository with
// OpenTelemetry tracing. Identity numbers never become span attributes.
type TracingCustomerRepository struct {
	next   domain.CustomerRepository
	tracer trace.Tracer
}

// Compile-time check: TracingCustomerRepository implements domain.CustomerRepository.
var _ domain.CustomerRepository = (*TracingCustomerRepository)(nil)

func NewTracingCustomerRepository(next domain.CustomerRepository) *TracingCustomerRepository {
	return &TracingCustomerRepository{next: next, tracer: otel.Tracer(instrumentationName)}
}

func customerAttributes(c domain.Customer) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("customer.id", c.ID),
		attribute.String("tour.id", c.TourID),
		attribute.String("customer.payment_status", string(c.PaymentStatus)),
	)
}

func (r *TracingCustomerRepository) Create(ctx context.Context, c domain.Customer) (err error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.Create", customerAttributes(c))
	defer func() { finish(span, err) }()

	return r.next.Create(ctx, c)
}

func (r *TracingCustomerRepository) GetByID(ctx context.Context, id string) (c domain.Customer, err error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.GetByID",
		trace.WithAttributes(attribute.String("customer.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.GetByID(ctx, id)
}

func (r *TracingCustomerRepository) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.List")
	if filter.TourID != "" {
		span.SetAttributes(attribute.String("filter.tour_id", filter.TourID))
	}

	customers, err := r.next.List(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(customers)))
	}
	finish(span, err)
	return customers, err
}

func (r *TracingCustomerRepository) Update(ctx context.Context, c domain.Customer) (err error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.Update", customerAttributes(c))
	defer func() { finish(span, err) }()

	return r.next.Update(ctx, c)
}

func (r *TracingCustomerRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.Delete",
		trace.WithAttributes(attribute.String("customer.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.Delete(ctx, id)
}
