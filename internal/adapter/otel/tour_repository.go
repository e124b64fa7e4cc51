package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// TracingTourRepository wraps a domain.TourRepository with OpenTelemetry tracing.
type TracingTourRepository struct {
	next   domain.TourRepository
	tracer trace.Tracer
}

// Compile-time check: TracingTourRepository implements domain.TourRepository.
var _ domain.TourRepository = (*TracingTourRepository)(nil)

func NewTracingTourRepository(next domain.TourRepository) *TracingTourRepository {
	return &TracingTourRepository{next: next, tracer: otel.Tracer(instrumentationName)}
}

func (r *TracingTourRepository) Create(ctx context.Context, tour domain.Tour) (err error) {
	ctx, span := r.tracer.Start(ctx, "TourRepository.Create",
		trace.WithAttributes(
			attribute.String("tour.id", tour.ID),
			attribute.Int("tour.max_capacity", tour.MaxCapacity),
		),
	)
	defer func() { finish(span, err) }()

	return r.next.Create(ctx, tour)
}

func (r *TracingTourRepository) GetByID(ctx context.Context, id string) (tour domain.Tour, err error) {
	ctx, span := r.tracer.Start(ctx, "TourRepository.GetByID",
		trace.WithAttributes(attribute.String("tour.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.GetByID(ctx, id)
}

func (r *TracingTourRepository) List(ctx context.Context) ([]domain.Tour, error) {
	ctx, span := r.tracer.Start(ctx, "TourRepository.List")

	tours, err := r.next.List(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(tours)))
	}
	finish(span, err)
	return tours, err
}

func (r *TracingTourRepository) Update(ctx context.Context, tour domain.Tour) (err error) {
	ctx, span := r.tracer.Start(ctx, "TourRepository.Update",
		trace.WithAttributes(
			attribute.String("tour.id", tour.ID),
			attribute.Int("tour.max_capacity", tour.MaxCapacity),
		),
	)
	defer func() { finish(span, err) }()

	return r.next.Update(ctx, tour)
}

func (r *TracingTourRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := r.tracer.Start(ctx, "TourRepository.Delete",
		trace.WithAttributes(attribute.String("tour.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.Delete(ctx, id)
}
