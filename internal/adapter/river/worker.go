package river

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// EventWorker processes booking event jobs from the River queue.
// It records them in the log; confirmation mails hang off this later.
type EventWorker struct {
	river.WorkerDefaults[BookingEventArgs]
}

func (w *EventWorker) Work(ctx context.Context, job *river.Job[BookingEventArgs]) error {
	slog.InfoContext(ctx, "processing booking event",
		"event", job.Args.Event,
		"customer_id", job.Args.CustomerID,
		"tour_id", job.Args.TourID,
		"payment_status", job.Args.PaymentStatus,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}

// ReconcileArgs asks for one tour's booked count to be recomputed, or every
// tour's when TourID is empty.
type ReconcileArgs struct {
	TourID string `json:"tour_id,omitempty"`
}

func (ReconcileArgs) Kind() string { return "tour.reconcile" }

// Reconciler recomputes booked counts from customer rows.
type Reconciler interface {
	Reconcile(ctx context.Context, tourID string) (domain.Tour, error)
	ReconcileAll(ctx context.Context) (int, error)
}

// ReconcileWorker runs reconciliation jobs.
type ReconcileWorker struct {
	river.WorkerDefaults[ReconcileArgs]
	reconciler Reconciler
}

func (w *ReconcileWorker) Work(ctx context.Context, job *river.Job[ReconcileArgs]) error {
	if job.Args.TourID != "" {
		tour, err := w.reconciler.Reconcile(ctx, job.Args.TourID)
		if err != nil {
			return fmt.Errorf("reconciling tour %s: %w", job.Args.TourID, err)
		}
		slog.InfoContext(ctx, "tour reconciled",
			"tour_id", tour.ID,
			"booked_count", tour.BookedCount,
			"job_id", job.ID,
		)
		return nil
	}

	n, err := w.reconciler.ReconcileAll(ctx)
	if err != nil {
		return fmt.Errorf("reconciling tours: %w", err)
	}
	slog.InfoContext(ctx, "tours reconciled", "count", n, "job_id", job.ID)
	return nil
}
