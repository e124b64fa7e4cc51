package river

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riversqlite"
	"github.com/riverqueue/river/rivermigrate"
)

// Config controls which workers Setup registers.
type Config struct {
	// Reconciler enables the reconcile worker. When nil, only booking
	// events are processed.
	Reconciler Reconciler

	// ReconcileInterval schedules a sweep over every tour, starting at
	// client start. Zero disables the periodic job.
	ReconcileInterval time.Duration
}

// Setup creates a River client with the workers registered and runs River's
// internal migrations. The caller must call client.Start() to begin
// processing jobs and client.Stop() for graceful shutdown.
func Setup(ctx context.Context, db *sql.DB, cfg Config) (*Client, error) {
	driver := riversqlite.New(db)

	// River's own tables (river_job, river_leader, ...) are separate from
	// the application's goose migrations.
	migrator, err := rivermigrate.New(driver, nil)
	if err != nil {
		return nil, fmt.Errorf("creating river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		return nil, fmt.Errorf("running river migrations: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &EventWorker{})

	var periodic []*river.PeriodicJob
	if cfg.Reconciler != nil {
		river.AddWorker(workers, &ReconcileWorker{reconciler: cfg.Reconciler})

		if cfg.ReconcileInterval > 0 {
			periodic = append(periodic, river.NewPeriodicJob(
				river.PeriodicInterval(cfg.ReconcileInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return ReconcileArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			))
		}
	}

	client, err := river.NewClient(driver, &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 2},
		},
		Workers:      workers,
		PeriodicJobs: periodic,
	})
	if err != nil {
		return nil, fmt.Errorf("creating river client: %w", err)
	}

	return client, nil
}
