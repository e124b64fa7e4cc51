package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/tourdesk/internal/adapter/fsm"
	handler "github.com/neomorfeo/tourdesk/internal/adapter/http"
	"github.com/neomorfeo/tourdesk/internal/adapter/otel"
	riveradapter "github.com/neomorfeo/tourdesk/internal/adapter/river"
	"github.com/neomorfeo/tourdesk/internal/adapter/sqlite"
	"github.com/neomorfeo/tourdesk/internal/app"
)

const (
	serviceName    = "tourdesk"
	serviceVersion = "0.1.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("tourdesk stopped", "error", err)
		os.Exit(1)
	}
}

// run wires every adapter, serves HTTP until SIGINT or SIGTERM, then shuts
// down in reverse order.
func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	providers, err := otel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	store, err := sqlite.NewFromDB(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()

	ledger, err := otel.NewTracingLedger(store.Ledger())
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	tourRepo := otel.NewTracingTourRepository(store.Tours())
	customerRepo := otel.NewTracingCustomerRepository(store.Customers())

	// --- Application ---
	tours := app.NewTourService(tourRepo, ledger, logger)

	queue, err := riveradapter.Setup(ctx, store.DB(), riveradapter.Config{
		Reconciler:        tours,
		ReconcileInterval: cfg.ReconcileInterval,
	})
	if err != nil {
		return fmt.Errorf("job queue: %w", err)
	}

	registrations := app.NewRegistrationService(app.RegistrationDeps{
		Tours:     tourRepo,
		Customers: customerRepo,
		Ledger:    ledger,
		Tx:        store,
		Publisher: otel.NewTracingPublisher(riveradapter.NewPublisher(queue)),
		Payments:  fsm.New(),
		Logger:    logger,
	})
	expenses := app.NewExpenseService(store.Expenses(), tourRepo)

	if cfg.SeedSampleData {
		n, err := app.SeedSampleTours(ctx, tours)
		if err != nil {
			return fmt.Errorf("seeding sample tours: %w", err)
		}
		if n > 0 {
			logger.Info("seeded sample tours", "count", n)
		}
	}

	if err := queue.Start(ctx); err != nil {
		return fmt.Errorf("starting job queue: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.Stop(stopCtx); err != nil {
			logger.Error("job queue shutdown", "error", err)
		}
	}()

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	api := humachi.New(router, huma.DefaultConfig(serviceName, serviceVersion))
	handler.Register(api, handler.Services{
		Registrations: registrations,
		Tours:         tours,
		Expenses:      expenses,
		Logger:        logger,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("tourdesk listening", "addr", srv.Addr, "docs", "http://localhost:"+cfg.Port+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
