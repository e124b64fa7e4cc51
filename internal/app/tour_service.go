package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// TourService manages the tour catalogue and the recovery path of the
// seat counters.
type TourService struct {
	tours  domain.TourRepository
	ledger domain.CapacityLedger
	logger *slog.Logger
}

func NewTourService(tours domain.TourRepository, ledger domain.CapacityLedger, logger *slog.Logger) *TourService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TourService{tours: tours, ledger: ledger, logger: logger}
}

// Create validates the draft and stores an unbooked tour.
func (s *TourService) Create(ctx context.Context, d domain.TourDraft) (domain.Tour, error) {
	if err := d.Validate(); err != nil {
		return domain.Tour{}, err
	}

	tour := domain.NewTour(generateID(), d)
	if err := s.tours.Create(ctx, tour); err != nil {
		return domain.Tour{}, fmt.Errorf("creating tour: %w", err)
	}
	return tour, nil
}

func (s *TourService) Get(ctx context.Context, id string) (domain.Tour, error) {
	return s.tours.GetByID(ctx, id)
}

func (s *TourService) List(ctx context.Context) ([]domain.Tour, error) {
	return s.tours.List(ctx)
}

// Update replaces the tour's editable fields. A zero capacity keeps the
// current one. The booked count is never written here.
func (s *TourService) Update(ctx context.Context, id string, d domain.TourDraft) (domain.Tour, error) {
	if err := d.Validate(); err != nil {
		return domain.Tour{}, err
	}

	tour, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return domain.Tour{}, err
	}

	tour.Name = d.Name
	tour.Destination = d.Destination
	tour.StartDate = d.StartDate
	tour.EndDate = d.EndDate
	tour.Price = d.Price
	tour.TransportMode = d.TransportMode
	tour.Description = d.Description
	tour.ImageURL = d.ImageURL
	if d.MaxCapacity > 0 {
		tour.MaxCapacity = d.MaxCapacity
	}
	tour.UpdatedAt = time.Now().UTC()

	if err := s.tours.Update(ctx, tour); err != nil {
		return domain.Tour{}, err
	}
	return s.tours.GetByID(ctx, id)
}

// Delete removes a tour that has no customers left.
func (s *TourService) Delete(ctx context.Context, id string) error {
	return s.tours.Delete(ctx, id)
}

// Reconcile recomputes one tour's booked count from its customers.
func (s *TourService) Reconcile(ctx context.Context, id string) (domain.Tour, error) {
	before, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return domain.Tour{}, err
	}

	booked, err := s.ledger.Reconcile(ctx, id)
	if err != nil {
		return domain.Tour{}, err
	}
	if booked != before.BookedCount {
		s.logger.WarnContext(ctx, "booked count drift corrected",
			"tour_id", id,
			"was", before.BookedCount,
			"now", booked,
		)
	}

	return s.tours.GetByID(ctx, id)
}

// ReconcileAll reconciles every tour and returns how many were checked.
// A tour deleted while the sweep runs is skipped.
func (s *TourService) ReconcileAll(ctx context.Context) (int, error) {
	tours, err := s.tours.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing tours: %w", err)
	}

	var checked int
	for _, tour := range tours {
		if err := ctx.Err(); err != nil {
			return checked, err
		}
		if _, err := s.Reconcile(ctx, tour.ID); err != nil {
			if errors.Is(err, domain.ErrTourNotFound) {
				continue
			}
			return checked, fmt.Errorf("reconciling tour %s: %w", tour.ID, err)
		}
		checked++
	}
	return checked, nil
}
