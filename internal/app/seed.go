package app

import (
	"context"
	"fmt"
	"time"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// sampleTours are the catalogue a fresh installation starts with.
var sampleTours = []domain.TourDraft{
	{
		Name:          "Magical Bhutan Adventure",
		Destination:   "Thimphu, Paro, Punakha - Bhutan",
		StartDate:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC),
		Price:         85000,
		TransportMode: "Flight + Local Transport",
		Description: "Experience the mystical kingdom of Bhutan with visits to ancient monasteries, " +
			"stunning landscapes, and rich cultural heritage. Includes visits to Tiger's Nest Monastery, " +
			"Punakha Dzong, and local markets.",
		ImageURL:    "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?q=80&w=2070",
		MaxCapacity: 25,
	},
	{
		Name:          "Sri Lanka Cultural Paradise",
		Destination:   "Colombo, Kandy, Galle - Sri Lanka",
		StartDate:     time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC),
		Price:         65000,
		TransportMode: "Flight + AC Bus",
		Description: "Discover the pearl of the Indian Ocean with golden beaches, ancient temples, " +
			"tea plantations, and wildlife safaris. Visit Temple of the Tooth, Sigiriya Rock, " +
			"and enjoy beach time in Galle.",
		ImageURL:    "https://images.unsplash.com/photo-1581833971358-2c8b550f87b3?q=80&w=2071",
		MaxCapacity: 30,
	},
}

// SeedSampleTours creates the sample tours when the catalogue is empty and
// returns how many were created.
func SeedSampleTours(ctx context.Context, tours *TourService) (int, error) {
	existing, err := tours.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing tours: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, d := range sampleTours {
		if _, err := tours.Create(ctx, d); err != nil {
			return i, fmt.Errorf("seeding tour %q: %w", d.Name, err)
		}
	}
	return len(sampleTours), nil
}
