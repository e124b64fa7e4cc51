package domain

import "time"

// DefaultMaxCapacity is applied when a tour is created without an explicit capacity.
const DefaultMaxCapacity = 50

// Tour is a scheduled trip that customers book seats on.
// BookedCount is owned by the CapacityLedger; nothing else writes it.
type Tour struct {
	ID            string
	Name          string
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	Price         float64
	TransportMode string
	Description   string
	ImageURL      string
	MaxCapacity   int
	BookedCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Available returns the number of seats that can still be reserved.
func (t Tour) Available() int {
	if t.BookedCount >= t.MaxCapacity {
		return 0
	}
	return t.MaxCapacity - t.BookedCount
}

// TourDraft carries the administrator-editable fields of a tour.
type TourDraft struct {
	Name          string
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	Price         float64
	TransportMode string
	Description   string
	ImageURL      string
	MaxCapacity   int
}

// NewTour creates an unbooked tour from a draft.
func NewTour(id string, d TourDraft) Tour {
	now := time.Now().UTC()
	capacity := d.MaxCapacity
	if capacity == 0 {
		capacity = DefaultMaxCapacity
	}
	return Tour{
		ID:            id,
		Name:          d.Name,
		Destination:   d.Destination,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Price:         d.Price,
		TransportMode: d.TransportMode,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		MaxCapacity:   capacity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks the draft's own fields. It does not consult any store.
func (d TourDraft) Validate() error {
	switch {
	case d.Name == "":
		return &ValidationError{Field: "name", Kind: KindRequired, Reason: "name is required"}
	case d.Destination == "":
		return &ValidationError{Field: "destination", Kind: KindRequired, Reason: "destination is required"}
	case d.EndDate.Before(d.StartDate):
		return &ValidationError{Field: "end_date", Kind: KindFormat, Reason: "end date is before start date"}
	case d.Price < 0:
		return &ValidationError{Field: "price", Kind: KindFormat, Reason: "price must not be negative"}
	case d.MaxCapacity < 0:
		return &ValidationError{Field: "max_capacity", Kind: KindFormat, Reason: "max capacity must be positive"}
	}
	return nil
}
