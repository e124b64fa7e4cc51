package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// TourResponse is the API representation of a tour.
type TourResponse struct {
	ID             string  `json:"tour_id" doc:"Unique identifier"`
	Name           string  `json:"name"`
	Destination    string  `json:"destination"`
	StartDate      string  `json:"start_date" doc:"First day (YYYY-MM-DD)"`
	EndDate        string  `json:"end_date" doc:"Last day (YYYY-MM-DD)"`
	Price          float64 `json:"price" doc:"Price per traveller"`
	TransportMode  string  `json:"transport_mode"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url,omitempty"`
	MaxCapacity    int     `json:"max_capacity"`
	BookedCount    int     `json:"booked_count"`
	AvailableSeats int     `json:"available_seats"`
	CreatedAt      string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt      string  `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toTourResponse(t domain.Tour) TourResponse {
	return TourResponse{
		ID:             t.ID,
		Name:           t.Name,
		Destination:    t.Destination,
		StartDate:      t.StartDate.Format(dateFormat),
		EndDate:        t.EndDate.Format(dateFormat),
		Price:          t.Price,
		TransportMode:  t.TransportMode,
		Description:    t.Description,
		ImageURL:       t.ImageURL,
		MaxCapacity:    t.MaxCapacity,
		BookedCount:    t.BookedCount,
		AvailableSeats: t.Available(),
		CreatedAt:      t.CreatedAt.Format(timestampFormat),
		UpdatedAt:      t.UpdatedAt.Format(timestampFormat),
	}
}

// TourBody is the editable part of a tour. A missing max_capacity means 50
// on create and "unchanged" on update.
type TourBody struct {
	Name          string  `json:"name" minLength:"1" maxLength:"255"`
	Destination   string  `json:"destination" minLength:"1" maxLength:"255"`
	StartDate     string  `json:"start_date" format:"date" doc:"First day (YYYY-MM-DD)"`
	EndDate       string  `json:"end_date" format:"date" doc:"Last day (YYYY-MM-DD)"`
	Price         float64 `json:"price" minimum:"0"`
	TransportMode string  `json:"transport_mode"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url,omitempty"`
	MaxCapacity   int     `json:"max_capacity,omitempty" minimum:"1" maximum:"10000"`
}

func (b TourBody) draft() (domain.TourDraft, error) {
	start, err := parseDate("start_date", b.StartDate)
	if err != nil {
		return domain.TourDraft{}, err
	}
	end, err := parseDate("end_date", b.EndDate)
	if err != nil {
		return domain.TourDraft{}, err
	}
	return domain.TourDraft{
		Name:          b.Name,
		Destination:   b.Destination,
		StartDate:     start,
		EndDate:       end,
		Price:         b.Price,
		TransportMode: b.TransportMode,
		Description:   b.Description,
		ImageURL:      b.ImageURL,
		MaxCapacity:   b.MaxCapacity,
	}, nil
}

type TourIDInput struct {
	ID string `path:"id" doc:"Tour ID"`
}

type CreateTourInput struct {
	Body TourBody
}

type UpdateTourInput struct {
	ID   string `path:"id" doc:"Tour ID"`
	Body TourBody
}

type TourOutput struct {
	Body TourResponse
}

type ListToursOutput struct {
	Body []TourResponse
}

func (h *handlers) registerTours(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tours",
		Method:      http.MethodGet,
		Path:        "/api/tours",
		Summary:     "List tours",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, _ *struct{}) (*ListToursOutput, error) {
		tours, err := h.Tours.List(ctx)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}

		resp := make([]TourResponse, len(tours))
		for i, t := range tours {
			resp[i] = toTourResponse(t)
		}
		return &ListToursOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-tour",
		Method:      http.MethodPost,
		Path:        "/api/tours",
		Summary:     "Create a tour",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, input *CreateTourInput) (*TourOutput, error) {
		d, err := input.Body.draft()
		if err != nil {
			return nil, err
		}
		tour, err := h.Tours.Create(ctx, d)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &TourOutput{Body: toTourResponse(tour)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-tour",
		Method:      http.MethodGet,
		Path:        "/api/tours/{id}",
		Summary:     "Get a tour by ID",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, input *TourIDInput) (*TourOutput, error) {
		tour, err := h.Tours.Get(ctx, input.ID)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &TourOutput{Body: toTourResponse(tour)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-tour",
		Method:      http.MethodPut,
		Path:        "/api/tours/{id}",
		Summary:     "Update a tour",
		Description: "Replaces the tour's details. Capacity cannot drop below the seats already booked.",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, input *UpdateTourInput) (*TourOutput, error) {
		d, err := input.Body.draft()
		if err != nil {
			return nil, err
		}
		tour, err := h.Tours.Update(ctx, input.ID, d)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &TourOutput{Body: toTourResponse(tour)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-tour",
		Method:        http.MethodDelete,
		Path:          "/api/tours/{id}",
		Summary:       "Delete a tour without customers",
		Tags:          []string{"Tours"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *TourIDInput) (*struct{}, error) {
		if err := h.Tours.Delete(ctx, input.ID); err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reconcile-tour",
		Method:      http.MethodPost,
		Path:        "/api/tours/{id}/reconcile",
		Summary:     "Recompute a tour's booked count from its customers",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, input *TourIDInput) (*TourOutput, error) {
		tour, err := h.Tours.Reconcile(ctx, input.ID)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &TourOutput{Body: toTourResponse(tour)}, nil
	})
}
