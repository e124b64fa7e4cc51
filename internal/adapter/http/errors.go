package http

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourdesk/internal/domain"
)

// toHumaError translates domain errors to Huma HTTP errors. Anything it does
// not recognize is logged and reported as a 500 without details.
func (h *handlers) toHumaError(ctx context.Context, err error) error {
	var (
		validationErr *domain.ValidationError
		referenceErr  *domain.ReferenceError
		capacityErr   *domain.CapacityExceededError
		conflictErr   *domain.CapacityConflictError
		inUseErr      *domain.TourInUseError
		transitionErr *domain.TransitionError
		statusErr     huma.StatusError
	)

	switch {
	case errors.As(err, &validationErr):
		return huma.Error422UnprocessableEntity("validation failed", &huma.ErrorDetail{
			Message:  validationErr.Reason,
			Location: "body." + validationErr.Field,
		})
	case errors.As(err, &referenceErr):
		return huma.Error404NotFound(referenceErr.Error())
	case errors.Is(err, domain.ErrTourNotFound):
		return huma.Error404NotFound("tour not found")
	case errors.Is(err, domain.ErrCustomerNotFound):
		return huma.Error404NotFound("customer not found")
	case errors.Is(err, domain.ErrExpenseNotFound):
		return huma.Error404NotFound("expense not found")
	case errors.As(err, &capacityErr):
		return huma.Error409Conflict(capacityErr.Error())
	case errors.As(err, &conflictErr):
		return huma.Error409Conflict(conflictErr.Error())
	case errors.As(err, &inUseErr):
		return huma.Error409Conflict(inUseErr.Error())
	case errors.As(err, &transitionErr):
		return huma.Error422UnprocessableEntity(transitionErr.Error())
	case errors.As(err, &statusErr):
		return err
	}

	h.Logger.ErrorContext(ctx, "request failed", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
