package http

import (
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourdesk/internal/app"
)

const (
	timestampFormat = "2006-01-02T15:04:05Z"
	dateFormat      = "2006-01-02"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Registrations *app.RegistrationService
	Tours         *app.TourService
	Expenses      *app.ExpenseService
	Logger        *slog.Logger
}

type handlers struct {
	Services
}

// Register adds every route under /api to the Huma API.
func Register(api huma.API, svc Services) {
	if svc.Logger == nil {
		svc.Logger = slog.Default()
	}
	h := &handlers{Services: svc}

	h.registerValidation(api)
	h.registerTours(api)
	h.registerCustomers(api)
	h.registerExpenses(api)
}

// parseDate reads a YYYY-MM-DD body field. Huma has already checked the
// format, so an error here means the date does not exist (2025-02-30).
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, huma.Error422UnprocessableEntity("validation failed", &huma.ErrorDetail{
			Message:  "must be a calendar date (YYYY-MM-DD)",
			Location: "body." + field,
			Value:    value,
		})
	}
	return t, nil
}
