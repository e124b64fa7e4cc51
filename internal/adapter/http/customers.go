package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourdesk/internal/app"
	"github.com/neomorfeo/tourdesk/internal/domain"
)

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	ID                     string  `json:"customer_id" doc:"Unique identifier"`
	TourID                 string  `json:"tour_id"`
	FirstName              string  `json:"first_name"`
	LastName               string  `json:"last_name"`
	DateOfBirth            string  `json:"date_of_birth" doc:"YYYY-MM-DD"`
	Gender                 string  `json:"gender"`
	Email                  string  `json:"email"`
	Mobile                 string  `json:"mobile"`
	Address                string  `json:"address"`
	City                   string  `json:"city"`
	State                  string  `json:"state"`
	Pincode                string  `json:"pincode"`
	AadhaarNumber          string  `json:"aadhaar_number"`
	PANNumber              string  `json:"pan_number,omitempty"`
	EmergencyContactName   string  `json:"emergency_contact_name"`
	EmergencyContactNumber string  `json:"emergency_contact_number"`
	SpecialRequirements    string  `json:"special_requirements,omitempty"`
	PaymentStatus          string  `json:"payment_status" enum:"pending,partial,paid"`
	AmountPaid             float64 `json:"amount_paid"`
	PaymentMethod          string  `json:"payment_method,omitempty"`
	CreatedAt              string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt              string  `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                     c.ID,
		TourID:                 c.TourID,
		FirstName:              c.FirstName,
		LastName:               c.LastName,
		DateOfBirth:            c.DateOfBirth.Format(dateFormat),
		Gender:                 c.Gender,
		Email:                  c.Email,
		Mobile:                 c.Mobile,
		Address:                c.Address,
		City:                   c.City,
		State:                  c.State,
		Pincode:                c.Pincode,
		AadhaarNumber:          c.AadhaarNumber,
		PANNumber:              c.PANNumber,
		EmergencyContactName:   c.EmergencyContactName,
		EmergencyContactNumber: c.EmergencyContactNumber,
		SpecialRequirements:    c.SpecialRequirements,
		PaymentStatus:          string(c.PaymentStatus),
		AmountPaid:             c.AmountPaid,
		PaymentMethod:          c.PaymentMethod,
		CreatedAt:              c.CreatedAt.Format(timestampFormat),
		UpdatedAt:              c.UpdatedAt.Format(timestampFormat),
	}
}

// CustomerBody is a registration form. Identity fields are checked by the
// registration service, not the schema, so failures carry their own reason.
type CustomerBody struct {
	TourID                 string `json:"tour_id" minLength:"1" doc:"Tour to book"`
	FirstName              string `json:"first_name" minLength:"1" maxLength:"100"`
	LastName               string `json:"last_name" minLength:"1" maxLength:"100"`
	DateOfBirth            string `json:"date_of_birth" format:"date" doc:"YYYY-MM-DD"`
	Gender                 string `json:"gender"`
	Email                  string `json:"email" maxLength:"320"`
	Mobile                 string `json:"mobile" maxLength:"32"`
	Address                string `json:"address"`
	City                   string `json:"city"`
	State                  string `json:"state"`
	Pincode                string `json:"pincode"`
	AadhaarNumber          string `json:"aadhaar_number" maxLength:"32"`
	PANNumber              string `json:"pan_number,omitempty" maxLength:"32"`
	EmergencyContactName   string `json:"emergency_contact_name"`
	EmergencyContactNumber string `json:"emergency_contact_number"`
	SpecialRequirements    string `json:"special_requirements,omitempty"`
	PaymentMethod          string `json:"payment_method,omitempty"`
}

func (b CustomerBody) draft() (domain.CustomerDraft, error) {
	dob, err := parseDate("date_of_birth", b.DateOfBirth)
	if err != nil {
		return domain.CustomerDraft{}, err
	}
	return domain.CustomerDraft{
		TourID:                 b.TourID,
		FirstName:              b.FirstName,
		LastName:               b.LastName,
		DateOfBirth:            dob,
		Gender:                 b.Gender,
		Email:                  b.Email,
		Mobile:                 b.Mobile,
		Address:                b.Address,
		City:                   b.City,
		State:                  b.State,
		Pincode:                b.Pincode,
		AadhaarNumber:          b.AadhaarNumber,
		PANNumber:              b.PANNumber,
		EmergencyContactName:   b.EmergencyContactName,
		EmergencyContactNumber: b.EmergencyContactNumber,
		SpecialRequirements:    b.SpecialRequirements,
		PaymentMethod:          b.PaymentMethod,
	}, nil
}

type CustomerIDInput struct {
	ID string `path:"id" doc:"Customer ID"`
}

type ListCustomersInput struct {
	TourID string `query:"tour_id" required:"false" doc:"Only customers booked on this tour"`
}

type CreateCustomerInput struct {
	Body CustomerBody
}

type UpdateCustomerInput struct {
	ID   string `path:"id" doc:"Customer ID"`
	Body CustomerBody
}

type PaymentInput struct {
	ID   string `path:"id" doc:"Customer ID"`
	Body struct {
		Event         string  `json:"event" enum:"pay_partial,pay_full,refund" doc:"Payment event"`
		Amount        float64 `json:"amount,omitempty" minimum:"0" doc:"Amount received; ignored for refunds"`
		PaymentMethod string  `json:"payment_method,omitempty" doc:"cash, upi, card, ..."`
	}
}

type CustomerOutput struct {
	Body CustomerResponse
}

type ListCustomersOutput struct {
	Body []CustomerResponse
}

func (h *handlers) registerCustomers(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-customers",
		Method:      http.MethodGet,
		Path:        "/api/customers",
		Summary:     "List customers",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, input *ListCustomersInput) (*ListCustomersOutput, error) {
		customers, err := h.Registrations.List(ctx, domain.CustomerFilter{TourID: input.TourID})
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}

		resp := make([]CustomerResponse, len(customers))
		for i, c := range customers {
			resp[i] = toCustomerResponse(c)
		}
		return &ListCustomersOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "register-customer",
		Method:      http.MethodPost,
		Path:        "/api/customers",
		Summary:     "Register a customer on a tour",
		Description: "Validates the identity documents and reserves one seat on the tour.",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, input *CreateCustomerInput) (*CustomerOutput, error) {
		d, err := input.Body.draft()
		if err != nil {
			return nil, err
		}
		c, err := h.Registrations.Register(ctx, d)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &CustomerOutput{Body: toCustomerResponse(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-customer",
		Method:      http.MethodGet,
		Path:        "/api/customers/{id}",
		Summary:     "Get a customer by ID",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, input *CustomerIDInput) (*CustomerOutput, error) {
		c, err := h.Registrations.Get(ctx, input.ID)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &CustomerOutput{Body: toCustomerResponse(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-customer",
		Method:      http.MethodPut,
		Path:        "/api/customers/{id}",
		Summary:     "Update a customer's details",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, input *UpdateCustomerInput) (*CustomerOutput, error) {
		d, err := input.Body.draft()
		if err != nil {
			return nil, err
		}
		c, err := h.Registrations.Update(ctx, input.ID, d)
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &CustomerOutput{Body: toCustomerResponse(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "deregister-customer",
		Method:        http.MethodDelete,
		Path:          "/api/customers/{id}",
		Summary:       "Deregister a customer and free their seat",
		Tags:          []string{"Customers"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *CustomerIDInput) (*struct{}, error) {
		if err := h.Registrations.Deregister(ctx, input.ID); err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "record-payment",
		Method:      http.MethodPost,
		Path:        "/api/customers/{id}/payments",
		Summary:     "Record a payment or refund",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, input *PaymentInput) (*CustomerOutput, error) {
		c, err := h.Registrations.RecordPayment(ctx, input.ID, app.Payment{
			Event:  domain.PaymentEvent(input.Body.Event),
			Amount: input.Body.Amount,
			Method: input.Body.PaymentMethod,
		})
		if err != nil {
			return nil, h.toHumaError(ctx, err)
		}
		return &CustomerOutput{Body: toCustomerResponse(c)}, nil
	})
}
