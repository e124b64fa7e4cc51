package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourdesk/internal/identity"
)

// ValidationOutput reports whether a single identifier is acceptable.
type ValidationOutput struct {
	Body struct {
		Valid bool `json:"valid" doc:"Whether the value passed every check"`
	}
}

func validity(ok bool) *ValidationOutput {
	out := &ValidationOutput{}
	out.Body.Valid = ok
	return out
}

type ValidateAadhaarInput struct {
	Body struct {
		AadhaarNumber string `json:"aadhaar_number" maxLength:"64" doc:"12 digit Aadhaar number"`
	}
}

type ValidatePANInput struct {
	Body struct {
		PANNumber string `json:"pan_number" maxLength:"64" doc:"10 character PAN"`
	}
}

type ValidateMobileInput struct {
	Body struct {
		Mobile string `json:"mobile" maxLength:"64" doc:"Indian mobile number, with or without +91"`
	}
}

type ValidateEmailInput struct {
	Body struct {
		Email string `json:"email" maxLength:"320" doc:"Email address"`
	}
}

// registerValidation adds the stateless identifier checks. They never touch
// a store and always answer 200 with {valid}.
func (h *handlers) registerValidation(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-aadhaar",
		Method:      http.MethodPost,
		Path:        "/api/validate/aadhaar",
		Summary:     "Check an Aadhaar number's format and Verhoeff checksum",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *ValidateAadhaarInput) (*ValidationOutput, error) {
		return validity(identity.ValidAadhaar(input.Body.AadhaarNumber)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-pan",
		Method:      http.MethodPost,
		Path:        "/api/validate/pan",
		Summary:     "Check a PAN's format",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *ValidatePANInput) (*ValidationOutput, error) {
		return validity(identity.ValidPAN(input.Body.PANNumber)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-mobile",
		Method:      http.MethodPost,
		Path:        "/api/validate/mobile",
		Summary:     "Check an Indian mobile number",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *ValidateMobileInput) (*ValidationOutput, error) {
		return validity(identity.ValidMobile(input.Body.Mobile)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-email",
		Method:      http.MethodPost,
		Path:        "/api/validate/email",
		Summary:     "Check an email address",
		Tags:        []string{"Validation"},
	}, func(_ context.Context, input *ValidateEmailInput) (*ValidationOutput, error) {
		return validity(identity.ValidEmail(input.Body.Email)), nil
	})
}
