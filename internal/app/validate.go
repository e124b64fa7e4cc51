package app

import (
	"github.com/neomorfeo/tourdesk/internal/domain"
	"github.com/neomorfeo/tourdesk/internal/identity"
)

// validateCustomer runs the identity and contact checks in a fixed order and
// returns the first failure. It normalizes the PAN in place. No store is
// consulted.
func validateCustomer(d *domain.CustomerDraft) error {
	switch {
	case d.AadhaarNumber == "":
		return required("aadhaar_number")
	case !identity.ValidAadhaarFormat(d.AadhaarNumber):
		return &domain.ValidationError{Field: "aadhaar_number", Kind: domain.KindFormat,
			Reason: "must be 12 digits and not all the same digit"}
	case !identity.VerhoeffValid(d.AadhaarNumber):
		return &domain.ValidationError{Field: "aadhaar_number", Kind: domain.KindChecksum,
			Reason: "checksum digit does not match"}
	}

	if d.PANNumber != "" {
		if !identity.ValidPAN(d.PANNumber) {
			return &domain.ValidationError{Field: "pan_number", Kind: domain.KindFormat,
				Reason: "must be five letters, four digits and a letter"}
		}
		d.PANNumber = identity.NormalizePAN(d.PANNumber)
	}

	switch {
	case d.Mobile == "":
		return required("mobile")
	case !identity.ValidMobile(d.Mobile):
		return &domain.ValidationError{Field: "mobile", Kind: domain.KindFormat,
			Reason: "must be a 10 digit Indian mobile number"}
	case d.Email == "":
		return required("email")
	case !identity.ValidEmail(d.Email):
		return &domain.ValidationError{Field: "email", Kind: domain.KindFormat,
			Reason: "must be a valid email address"}
	case d.FirstName == "":
		return required("first_name")
	case d.LastName == "":
		return required("last_name")
	}
	return nil
}

func required(field string) *domain.ValidationError {
	return &domain.ValidationError{Field: field, Kind: domain.KindRequired, Reason: field + " is required"}
}
