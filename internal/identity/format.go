// Package identity validates the identifiers a customer supplies at booking
// time: the Aadhaar number, PAN, mobile number and email address.
//
// Every function here is pure and safe for concurrent use.
package identity

import (
	"regexp"
	"strings"
)

const aadhaarLength = 12

var (
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidAadhaarFormat reports whether s is 12 ASCII digits that are not all the same.
// It does not check the Verhoeff digit.
func ValidAadhaarFormat(s string) bool {
	if len(s) != aadhaarLength {
		return false
	}
	uniform := true
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		if s[i] != s[0] {
			uniform = false
		}
	}
	return !uniform
}

// ValidAadhaar reports whether s passes both the format check and the Verhoeff checksum.
func ValidAadhaar(s string) bool {
	return ValidAadhaarFormat(s) && VerhoeffValid(s)
}

// ValidPAN reports whether s has the AAAAA9999A shape, ignoring case.
func ValidPAN(s string) bool {
	if len(s) != 10 {
		return false
	}
	return panPattern.MatchString(strings.ToUpper(s))
}

// NormalizePAN returns the stored form of a PAN.
func NormalizePAN(s string) string {
	return strings.ToUpper(s)
}

// ValidMobile reports whether s is an Indian mobile number, in local form
// (9876543210) or with the 91 country prefix. Separators are ignored, so
// "+91 98765-43210" is checked as 919876543210.
func ValidMobile(s string) bool {
	digits := digitsOnly(s)

	switch {
	case len(digits) == 10:
		return isMobileLead(digits[0])
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return isMobileLead(digits[2])
	}
	return false
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return s != "" && emailPattern.MatchString(s)
}

func isMobileLead(b byte) bool {
	return b >= '6' && b <= '9'
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
