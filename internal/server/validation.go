// validation.go - Input validation for registration payloads.
package server

import (
	"errors"
	"strings"
	"unicode"
)

// bloodGroups is the closed set of accepted blood group labels.
var bloodGroups = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

func validBloodGroup(g string) bool {
	return bloodGroups[g]
}

// validMobile accepts digit strings with an optional leading +, between 6
// and 15 digits. Deliberately loose: numbers arrive in local and
// international form and the registry treats them as opaque identity keys.
func validMobile(mobile string) bool {
	mobile = strings.TrimPrefix(mobile, "+")
	if len(mobile) < 6 || len(mobile) > 15 {
		return false
	}
	for _, r := range mobile {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// validateRegistration checks the required fields of a registration
// payload. The women's number is optional but must look like a phone
// number when present.
func validateRegistration(req registerDonorReq) error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Mobile == "" {
		return errors.New("mobile is required")
	}
	if !validMobile(req.Mobile) {
		return errors.New("invalid mobile number")
	}
	if req.WomenNumber != "" && !validMobile(req.WomenNumber) {
		return errors.New("invalid women's number")
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	if !validBloodGroup(req.BloodGroup) {
		return errors.New("invalid blood group")
	}
	return nil
}
