package entity

import (
	"fmt"
	"regexp"
	"strings"
)

// maxFieldLength bounds free-text form fields before they are sent upstream.
const maxFieldLength = 5000

// emailPattern accepts "something@something.tld" with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRequired returns a ValidationError when value is blank.
func ValidateRequired(field, label, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: label + " is required"}
	}
	return nil
}

// ValidateEmail validates the shape of an email address.
// An empty address reports "Email is required"; a malformed one reports
// "Please enter a valid email address".
func ValidateEmail(email string) *ValidationError {
	if err := ValidateRequired("email", "Email", email); err != nil {
		return err
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}

// ValidateMaxLength rejects values longer than the form field limit.
func ValidateMaxLength(field, value string) *ValidationError {
	if len([]rune(value)) > maxFieldLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must not exceed %d characters", field, maxFieldLength),
		}
	}
	return nil
}
