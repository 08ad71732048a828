// Package contact validates and submits the site's contact form.
package contact

import (
	"context"
	"fmt"
	"strings"

	"egreen-site/internal/domain/entity"
	"egreen-site/internal/infra/catalogapi"
)

// Form is the contact form as entered by the visitor. Phone, Subject and
// Message are optional.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

// Sender delivers a validated form.
type Sender interface {
	SubmitContact(ctx context.Context, req catalogapi.ContactRequest) (string, error)
}

// Service provides the contact use case.
type Service struct {
	API Sender
}

// Validate checks the form and returns the message for each failing field.
// An empty result means the form is valid.
func Validate(f Form) entity.FieldErrors {
	errs := entity.FieldErrors{}
	errs.Add(entity.ValidateRequired("name", "Name", f.Name))
	errs.Add(entity.ValidateEmail(strings.TrimSpace(f.Email)))
	errs.Add(entity.ValidateMaxLength("subject", f.Subject))
	errs.Add(entity.ValidateMaxLength("message", f.Message))
	return errs
}

// Submit validates f and sends it. An invalid form is returned as
// entity.FieldErrors, which matches entity.ErrValidationFailed, and nothing
// is sent.
func (s *Service) Submit(ctx context.Context, f Form) (string, error) {
	if err := Validate(f).Err(); err != nil {
		return "", err
	}
	msg, err := s.API.SubmitContact(ctx, catalogapi.ContactRequest{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Subject: strings.TrimSpace(f.Subject),
		Message: f.Message,
	})
	if err != nil {
		return "", fmt.Errorf("submit contact: %w", err)
	}
	return msg, nil
}
