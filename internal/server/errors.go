// Package server provides the HTTP REST API for the job assistant.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-assistant/internal/ledger"
	"github.com/jonathan/job-assistant/internal/resume"
	"github.com/jonathan/job-assistant/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNoResume indicates an operation needs an uploaded résumé
type ErrNoResume struct{}

func (e *ErrNoResume) Error() string {
	return "no résumé uploaded for this session"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var fieldErrs validator.ValidationErrors
	var noResume *ErrNoResume

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &noResume):
		return http.StatusBadRequest
	case errors.Is(err, resume.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, session.ErrNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// requestValidator checks request bodies against their struct tags.
var requestValidator = validator.New()

// validateRequest converts the first field error into an ErrValidation.
func validateRequest(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
