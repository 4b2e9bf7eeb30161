package services

import (
	"errors"
	"fmt"

	"medibook/database/repository"
)

// Errors shared by the domain services. Handlers map them to HTTP statuses.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// FromRepo translates repository sentinels into service errors, keeping the
// original message.
func FromRepo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repository.ErrInsufficientCredits):
		return fmt.Errorf("%w: %v", ErrInsufficientCredits, err)
	case errors.Is(err, repository.ErrStateConflict), errors.Is(err, repository.ErrDuplicateReference):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
