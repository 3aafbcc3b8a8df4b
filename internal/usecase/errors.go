package usecase

import (
	"errors"
	"fmt"

	"planetarium-booking/internal/data/repository"
	"planetarium-booking/pkg/utils"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidImage       = errors.New("invalid image")
)

// ValidationError carries per-field messages back to the client.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Message
	}
	return "validation failed: " + e.Message + ": " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d %w", what, id, ErrNotFound)
}

func conflict(message string) error {
	return fmt.Errorf("%s: %w", message, ErrConflict)
}

func errorsIsDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}

func errorsIsInvalidReference(err error) bool {
	return errors.Is(err, repository.ErrInvalidReference)
}

// fromRepository translates repository sentinels for writes that reference other rows.
func fromRepository(err error, what string, id int64) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(what, id)
	case errors.Is(err, repository.ErrReferenced):
		return conflict(fmt.Sprintf("%s %d is still in use", what, id))
	case errors.Is(err, repository.ErrDuplicate):
		return conflict(fmt.Sprintf("%s already exists", what))
	}
	return err
}
