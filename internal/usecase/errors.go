package usecase

import (
	"errors"
	"fmt"

	"picky-feed/pkg/utils"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDeleted      = errors.New("deleted")
	ErrUnauthorized = errors.New("not the author")
	ErrReadFailure  = errors.New("read failure")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")

	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field messages and matches ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

func deleted(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrDeleted)
}
