package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Specific errors wrap one of these so callers can classify
// them with errors.Is.
var (
	// ErrValidation: missing required field, unknown stage or analyst, malformed input.
	// Rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound: unknown or already-deleted card referenced by a stale event
	ErrNotFound = errors.New("resource not found")

	// ErrPersistence: store unavailable or constraint violation. Never retried.
	ErrPersistence = errors.New("persistence failure")
)

// Validation returns a validation error carrying msg
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound returns a not-found error for the named resource
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// Persistence wraps a store error; both the kind and the cause stay matchable.
// Errors that already carry a kind are returned unchanged.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// HTTPStatus maps an error kind to a response status
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
