package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ride search domain.
var (
	// ErrValidation indicates malformed or contradictory search input.
	ErrValidation = errors.New("validation failed")

	// ErrBackendUnavailable indicates the ride store could not serve the query.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// FieldError represents a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds every field error found in one request.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ErrValidation.Error()
	}
	return v.Errors[0].Message
}

// Is makes errors.Is(err, ErrValidation) hold for any ValidationErrors.
func (v *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API responses.
// When a field has several errors the first one wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, exists := result[e.Field]; !exists {
			result[e.Field] = e.Message
		}
	}
	return result
}

// NewValidationError creates a ValidationErrors holding a single field error.
func NewValidationError(field, message string) *ValidationErrors {
	errs := &ValidationErrors{}
	errs.Add(field, message)
	return errs
}

// BackendError wraps a fault raised by a ride store.
type BackendError struct {
	// Store identifies the adapter that failed (e.g., "postgres")
	Store string

	// Err is the underlying error
	Err error
}

// NewBackendError creates a BackendError for the given store.
func NewBackendError(store string, err error) *BackendError {
	return &BackendError{Store: store, Err: err}
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: store %s: %v", ErrBackendUnavailable, e.Store, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBackendUnavailable) hold for any BackendError.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}
