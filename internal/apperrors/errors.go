package apperrors

import (
	"errors"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no active identity was supplied for an operation that requires one.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an authenticated caller lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrAmbiguousReference indicates that a short id prefix matched more than one record.
var ErrAmbiguousReference = errors.New("ambiguous reference")

// ErrStorageCorrupt marks a backing collection that could not be parsed.
// Record stores absorb it and never return it from Load.
var ErrStorageCorrupt = errors.New("storage corrupt")

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects field level failures. It matches ErrValidation
// under errors.Is so callers can branch on the sentinel.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports whether target is ErrValidation.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a field failure.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil returns nil when nothing was collected.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// NewFieldError builds a single-field validation error.
func NewFieldError(field, message string) error {
	return ValidationErrors{{Field: field, Message: message}}
}

// FieldErrors extracts the field failures carried by err, if any.
func FieldErrors(err error) []FieldError {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
