package service

import (
	"errors"
	"fmt"
)

var (
	ErrAliasTaken = errors.New("alias is already taken in this namespace")
	ErrLabelTaken = errors.New("subdomain is already taken")
	ErrNotFound   = errors.New("not found")
	// ErrAllocationExhausted means every generated alias collided. It points at
	// a namespace close to capacity and is never shown to the caller as is.
	ErrAllocationExhausted = errors.New("alias allocation exhausted")
	ErrForbidden           = errors.New("forbidden")
	ErrUnauthorized        = errors.New("unauthorized")
)

// ValidationError rejects one input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation unwraps err into a *ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
