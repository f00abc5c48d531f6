// Package shared contains common domain types and the error taxonomy used
// across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrNotFound indicates a lookup miss (unknown admission number, etc.).
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists indicates an identifier collision on create.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrMissingField indicates incomplete caller input.
	ErrMissingField = errors.New("missing required field")

	// ErrValidation indicates otherwise invalid caller input.
	ErrValidation = errors.New("validation error")

	// ErrDispatchFailed indicates an external messaging provider failure.
	ErrDispatchFailed = errors.New("dispatch failed")

	// ErrIO indicates a document generation or protection failure.
	ErrIO = errors.New("io error")

	// ErrExternalService indicates a generic external service failure.
	ErrExternalService = errors.New("external service error")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "statement", "notification"
	Op      string // Operation that failed, e.g., "Enroll", "Render"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// MissingField creates an error naming the absent input field.
func MissingField(domain, op, field string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    ErrMissingField,
		Message: fmt.Sprintf("missing field %s", field),
	}
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsMissingField checks if the error names an absent input field.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrMissingField)
}

// IsDispatchFailed checks if the error came from the messaging provider.
func IsDispatchFailed(err error) bool {
	return errors.Is(err, ErrDispatchFailed)
}

// IsIO checks if the error is a document generation/protection failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}
