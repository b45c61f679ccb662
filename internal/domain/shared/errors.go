// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
// Every failure the core returns to the presentation layer maps onto exactly
// one of these kinds, so callers can distinguish "stale reference" (not found)
// from "user-correctable input" (validation) from "conflict with existing state".
var (
	// Entity errors
	ErrNotFound = errors.New("entity not found")

	// Conflict errors
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrAlreadyEnrolled   = errors.New("student already enrolled in course")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this lecture")

	// Input errors
	ErrValidation  = errors.New("validation error")
	ErrInvalidCode = errors.New("invalid enrollment code")

	// State errors
	ErrIllegalTransition   = errors.New("illegal lecture status transition")
	ErrLectureNotCompleted = errors.New("lecture is not completed yet")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "identity", "course", "gradebook"
	Op      string // Operation that failed, e.g., "Register", "Enroll"
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

// IsNotFound checks if the error is a "not found" error (404-equivalent).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a conflict with existing state (409-equivalent).
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrAlreadyEnrolled) ||
		errors.Is(err, ErrDuplicateFeedback) ||
		errors.Is(err, ErrIllegalTransition) ||
		errors.Is(err, ErrLectureNotCompleted)
}

// IsValidation checks if the error is a user-correctable input error (400-equivalent).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidCode)
}

// IsExternalService checks if the error is from an external collaborator.
// The core never surfaces these to the end user as hard errors; the insight
// pipeline recovers with the local fallback instead.
func IsExternalService(err error) bool {
	return errors.Is(err, ErrExternalService) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout)
}
