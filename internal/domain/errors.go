package domain

import "errors"

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an operation needs an entity that does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError rejects caller-supplied data that breaks a rule.
type ValidationError struct {
	Violation Violation
}

// NewValidationError wraps v. v must not be ViolationNone.
func NewValidationError(v Violation) *ValidationError {
	return &ValidationError{Violation: v}
}

func (e *ValidationError) Error() string {
	return e.Violation.Message()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
