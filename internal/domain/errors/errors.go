package errors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrProductInUse        = errors.New("product referenced by an active order")
	ErrIdempotencyInFlight = errors.New("request with the same idempotency key is in progress")

	ErrCancelledOrderImmutable = &BusinessRuleError{Rule: "cancelled order immutable"}
)

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Problems []string
}

// NewValidationError builds ValidationError from collected problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// BusinessRuleError reports a request that is well formed but forbidden by a domain rule.
type BusinessRuleError struct {
	Rule string
}

func (e *BusinessRuleError) Error() string {
	return "business rule violated: " + e.Rule
}

// IsValidation reports whether err carries a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// IsBusinessRule reports whether err carries a BusinessRuleError and returns it.
func IsBusinessRule(err error) (*BusinessRuleError, bool) {
	var b *BusinessRuleError
	if errors.As(err, &b) {
		return b, true
	}
	return nil, false
}
