package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors raised by data preparation. These abort the run
	// before any test executes and are shown to the user verbatim.
	ErrInvalidMetricDomain = errors.New("discrete metric has more than two distinct values")
	ErrInsufficientData    = errors.New("insufficient data for analysis")
	ErrColumnNotFound      = errors.New("column not found")
	ErrVariantCount        = errors.New("variant column must contain exactly two distinct values")

	// Numeric edge cases. These never abort a run on their own; they are
	// recovered locally and surfaced through warnings.
	ErrDegenerateSample        = errors.New("no variation observed in sample")
	ErrAssumptionTestUndefined = errors.New("assumption test undefined for sample")

	// Execution errors
	ErrUnknownTest = errors.New("unknown test identifier")
)

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewVariantCountError(column string, found int) error {
	return fmt.Errorf("%w: column %q has %d", ErrVariantCount, column, found)
}

func NewInsufficientDataError(group string) error {
	return fmt.Errorf("%w: group %q is empty after cleaning", ErrInsufficientData, group)
}

func NewInvalidMetricDomainError(column string, distinct int) error {
	return fmt.Errorf("%w: column %q has %d distinct values after cleaning", ErrInvalidMetricDomain, column, distinct)
}

// IsValidationError reports whether err should abort the pipeline before
// any statistical test runs.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMetricDomain) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrVariantCount)
}
