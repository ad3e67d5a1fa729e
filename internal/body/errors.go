package body

import (
	"errors"
	"fmt"
)

// Construction errors. Invalid inputs are rejected at creation time rather
// than coerced; callers match with errors.Is.
var (
	// ErrNonPositiveMass indicates a body or projectile with mass <= 0.
	ErrNonPositiveMass = errors.New("body: mass must be positive")

	// ErrNonPositiveRadius indicates a celestial body with radius <= 0.
	ErrNonPositiveRadius = errors.New("body: radius must be positive")

	// ErrNonPositiveDiameter indicates a projectile with diameter <= 0.
	ErrNonPositiveDiameter = errors.New("body: diameter must be positive")

	// ErrNonPositiveDensity indicates a projectile with density <= 0.
	ErrNonPositiveDensity = errors.New("body: density must be positive")
)

// ValidationError wraps a construction error with the offending field and value.
type ValidationError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v (%s=%g)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}
