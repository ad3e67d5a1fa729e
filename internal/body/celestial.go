package body

import "github.com/san-kum/impactsim/internal/geom"

// CelestialBody is a gravitating mass: the primary a projectile falls toward,
// or a secondary (moon) circling it. Position is in meters relative to the
// scene origin and only changes through orbit-driven updates between ticks.
type CelestialBody struct {
	Name     string
	Mass     float64 // kg
	Radius   float64 // m
	Position geom.Vec3
}

// NewCelestialBody validates mass and radius at construction.
func NewCelestialBody(name string, mass, radius float64, pos geom.Vec3) (*CelestialBody, error) {
	if mass <= 0 {
		return nil, &ValidationError{Field: "mass", Value: mass, Wrapped: ErrNonPositiveMass}
	}
	if radius <= 0 {
		return nil, &ValidationError{Field: "radius", Value: radius, Wrapped: ErrNonPositiveRadius}
	}
	return &CelestialBody{Name: name, Mass: mass, Radius: radius, Position: pos}, nil
}
