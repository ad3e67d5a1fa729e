package kepler

import (
	"math"

	"github.com/san-kum/impactsim/internal/geom"
)

// Orbit carries immutable elements plus its own elapsed-time accumulator.
// It drives decorative orbiting objects: positions are a pure function of
// accumulated time, with no feedback into the gravity field.
type Orbit struct {
	Elements Elements
	elapsed  float64
}

func NewOrbit(el Elements) *Orbit {
	return &Orbit{Elements: el}
}

// Elapsed is the accumulated orbit time in seconds.
func (o *Orbit) Elapsed() float64 {
	return o.elapsed
}

// Advance accumulates dt scaled by the simulation speed multiplier and
// returns the new 3D position.
func (o *Orbit) Advance(dt, speedMultiplier float64) geom.Vec3 {
	o.elapsed += dt * speedMultiplier
	return o.PositionAt(o.elapsed)
}

// PositionAt returns the orbital position after the given elapsed time,
// relative to the focus. Only position is produced; the decorative use case
// has no need for velocity.
func (o *Orbit) PositionAt(elapsed float64) geom.Vec3 {
	el := o.Elements
	M := el.MeanMotion * elapsed
	E := SolveEccentricAnomaly(el.Eccentricity, M, DefaultTolerance)

	// Ellipse parametrization in the orbital plane.
	a := el.SemiMajorAxis
	x := a * (math.Cos(E) - el.Eccentricity)
	y := a * math.Sqrt(1-el.Eccentricity*el.Eccentricity) * math.Sin(E)
	p := geom.Vec3{X: x, Y: y}

	// Rotate out of the orbital plane: argument of periapsis, inclination,
	// then ascending node.
	p = rotateZ(p, el.ArgumentOfPeriapsis)
	p = rotateX(p, el.Inclination)
	p = rotateZ(p, el.AscendingNode)
	return p
}

func rotateX(v geom.Vec3, angle float64) geom.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return geom.Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

func rotateZ(v geom.Vec3, angle float64) geom.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return geom.Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}
