package gravity

import (
	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/geom"
)

// G is the gravitational constant in m^3/(kg s^2).
const G = 6.67430e-11

// MinDistance is the stability clamp: below this separation ForceBetween
// returns zero instead of dividing by a near-zero r^2.
const MinDistance = 1.0

// Law selects the force model for a simulation run.
type Law int

const (
	// Newtonian is the full pairwise F = G*m1*m2/r^2 model.
	Newtonian Law = iota
	// Simplified is the reduced-fidelity central pull a = -k/r^2 toward the
	// primary origin, with a tunable strength instead of G*M.
	Simplified
)

func (l Law) String() string {
	if l == Simplified {
		return "simplified"
	}
	return "newtonian"
}

// ForceBetween returns the force on a body at posA with massA exerted by a
// body at posB with massB, directed from A toward B. Separations under
// MinDistance yield the zero vector.
func ForceBetween(posA geom.Vec3, massA float64, posB geom.Vec3, massB float64) geom.Vec3 {
	delta := posB.Sub(posA)
	r := delta.Norm()
	if r < MinDistance {
		return geom.Vec3{}
	}
	magnitude := G * massA * massB / (r * r)
	return delta.Scale(magnitude / r)
}

// SimplifiedAcceleration returns the reduced-fidelity acceleration toward
// the given center: magnitude strength/r^2, zero-clamped like ForceBetween.
func SimplifiedAcceleration(pos, center geom.Vec3, strength float64) geom.Vec3 {
	delta := center.Sub(pos)
	r := delta.Norm()
	if r < MinDistance {
		return geom.Vec3{}
	}
	return delta.Scale(strength / (r * r) / r)
}

// TotalForceOn sums the gravitational force on projectile p from the primary
// body, the optional secondary body, and every other active projectile.
// Pairwise projectile gravity is O(n^2) across the active set; the caller is
// expected to keep that set small (tens), and no pair is ever skipped.
func TotalForceOn(p *body.Projectile, primary, secondary *body.CelestialBody, others []*body.Projectile) geom.Vec3 {
	total := ForceBetween(p.PhysicalPosition, p.Mass, primary.Position, primary.Mass)
	if secondary != nil {
		total = total.Add(ForceBetween(p.PhysicalPosition, p.Mass, secondary.Position, secondary.Mass))
	}
	for _, o := range others {
		if o == p || !o.Active() {
			continue
		}
		total = total.Add(ForceBetween(p.PhysicalPosition, p.Mass, o.PhysicalPosition, o.Mass))
	}
	return total
}
