package gravity

import (
	"math"
	"testing"

	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/geom"
)

func TestForceBetweenMagnitude(t *testing.T) {
	posA := geom.Vec3{}
	posB := geom.Vec3{X: 1000}
	m1, m2 := 1e6, 2e6

	f := ForceBetween(posA, m1, posB, m2)

	want := G * m1 * m2 / (1000 * 1000)
	if got := f.Norm(); math.Abs(got-want)/want > 1e-12 {
		t.Errorf("magnitude: got %g, want %g", got, want)
	}

	// Directed from A toward B.
	if f.X <= 0 || f.Y != 0 || f.Z != 0 {
		t.Errorf("direction wrong: %+v", f)
	}
}

func TestForceBetweenDegenerateDistance(t *testing.T) {
	p := geom.Vec3{X: 42, Y: -7, Z: 3}

	if ForceBetween(p, 1e10, p, 1e10) != (geom.Vec3{}) {
		t.Error("coincident positions must produce zero force")
	}

	near := p.Add(geom.Vec3{X: MinDistance * 0.5})
	if ForceBetween(p, 1e10, near, 1e10) != (geom.Vec3{}) {
		t.Error("sub-epsilon separation must produce zero force")
	}
}

func TestSimplifiedAcceleration(t *testing.T) {
	center := geom.Vec3{}
	pos := geom.Vec3{X: 10}
	k := 100.0

	a := SimplifiedAcceleration(pos, center, k)

	want := k / (10 * 10)
	if got := a.Norm(); math.Abs(got-want) > 1e-12 {
		t.Errorf("magnitude: got %g, want %g", got, want)
	}
	if a.X >= 0 {
		t.Errorf("should point toward the center: %+v", a)
	}

	if SimplifiedAcceleration(center, center, k) != (geom.Vec3{}) {
		t.Error("degenerate distance must clamp to zero")
	}
}

func TestSymmetricPairAttraction(t *testing.T) {
	primary, err := body.NewCelestialBody("earth", 5.972e24, 6.371e6, geom.Vec3{})
	if err != nil {
		t.Fatal(err)
	}

	a, _ := body.NewProjectile(1, geom.Vec3{X: 8e6}, geom.Vec3{}, 10, 3000)
	b, _ := body.NewProjectile(2, geom.Vec3{X: -8e6}, geom.Vec3{}, 10, 3000)

	pair := ForceBetween(a.PhysicalPosition, a.Mass, b.PhysicalPosition, b.Mass)
	reverse := ForceBetween(b.PhysicalPosition, b.Mass, a.PhysicalPosition, a.Mass)

	// Equal and opposite along the connecting line (the x axis).
	if math.Abs(pair.Norm()-reverse.Norm()) > 1e-18 {
		t.Errorf("magnitudes differ: %g vs %g", pair.Norm(), reverse.Norm())
	}
	if pair.Add(reverse).Norm() > 1e-18 {
		t.Errorf("forces are not opposite: %+v vs %+v", pair, reverse)
	}
	if pair.Y != 0 || pair.Z != 0 {
		t.Errorf("force off the connecting line: %+v", pair)
	}

	// Mutual pull shows up in the total alongside the primary's.
	fa := TotalForceOn(a, primary, nil, []*body.Projectile{a, b})
	solo := TotalForceOn(a, primary, nil, nil)
	if fa == solo {
		t.Error("pairwise term missing from total force")
	}
}

func TestTotalForceSkipsInactive(t *testing.T) {
	primary, _ := body.NewCelestialBody("earth", 5.972e24, 6.371e6, geom.Vec3{})
	a, _ := body.NewProjectile(1, geom.Vec3{X: 8e6}, geom.Vec3{}, 10, 3000)
	b, _ := body.NewProjectile(2, geom.Vec3{X: -8e6}, geom.Vec3{}, 10, 3000)
	b.Phase = body.PhaseImpacted

	with := TotalForceOn(a, primary, nil, []*body.Projectile{a, b})
	without := TotalForceOn(a, primary, nil, nil)
	if with != without {
		t.Error("inactive projectiles must not exert force")
	}
}
