package body

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/impactsim/internal/geom"
)

func TestNewCelestialBodyValidation(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		radius  float64
		wantErr error
	}{
		{"zero mass", 0, 6.371e6, ErrNonPositiveMass},
		{"negative mass", -1, 6.371e6, ErrNonPositiveMass},
		{"zero radius", 5.97e24, 0, ErrNonPositiveRadius},
		{"negative radius", 5.97e24, -10, ErrNonPositiveRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCelestialBody("earth", tt.mass, tt.radius, geom.Vec3{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	b, err := NewCelestialBody("earth", 5.972e24, 6.371e6, geom.Vec3{})
	if err != nil {
		t.Fatalf("valid body rejected: %v", err)
	}
	if b.Name != "earth" {
		t.Errorf("name not kept: %q", b.Name)
	}
}

func TestNewProjectileDerivedQuantities(t *testing.T) {
	diameter := 10.0
	density := 3000.0

	p, err := NewProjectile(1, geom.Vec3{Y: 1e5}, geom.Vec3{Y: -1.9e4}, diameter, density)
	if err != nil {
		t.Fatalf("valid projectile rejected: %v", err)
	}

	r := diameter / 2
	wantMass := 4.0 / 3.0 * math.Pi * r * r * r * density
	if math.Abs(p.Mass-wantMass)/wantMass > 1e-12 {
		t.Errorf("mass: got %g, want %g", p.Mass, wantMass)
	}

	wantArea := math.Pi * r * r
	if math.Abs(p.CrossSectionArea-wantArea) > 1e-9 {
		t.Errorf("area: got %g, want %g", p.CrossSectionArea, wantArea)
	}

	// Scene kinematics materialized at creation, not derived later.
	if p.Position.Y != 1e5/SceneScale {
		t.Errorf("scene position not materialized: %+v", p.Position)
	}
	if p.Phase != PhaseFlying {
		t.Errorf("new projectile should be flying, got %v", p.Phase)
	}
}

func TestNewProjectileValidation(t *testing.T) {
	if _, err := NewProjectile(1, geom.Vec3{}, geom.Vec3{}, 0, 3000); !errors.Is(err, ErrNonPositiveDiameter) {
		t.Errorf("zero diameter: got %v", err)
	}
	if _, err := NewProjectile(1, geom.Vec3{}, geom.Vec3{}, 10, -5); !errors.Is(err, ErrNonPositiveDensity) {
		t.Errorf("negative density: got %v", err)
	}

	var verr *ValidationError
	_, err := NewProjectile(1, geom.Vec3{}, geom.Vec3{}, -2, 3000)
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "diameter" {
		t.Errorf("field: got %q", verr.Field)
	}
}

func TestSetMassShrinksDiameter(t *testing.T) {
	p, err := NewProjectile(1, geom.Vec3{}, geom.Vec3{}, 10, 3000)
	if err != nil {
		t.Fatal(err)
	}

	before := p.Diameter
	p.SetMass(p.Mass * 0.5)
	if p.Diameter >= before {
		t.Errorf("diameter should shrink with mass: %g -> %g", before, p.Diameter)
	}

	// Constant density preserved.
	r := p.Diameter / 2
	vol := 4.0 / 3.0 * math.Pi * r * r * r
	if math.Abs(p.Mass/vol-p.Density)/p.Density > 1e-9 {
		t.Errorf("density drifted: %g", p.Mass/vol)
	}

	// Mass never increases through SetMass.
	cur := p.Mass
	p.SetMass(cur * 2)
	if p.Mass != cur {
		t.Error("SetMass must not grow mass")
	}
}

func TestPhaseTerminal(t *testing.T) {
	for _, ph := range []Phase{PhaseConsumed, PhaseImpacted, PhaseExpired} {
		if !ph.Terminal() {
			t.Errorf("%v should be terminal", ph)
		}
	}
	for _, ph := range []Phase{PhaseFlying, PhaseBurning} {
		if ph.Terminal() {
			t.Errorf("%v should not be terminal", ph)
		}
	}
}
