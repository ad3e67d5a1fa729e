package body

import (
	"math"

	"github.com/san-kum/impactsim/internal/geom"
)

// Phase is a projectile's position in its lifecycle state machine.
type Phase int

const (
	PhaseFlying Phase = iota
	PhaseBurning
	PhaseConsumed // burned up before reaching the surface
	PhaseImpacted // hit the primary body
	PhaseExpired  // time-to-live ran out (reduced-fidelity mode only)
)

func (p Phase) String() string {
	switch p {
	case PhaseFlying:
		return "flying"
	case PhaseBurning:
		return "burning"
	case PhaseConsumed:
		return "consumed"
	case PhaseImpacted:
		return "impacted"
	case PhaseExpired:
		return "expired"
	}
	return "unknown"
}

// Terminal reports whether the phase admits no further transitions.
func (p Phase) Terminal() bool {
	return p == PhaseConsumed || p == PhaseImpacted || p == PhaseExpired
}

// Projectile is a falling body. Both the scene-scaled kinematics and the
// physical-unit kinematics are materialized at creation; neither is derived
// lazily at use sites.
type Projectile struct {
	ID int

	Position geom.Vec3 // scene units
	Velocity geom.Vec3 // scene units per second

	PhysicalPosition geom.Vec3 // m
	PhysicalVelocity geom.Vec3 // m/s

	Mass             float64 // kg, strictly decreasing under ablation
	Density          float64 // kg/m^3, constant for the projectile's lifetime
	Diameter         float64 // m, rederived from mass at constant density
	CrossSectionArea float64 // m^2

	Phase         Phase
	BurnIntensity float64 // in [0,1], ramps while burning
	TimeToLive    float64 // s, <= 0 means unlimited; consumed in reduced mode

	initialMass float64
}

// SceneScale converts scene units to meters. One scene unit is a kilometer.
const SceneScale = 1000.0

// NewProjectile validates inputs and derives mass and cross-section from the
// given diameter and material density, assuming a sphere.
func NewProjectile(id int, posMeters, velMetersPerSec geom.Vec3, diameter, density float64) (*Projectile, error) {
	if diameter <= 0 {
		return nil, &ValidationError{Field: "diameter", Value: diameter, Wrapped: ErrNonPositiveDiameter}
	}
	if density <= 0 {
		return nil, &ValidationError{Field: "density", Value: density, Wrapped: ErrNonPositiveDensity}
	}

	r := diameter / 2
	volume := 4.0 / 3.0 * math.Pi * r * r * r
	mass := volume * density

	p := &Projectile{
		ID:               id,
		Position:         posMeters.Scale(1 / SceneScale),
		Velocity:         velMetersPerSec.Scale(1 / SceneScale),
		PhysicalPosition: posMeters,
		PhysicalVelocity: velMetersPerSec,
		Mass:             mass,
		Density:          density,
		Diameter:         diameter,
		CrossSectionArea: math.Pi * r * r,
		Phase:            PhaseFlying,
		initialMass:      mass,
	}
	return p, nil
}

// Active reports whether the projectile still participates in the simulation.
func (p *Projectile) Active() bool {
	return !p.Phase.Terminal()
}

// Burning reports whether the projectile is currently in atmospheric burn.
func (p *Projectile) Burning() bool {
	return p.Phase == PhaseBurning
}

// Speed is the physical speed in m/s.
func (p *Projectile) Speed() float64 {
	return p.PhysicalVelocity.Norm()
}

// InitialMass is the mass at creation, used as the reference for the
// ablation floor.
func (p *Projectile) InitialMass() float64 {
	return p.initialMass
}

// SetMass updates mass and rederives diameter and cross-section assuming the
// material density is preserved. Mass never increases.
func (p *Projectile) SetMass(m float64) {
	if m >= p.Mass {
		return
	}
	p.Mass = m
	volume := m / p.Density
	r := math.Cbrt(3 * volume / (4 * math.Pi))
	p.Diameter = 2 * r
	p.CrossSectionArea = math.Pi * r * r
}

// SyncScene refreshes the scene-scaled kinematics from the physical ones.
func (p *Projectile) SyncScene() {
	p.Position = p.PhysicalPosition.Scale(1 / SceneScale)
	p.Velocity = p.PhysicalVelocity.Scale(1 / SceneScale)
}
