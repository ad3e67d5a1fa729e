package integrator

import (
	"math"
	"math/rand"

	"github.com/san-kum/impactsim/internal/atmosphere"
	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/geom"
	"github.com/san-kum/impactsim/internal/gravity"
)

// Fidelity selects which of the two integration models a simulation runs.
type Fidelity int

const (
	// HighFidelity works in physical units: summed gravity, wind-relative
	// drag, ablation, semi-implicit Euler.
	HighFidelity Fidelity = iota
	// ReducedFidelity works in scene units with a simplified central pull
	// and constant drag decay; plausible motion, not physics.
	ReducedFidelity
)

func (f Fidelity) String() string {
	if f == ReducedFidelity {
		return "reduced"
	}
	return "high"
}

// Params are the tunables of the per-tick step.
type Params struct {
	DragCoefficient    float64 `yaml:"drag_coefficient"`     // sphere-ish
	BurnSpeedThreshold float64 `yaml:"burn_speed_threshold"` // m/s
	AblationBase       float64 `yaml:"ablation_base"`        // kg s^2 m^-4 per unit (rho v^2 A)
	BurnRampRate       float64 `yaml:"burn_ramp_rate"`       // intensity units per second
	BurnRateBase       float64 `yaml:"burn_rate_base"`       // per-tick consumption scale
	SurfaceEpsilon     float64 `yaml:"surface_epsilon"`      // m
	MassFloorFraction  float64 `yaml:"mass_floor_fraction"`  // of initial mass
	SimplifiedGravity  float64 `yaml:"simplified_gravity"`   // scene units^3/s^2 toward primary
	SecondaryPull      float64 `yaml:"secondary_pull"`       // fraction of SimplifiedGravity
	DragDecay          float64 `yaml:"drag_decay"`           // 1/s, reduced mode
	DefaultTimeToLive  float64 `yaml:"default_time_to_live"` // s, reduced mode
}

func DefaultParams() Params {
	return Params{
		DragCoefficient:    0.47,
		BurnSpeedThreshold: 3000,
		AblationBase:       5e-9,
		BurnRampRate:       0.4,
		BurnRateBase:       0.01,
		SurfaceEpsilon:     1.0,
		MassFloorFraction:  0.01,
		SimplifiedGravity:  4.0e5,
		SecondaryPull:      0.012,
		DragDecay:          0.02,
		DefaultTimeToLive:  120,
	}
}

// Integrator advances projectiles tick by tick against a gravity field and
// an atmosphere. It owns no entity state; projectiles are mutated in place.
type Integrator struct {
	fidelity  Fidelity
	params    Params
	atm       *atmosphere.Model
	primary   *body.CelestialBody
	secondary *body.CelestialBody
	law       gravity.Law
	rng       *rand.Rand
}

func New(fidelity Fidelity, params Params, atm *atmosphere.Model, primary, secondary *body.CelestialBody, rng *rand.Rand) *Integrator {
	law := gravity.Newtonian
	if fidelity == ReducedFidelity {
		law = gravity.Simplified
	}
	return &Integrator{
		fidelity:  fidelity,
		params:    params,
		atm:       atm,
		primary:   primary,
		secondary: secondary,
		law:       law,
		rng:       rng,
	}
}

func (it *Integrator) Fidelity() Fidelity { return it.fidelity }
func (it *Integrator) Params() Params     { return it.params }

// Altitude is the height of the projectile above the primary's surface in
// meters; negative below the surface.
func (it *Integrator) Altitude(p *body.Projectile) float64 {
	return p.PhysicalPosition.Distance(it.primary.Position) - it.primary.Radius
}

// Step advances p by dt seconds and reports whether it impacted the primary
// body this tick. Terminal projectiles are never mutated again.
func (it *Integrator) Step(p *body.Projectile, others []*body.Projectile, dt float64) bool {
	if !p.Active() {
		return false
	}
	if it.fidelity == ReducedFidelity {
		return it.stepReduced(p, dt)
	}
	return it.stepPhysical(p, others, dt)
}

func (it *Integrator) stepPhysical(p *body.Projectile, others []*body.Projectile, dt float64) bool {
	altitude := it.Altitude(p)
	speed := p.Speed()

	force := gravity.TotalForceOn(p, it.primary, it.secondary, others)

	inAtmosphere := altitude < it.atm.Height()
	if inAtmosphere {
		density := it.atm.Density(altitude)
		wind := it.atm.WindVector(altitude, it.rng)
		rel := p.PhysicalVelocity.Sub(wind)
		relSpeed := rel.Norm()
		if relSpeed > 0 && density > 0 {
			dragMag := 0.5 * density * relSpeed * relSpeed * it.params.DragCoefficient * p.CrossSectionArea
			force = force.Add(rel.Scale(-dragMag / relSpeed))
		}
	}

	// Burn state toggles on the atmosphere/speed predicate alone; terminal
	// transitions happen below.
	if inAtmosphere && speed > it.params.BurnSpeedThreshold {
		if p.Phase == body.PhaseFlying {
			p.Phase = body.PhaseBurning
		}
	} else if p.Phase == body.PhaseBurning {
		p.Phase = body.PhaseFlying
	}

	if p.Burning() {
		it.ablate(p, altitude, speed, dt)

		p.BurnIntensity = geom.Clamp(p.BurnIntensity+it.params.BurnRampRate*dt, 0, 1)
		if it.rng != nil && it.rng.Float64() < it.BurnProbability(p, altitude) {
			p.Phase = body.PhaseConsumed
			return false
		}
	}

	// Semi-implicit Euler: velocity first, then position from the new
	// velocity.
	accel := force.Scale(1 / p.Mass)
	p.PhysicalVelocity = p.PhysicalVelocity.Add(accel.Scale(dt))
	p.PhysicalPosition = p.PhysicalPosition.Add(p.PhysicalVelocity.Scale(dt))
	p.SyncScene()

	return it.checkCollision(p)
}

// ablate removes mass per sigma(pressureRatio) * rho * v^2 * A and rederives
// the diameter at constant material density. Ablation never takes mass below
// the floor; full consumption is the stochastic burn-up's job.
func (it *Integrator) ablate(p *body.Projectile, altitude, speed, dt float64) {
	if speed <= it.params.BurnSpeedThreshold {
		return
	}
	density := it.atm.Density(altitude)
	if density <= 0 {
		return
	}

	pressureRatio := it.atm.Pressure(altitude) / atmosphere.SeaLevelPressure
	coeff := it.params.AblationBase * geom.Clamp(pressureRatio, 0.05, 1)

	loss := coeff * density * speed * speed * p.CrossSectionArea * dt
	floor := it.params.MassFloorFraction * p.InitialMass()
	newMass := p.Mass - loss
	if newMass < floor {
		newMass = floor
	}
	p.SetMass(newMass)
}

// BurnProbability is the per-tick chance of instantaneous full consumption:
// burn intensity times a rate factor that scales with the ratio of current
// speed to the atmosphere-derived terminal velocity. Monotonic in both.
func (it *Integrator) BurnProbability(p *body.Projectile, altitude float64) float64 {
	density := it.atm.Density(altitude)
	if density <= 0 {
		return 0
	}

	r := p.PhysicalPosition.Distance(it.primary.Position)
	if r < gravity.MinDistance {
		return 0
	}
	g := gravity.G * it.primary.Mass / (r * r)
	terminal := math.Sqrt(2 * p.Mass * g / (density * it.params.DragCoefficient * p.CrossSectionArea))
	if terminal <= 0 {
		return 0
	}

	ratio := p.Speed() / terminal
	return geom.Clamp(p.BurnIntensity*it.params.BurnRateBase*ratio, 0, 1)
}

func (it *Integrator) checkCollision(p *body.Projectile) bool {
	dist := p.PhysicalPosition.Distance(it.primary.Position)
	if dist <= it.primary.Radius+it.params.SurfaceEpsilon {
		p.Phase = body.PhaseImpacted
		return true
	}
	return false
}

// stepReduced advances the scene-unit kinematics: simplified central pull,
// an approximate secondary tug, constant drag decay, and a time-to-live. The
// burn state machine runs in both modes; only ablation is high-fidelity.
func (it *Integrator) stepReduced(p *body.Projectile, dt float64) bool {
	if p.TimeToLive > 0 {
		p.TimeToLive -= dt
		if p.TimeToLive <= 0 {
			p.Phase = body.PhaseExpired
			return false
		}
	}

	altitude := it.Altitude(p)
	if altitude < it.atm.Height() && p.Speed() > it.params.BurnSpeedThreshold {
		if p.Phase == body.PhaseFlying {
			p.Phase = body.PhaseBurning
		}
	} else if p.Phase == body.PhaseBurning {
		p.Phase = body.PhaseFlying
	}

	if p.Burning() {
		p.BurnIntensity = geom.Clamp(p.BurnIntensity+it.params.BurnRampRate*dt, 0, 1)
		if it.rng != nil && it.rng.Float64() < it.BurnProbability(p, altitude) {
			p.Phase = body.PhaseConsumed
			return false
		}
	}

	center := it.primary.Position.Scale(1 / body.SceneScale)
	accel := gravity.SimplifiedAcceleration(p.Position, center, it.params.SimplifiedGravity)

	if it.secondary != nil {
		secCenter := it.secondary.Position.Scale(1 / body.SceneScale)
		pull := gravity.SimplifiedAcceleration(p.Position, secCenter, it.params.SimplifiedGravity*it.params.SecondaryPull)
		accel = accel.Add(pull)
	}

	p.Velocity = p.Velocity.Add(accel.Scale(dt))
	decay := geom.Clamp(1-it.params.DragDecay*dt, 0, 1)
	p.Velocity = p.Velocity.Scale(decay)
	p.Position = p.Position.Add(p.Velocity.Scale(dt))

	// Keep the physical-unit view materialized for the estimator fallback.
	p.PhysicalPosition = p.Position.Scale(body.SceneScale)
	p.PhysicalVelocity = p.Velocity.Scale(body.SceneScale)

	return it.checkCollision(p)
}
