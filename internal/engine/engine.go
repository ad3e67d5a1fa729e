package engine

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/san-kum/impactsim/internal/atmosphere"
	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/geom"
	"github.com/san-kum/impactsim/internal/integrator"
	"github.com/san-kum/impactsim/internal/kepler"
)

// Options configure a simulation at construction; the fidelity mode and the
// random seed are fixed for the run.
type Options struct {
	Fidelity        integrator.Fidelity
	Params          integrator.Params
	Seed            int64
	SecondaryPeriod float64 // s per revolution of the secondary body; 0 freezes it
	Logger          *slog.Logger
}

// Simulation is the caller-owned aggregate of all mutable simulation state:
// entity lists, the tick clock, and the injected random source. There are no
// package-level singletons; everything flows through this struct.
type Simulation struct {
	primary   *body.CelestialBody
	secondary *body.CelestialBody
	atm       *atmosphere.Model
	integ     *integrator.Integrator
	rng       *rand.Rand
	logger    *slog.Logger

	projectiles []*body.Projectile
	orbits      []*kepler.Orbit

	nextID  int
	elapsed float64

	secondaryDistance float64
	secondaryAngle    float64
	secondaryAngular  float64 // rad/s
}

// New validates the configuration and assembles a simulation. The secondary
// body is optional.
func New(primary, secondary *body.CelestialBody, atm *atmosphere.Model, opts Options) (*Simulation, error) {
	if primary == nil {
		return nil, fmt.Errorf("engine: primary body is required")
	}
	if atm == nil {
		atm = atmosphere.New(nil)
	}
	if opts.Params == (integrator.Params{}) {
		opts.Params = integrator.DefaultParams()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Simulation{
		primary:   primary,
		secondary: secondary,
		atm:       atm,
		integ:     integrator.New(opts.Fidelity, opts.Params, atm, primary, secondary, rng),
		rng:       rng,
		logger:    opts.Logger,
		nextID:    1,
	}

	if secondary != nil {
		s.secondaryDistance = secondary.Position.Distance(primary.Position)
		s.secondaryAngle = math.Atan2(
			secondary.Position.Y-primary.Position.Y,
			secondary.Position.X-primary.Position.X,
		)
		if opts.SecondaryPeriod > 0 {
			s.secondaryAngular = 2 * math.Pi / opts.SecondaryPeriod
		}
	}

	return s, nil
}

// Atmosphere exposes the read-only atmospheric queries.
func (s *Simulation) Atmosphere() *atmosphere.Model { return s.atm }

// Primary returns the primary gravitating body.
func (s *Simulation) Primary() *body.CelestialBody { return s.primary }

// Secondary returns the orbiting secondary body, or nil.
func (s *Simulation) Secondary() *body.CelestialBody { return s.secondary }

// Elapsed is the accumulated simulation time in seconds.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Projectiles returns the live projectile list, including terminal entries
// not yet pruned by the caller's renderer.
func (s *Simulation) Projectiles() []*body.Projectile { return s.projectiles }

// SpawnProjectile creates, validates, and registers a projectile from plain
// physical values. Catalog-sourced bodies arrive here already resolved to
// numbers.
func (s *Simulation) SpawnProjectile(posMeters, velMetersPerSec geom.Vec3, diameterM, densityKgM3 float64) (*body.Projectile, error) {
	p, err := body.NewProjectile(s.nextID, posMeters, velMetersPerSec, diameterM, densityKgM3)
	if err != nil {
		return nil, fmt.Errorf("engine: spawn rejected: %w", err)
	}
	if s.integ.Fidelity() == integrator.ReducedFidelity {
		p.TimeToLive = s.integ.Params().DefaultTimeToLive
	}
	s.nextID++
	s.projectiles = append(s.projectiles, p)
	return p, nil
}

// AddOrbit registers a decorative orbit and returns it. Orbiting objects
// never feed back into the gravity field.
func (s *Simulation) AddOrbit(el kepler.Elements) *kepler.Orbit {
	o := kepler.NewOrbit(el)
	s.orbits = append(s.orbits, o)
	return o
}
