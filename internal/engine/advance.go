package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/geom"
	"github.com/san-kum/impactsim/internal/impact"
)

// EventKind tags a terminal transition observed during a tick.
type EventKind int

const (
	EventImpact EventKind = iota
	EventConsumed
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventImpact:
		return "impact"
	case EventConsumed:
		return "consumed"
	case EventExpired:
		return "expired"
	}
	return "unknown"
}

// Event records one projectile's terminal transition. Result is non-nil only
// for impacts.
type Event struct {
	ProjectileID int
	Kind         EventKind
	Result       *impact.Result
}

// ProjectileSnapshot is the per-entity view handed to the renderer each tick.
type ProjectileSnapshot struct {
	ID               int
	Position         geom.Vec3 // scene units
	PhysicalPosition geom.Vec3 // m
	Phase            body.Phase
	Active           bool
	Burning          bool
	BurnIntensity    float64
	Mass             float64
	Diameter         float64
	Altitude         float64 // m
	Speed            float64 // m/s
}

// OrbitSnapshot is the per-tick position sample of a decorative orbit.
type OrbitSnapshot struct {
	Index    int
	Position geom.Vec3
}

// TickReport is everything a caller needs from one Advance: terminal events
// plus a render snapshot of every entity.
type TickReport struct {
	Time        float64
	Events      []Event
	Projectiles []ProjectileSnapshot
	Orbits      []OrbitSnapshot
}

// Advance runs one simulation tick: the secondary body moves along its
// circular approximation, every active projectile is stepped (pairwise
// gravity included, no pair skipped), terminal transitions become events,
// and decorative orbits are sampled.
func (s *Simulation) Advance(dt, speedMultiplier float64) (*TickReport, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("engine: dt must be positive, got %g", dt)
	}
	if speedMultiplier <= 0 {
		return nil, fmt.Errorf("engine: speed multiplier must be positive, got %g", speedMultiplier)
	}

	step := dt * speedMultiplier
	s.elapsed += step

	s.moveSecondary(step)

	report := &TickReport{Time: s.elapsed}

	for _, p := range s.projectiles {
		if !p.Active() {
			continue
		}
		wasPhase := p.Phase
		hit := s.integ.Step(p, s.projectiles, step)

		switch {
		case hit:
			res := impact.Estimate(impact.TerminalStateOf(p, s.primary.Position), s.rng)
			report.Events = append(report.Events, Event{ProjectileID: p.ID, Kind: EventImpact, Result: &res})
			s.logger.Debug("projectile impacted",
				"id", p.ID, "energy_j", res.KineticEnergy, "crater_m", res.CraterDiameter)
		case p.Phase == body.PhaseConsumed && wasPhase != body.PhaseConsumed:
			report.Events = append(report.Events, Event{ProjectileID: p.ID, Kind: EventConsumed})
			s.logger.Debug("projectile consumed in the atmosphere", "id", p.ID)
		case p.Phase == body.PhaseExpired && wasPhase != body.PhaseExpired:
			report.Events = append(report.Events, Event{ProjectileID: p.ID, Kind: EventExpired})
		}
	}

	for _, p := range s.projectiles {
		report.Projectiles = append(report.Projectiles, s.snapshot(p))
	}

	for i, o := range s.orbits {
		report.Orbits = append(report.Orbits, OrbitSnapshot{Index: i, Position: o.Advance(dt, speedMultiplier)})
	}

	return report, nil
}

func (s *Simulation) snapshot(p *body.Projectile) ProjectileSnapshot {
	return ProjectileSnapshot{
		ID:               p.ID,
		Position:         p.Position,
		PhysicalPosition: p.PhysicalPosition,
		Phase:            p.Phase,
		Active:           p.Active(),
		Burning:          p.Burning(),
		BurnIntensity:    p.BurnIntensity,
		Mass:             p.Mass,
		Diameter:         p.Diameter,
		Altitude:         s.integ.Altitude(p),
		Speed:            p.Speed(),
	}
}

// moveSecondary advances the secondary body along a circular approximation
// of its orbit around the primary.
func (s *Simulation) moveSecondary(step float64) {
	if s.secondary == nil || s.secondaryAngular == 0 {
		return
	}
	s.secondaryAngle += s.secondaryAngular * step
	s.secondary.Position = s.primary.Position.Add(geom.Vec3{
		X: s.secondaryDistance * math.Cos(s.secondaryAngle),
		Y: s.secondaryDistance * math.Sin(s.secondaryAngle),
	})
}

// RunResult is the trace of a Run loop, shaped for persistence and plotting.
type RunResult struct {
	Times     []float64
	Altitudes []float64 // m
	Speeds    []float64 // m/s
	Masses    []float64 // kg
	Events    []Event
	Impact    *impact.Result
	Steps     int
}

// Run drives Advance until the duration elapses, every projectile is
// terminal, or the context is canceled between ticks. Physics is never
// interrupted mid-tick; cancellation lands on the tick boundary.
func (s *Simulation) Run(ctx context.Context, duration, dt, speedMultiplier float64) (*RunResult, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("engine: duration must be positive, got %g", duration)
	}

	result := &RunResult{}
	for t := 0.0; t < duration; t += dt * speedMultiplier {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		report, err := s.Advance(dt, speedMultiplier)
		if err != nil {
			return result, err
		}
		result.Steps++

		for _, ev := range report.Events {
			result.Events = append(result.Events, ev)
			if ev.Kind == EventImpact {
				result.Impact = ev.Result
			}
		}

		// The trace follows the first spawned projectile; the loop ends when
		// nothing is left flying.
		if len(report.Projectiles) > 0 {
			first := report.Projectiles[0]
			result.Times = append(result.Times, report.Time)
			result.Altitudes = append(result.Altitudes, first.Altitude)
			result.Speeds = append(result.Speeds, first.Speed)
			result.Masses = append(result.Masses, first.Mass)

			live := false
			for _, snap := range report.Projectiles {
				if snap.Active {
					live = true
					break
				}
			}
			if !live {
				break
			}
		}
	}

	return result, nil
}
