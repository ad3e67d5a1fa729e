package impact

import (
	"math"
	"math/rand"

	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/geom"
)

// Tuning constants for the empirical scaling laws.
const (
	joulesPerTonTNT     = 4.184e9
	joulesPerKilotonTNT = 4.184e12

	craterConstant   = 0.07 // m per J^0.25
	craterDepthRatio = 5.0

	severeDamageFactor = 1.5
	glassDamageFactor  = 4.0

	maxSevereRadiusKm = 1000.0
	maxGlassRadiusKm  = 4000.0
)

// Result is the one-shot record produced when a projectile impacts. It is
// immutable once returned and consumed by the presentation layer.
type Result struct {
	KineticEnergy      float64 // J
	TNTEquivalentTons  float64
	TNTKilotons        float64
	CraterDiameter     float64 // m
	CraterDepth        float64 // m
	BlastRadiusKm      float64
	SevereDamageKm     float64
	GlassDamageKm      float64
	EstimatedMagnitude float64 // Richter-like
	SeismicRadiusKm    float64
	IsOceanImpact      bool
	TsunamiRadiusKm    float64 // zero for land impacts
}

// TerminalState is the kinetic state of a projectile at the moment of impact.
type TerminalState struct {
	Mass             float64
	PhysicalVelocity geom.Vec3 // m/s; preferred
	SceneVelocity    geom.Vec3 // scene units/s; fallback when physical is absent
	Position         geom.Vec3 // m
	PrimaryCenter    geom.Vec3 // m
}

// TerminalStateOf captures the estimator input from a projectile.
func TerminalStateOf(p *body.Projectile, primaryCenter geom.Vec3) TerminalState {
	return TerminalState{
		Mass:             p.Mass,
		PhysicalVelocity: p.PhysicalVelocity,
		SceneVelocity:    p.Velocity,
		Position:         p.PhysicalPosition,
		PrimaryCenter:    primaryCenter,
	}
}

// Speed returns the terminal speed in m/s, falling back to the scene-unit
// velocity scaled to meters when no physical velocity was recorded.
func (s TerminalState) Speed() float64 {
	if v := s.PhysicalVelocity.Norm(); v > 0 {
		return v
	}
	return s.SceneVelocity.Norm() * body.SceneScale
}

// KineticEnergy is 0.5*m*v^2 in joules.
func KineticEnergy(mass, speed float64) float64 {
	return 0.5 * mass * speed * speed
}

// TNTTons converts joules to tons of TNT.
func TNTTons(joules float64) float64 {
	return joules / joulesPerTonTNT
}

// TNTKilotons converts joules to kilotons of TNT. Both unit scales are used
// by callers, so both are first-class rather than derived ad hoc.
func TNTKilotons(joules float64) float64 {
	return joules / joulesPerKilotonTNT
}

// CraterDiameter applies the empirical power law D = C * KE^0.25, in meters.
func CraterDiameter(joules float64) float64 {
	return craterConstant * math.Pow(joules, 0.25)
}

// CraterDepth is diameter over a fixed ratio.
func CraterDepth(joules float64) float64 {
	return CraterDiameter(joules) / craterDepthRatio
}

// BlastRadiusKm is the simplified cube-root-like scaling kt^0.33 * 0.5.
func BlastRadiusKm(joules float64) float64 {
	return math.Pow(TNTKilotons(joules), 0.33) * 0.5
}

// SeismicMagnitude is the Richter-like heuristic log10(E) - 4.4.
func SeismicMagnitude(joules float64) float64 {
	if joules <= 0 {
		return 0
	}
	return math.Log10(joules) - 4.4
}

// SeismicRadiusKm is the felt radius for a given magnitude.
func SeismicRadiusKm(magnitude float64) float64 {
	return math.Pow(10, (magnitude-2.5)/1.5) * 10
}

// IsOceanImpact classifies an impact point as ocean or land with a fixed
// periodic function of latitude and longitude. This is an approximation for
// plausible variety, not real geography.
func IsOceanImpact(latitude, longitude float64) bool {
	return math.Sin(3*longitude)*math.Cos(2*latitude) > 0.1
}

// LatLon converts an impact position to latitude/longitude (radians)
// relative to the primary body's center, z axis polar.
func LatLon(position, center geom.Vec3) (lat, lon float64) {
	rel := position.Sub(center)
	r := rel.Norm()
	if r == 0 {
		return 0, 0
	}
	lat = math.Asin(geom.Clamp(rel.Z/r, -1, 1))
	lon = math.Atan2(rel.Y, rel.X)
	return lat, lon
}

// Estimate converts a terminal kinetic state into the full impact record.
//
// The only randomness is the tsunami radius factor, drawn uniformly from
// [20, 50) off the injected source; a nil source uses the midpoint, keeping
// the call fully deterministic.
func Estimate(state TerminalState, rng *rand.Rand) Result {
	ke := KineticEnergy(state.Mass, state.Speed())
	craterD := CraterDiameter(ke)
	blastKm := BlastRadiusKm(ke)

	severe := geom.Clamp(severeDamageFactor*craterD/1000, 0, maxSevereRadiusKm)
	glass := geom.Clamp(glassDamageFactor*severe, severe, maxGlassRadiusKm)

	magnitude := SeismicMagnitude(ke)
	seismicKm := SeismicRadiusKm(magnitude)

	lat, lon := LatLon(state.Position, state.PrimaryCenter)
	ocean := IsOceanImpact(lat, lon)

	tsunamiKm := 0.0
	if ocean {
		factor := 35.0
		if rng != nil {
			factor = 20 + rng.Float64()*30
		}
		tsunamiKm = seismicKm * factor
	}

	return Result{
		KineticEnergy:      ke,
		TNTEquivalentTons:  TNTTons(ke),
		TNTKilotons:        TNTKilotons(ke),
		CraterDiameter:     craterD,
		CraterDepth:        CraterDepth(ke),
		BlastRadiusKm:      blastKm,
		SevereDamageKm:     severe,
		GlassDamageKm:      glass,
		EstimatedMagnitude: magnitude,
		SeismicRadiusKm:    seismicKm,
		IsOceanImpact:      ocean,
		TsunamiRadiusKm:    tsunamiKm,
	}
}
