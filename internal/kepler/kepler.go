package kepler

import (
	"log/slog"
	"math"
)

const (
	// DefaultTolerance is the convergence threshold for the eccentric
	// anomaly iteration.
	DefaultTolerance = 1e-14

	// MaxIterations caps the refinement loop; hitting it returns the best
	// iterate and logs a warning instead of failing.
	MaxIterations = 100

	twoPi = 2 * math.Pi
)

var logger = slog.Default()

// SetLogger replaces the logger used for convergence warnings. A nil logger
// is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Elements are classical orbital elements for a closed (e < 1) orbit.
type Elements struct {
	SemiMajorAxis       float64 `yaml:"semi_major_axis"`       // m
	Eccentricity        float64 `yaml:"eccentricity"`          // 0 <= e < 1
	Inclination         float64 `yaml:"inclination"`           // rad
	AscendingNode       float64 `yaml:"ascending_node"`        // rad
	ArgumentOfPeriapsis float64 `yaml:"argument_of_periapsis"` // rad
	MeanMotion          float64 `yaml:"mean_motion"`           // rad/s
}

// SolveEccentricAnomaly solves Kepler's equation M = E - e*sin(E) for E.
//
// The starting guess is a closed-form third-order polynomial in e around the
// mean anomaly rather than E0 = M, which is what lets the rational Danby
// correction land inside tolerance in a handful of steps. If the loop hits
// MaxIterations the best iterate is returned and a warning is logged; the
// result is slightly off, never absent.
func SolveEccentricAnomaly(e, meanAnomaly, tolerance float64) float64 {
	E, _, _ := Solve(e, meanAnomaly, tolerance)
	return E
}

// Solve is SolveEccentricAnomaly plus the iteration count and whether the
// loop converged before the cap.
func Solve(e, meanAnomaly, tolerance float64) (E float64, iterations int, converged bool) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	M := normalizeAngle(meanAnomaly)

	// Third-order starter: E0 = M + (e - e^3/2)*sin(M) + (e^2 + 1.5*e^3*cos(M))*sin(M)*cos(M).
	e2 := e * e
	e3 := e * e2
	sinM, cosM := math.Sin(M), math.Cos(M)
	E = M + (e-0.5*e3)*sinM + (e2+1.5*e3*cosM)*sinM*cosM

	for i := 0; i < MaxIterations; i++ {
		sinE, cosE := math.Sin(E), math.Cos(E)
		f := E - e*sinE - M
		f1 := 1 - e*cosE
		f2 := e * sinE
		f3 := e * cosE

		// Danby's rational correction: successively refined Newton steps
		// folding in the second and third derivatives.
		d1 := -f / f1
		d2 := -f / (f1 + 0.5*d1*f2)
		d3 := -f / (f1 + 0.5*d2*f2 + d2*d2*f3/6)

		next := E + d3
		if math.Abs(next-E) < tolerance {
			return next, i + 1, true
		}
		E = next
	}

	logger.Warn("eccentric anomaly iteration hit the cap, returning best estimate",
		"eccentricity", e, "mean_anomaly", meanAnomaly, "residual", E-e*math.Sin(E)-M)
	return E, MaxIterations, false
}

func normalizeAngle(a float64) float64 {
	wrapped := math.Mod(a, twoPi)
	if wrapped < 0 {
		wrapped += twoPi
	}
	return wrapped
}
