package atmosphere

import (
	"math"
	"math/rand"

	"github.com/san-kum/impactsim/internal/geom"
)

const (
	SeaLevelDensity  = 1.225  // kg/m^3
	SeaLevelPressure = 101325 // Pa
	ScaleHeight      = 8400.0 // m, tropospheric density decay

	gravityAccel   = 9.80665 // m/s^2
	gasConstantAir = 287.05  // J/(kg K)
	standardTemp   = 288.15  // K

	// WindStrength scales every wind lookup uniformly.
	WindStrength = 1.0
)

// Layer is one band of the static atmosphere table, bounded above by
// TopAltitude and below by the previous layer's top.
type Layer struct {
	Name         string  `yaml:"name"`
	TopAltitude  float64 `yaml:"top_altitude"`   // m
	DensityAtTop float64 `yaml:"density_at_top"` // kg/m^3
	Temperature  float64 `yaml:"temperature"`    // K
	WindSpeed    float64 `yaml:"wind_speed"`     // m/s
}

// Model answers density, pressure, and wind queries by altitude. Layers are
// read-only after construction and must be ordered by ascending top altitude
// with non-increasing top densities.
type Model struct {
	layers   []Layer
	windBase float64 // base wind heading, radians
}

// DefaultLayers is the standard Earth-like table.
func DefaultLayers() []Layer {
	return []Layer{
		{Name: "troposphere", TopAltitude: 11000, DensityAtTop: 0.330, Temperature: 217, WindSpeed: 12},
		{Name: "stratosphere", TopAltitude: 47000, DensityAtTop: 1.5e-3, Temperature: 270, WindSpeed: 35},
		{Name: "mesosphere", TopAltitude: 86000, DensityAtTop: 7.0e-6, Temperature: 187, WindSpeed: 60},
		{Name: "thermosphere", TopAltitude: 600000, DensityAtTop: 1.0e-11, Temperature: 1000, WindSpeed: 0},
	}
}

// New builds a model over the given layer table; a nil table gets the
// default one.
func New(layers []Layer) *Model {
	if len(layers) == 0 {
		layers = DefaultLayers()
	}
	return &Model{layers: layers}
}

// Height is the top of the modeled atmosphere in meters.
func (m *Model) Height() float64 {
	return m.layers[len(m.layers)-1].TopAltitude
}

// Layers returns the static layer table.
func (m *Model) Layers() []Layer {
	return m.layers
}

// Density returns air density in kg/m^3 at the given altitude. Below the
// surface it returns the sea-level value; inside the lowest layer it decays
// exponentially with the tropospheric scale height; above that it blends
// between successive layer-top densities with exp(-2*frac), which keeps the
// profile continuous but falls off steeper than a linear ramp.
func (m *Model) Density(altitude float64) float64 {
	if altitude <= 0 {
		return SeaLevelDensity
	}

	first := m.layers[0]
	if altitude <= first.TopAltitude {
		return SeaLevelDensity * math.Exp(-altitude/ScaleHeight)
	}

	prevTop := first.TopAltitude
	prevDensity := first.DensityAtTop
	for _, layer := range m.layers[1:] {
		if altitude <= layer.TopAltitude {
			frac := (altitude - prevTop) / (layer.TopAltitude - prevTop)
			return layer.DensityAtTop + (prevDensity-layer.DensityAtTop)*math.Exp(-2*frac)
		}
		prevTop = layer.TopAltitude
		prevDensity = layer.DensityAtTop
	}

	return 0
}

// Pressure returns air pressure in Pa via the barometric formula with fixed
// gravity, gas constant, and standard temperature. It is deliberately
// independent of the layered density table, so the two can disagree at the
// same altitude; downstream displays depend on this simplified profile.
func (m *Model) Pressure(altitude float64) float64 {
	if altitude <= 0 {
		return SeaLevelPressure
	}
	return SeaLevelPressure * math.Exp(-gravityAccel*altitude/(gasConstantAir*standardTemp))
}

// WindVector returns the wind at the given altitude with a small random
// heading jitter per call. Above the top of the atmosphere the wind is zero.
func (m *Model) WindVector(altitude float64, rng *rand.Rand) geom.Vec3 {
	if altitude > m.Height() {
		return geom.Vec3{}
	}

	speed := m.layers[0].WindSpeed
	for _, layer := range m.layers {
		if altitude <= layer.TopAltitude {
			speed = layer.WindSpeed
			break
		}
	}

	heading := m.windBase
	if rng != nil {
		heading += (rng.Float64() - 0.5) * 0.4
	}

	return geom.Vec3{
		X: math.Cos(heading),
		Y: 0,
		Z: math.Sin(heading),
	}.Scale(speed * WindStrength)
}
