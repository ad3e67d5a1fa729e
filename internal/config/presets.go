package config

import "github.com/san-kum/impactsim/internal/atmosphere"

// Presets are named historical (plus one playful) entry scenarios. Each is a
// full Config so a preset can be run, saved, or edited like a loaded file.
var Presets = map[string]*Config{
	"chelyabinsk": {
		Fidelity: "high", Dt: 0.05, Duration: 600, Multiplier: 1.0, Seed: 2013,
		Primary:         BodyConfig{Name: "earth", Mass: 5.972e24, Radius: 6.371e6},
		Secondary:       &BodyConfig{Name: "moon", Mass: 7.348e22, Radius: 1.737e6, X: 3.844e8},
		SecondaryPeriod: 27.3 * 86400,
		Entry:           EntryConfig{Altitude: 97000, Speed: 19000, Diameter: 18, Density: 3300},
	},
	"tunguska": {
		Fidelity: "high", Dt: 0.05, Duration: 600, Multiplier: 1.0, Seed: 1908,
		Primary:         BodyConfig{Name: "earth", Mass: 5.972e24, Radius: 6.371e6},
		Secondary:       &BodyConfig{Name: "moon", Mass: 7.348e22, Radius: 1.737e6, X: 3.844e8},
		SecondaryPeriod: 27.3 * 86400,
		Entry:           EntryConfig{Altitude: 100000, Speed: 15000, Diameter: 60, Density: 2000},
	},
	"barringer": {
		Fidelity: "high", Dt: 0.05, Duration: 600, Multiplier: 1.0, Seed: 50000,
		Primary:         BodyConfig{Name: "earth", Mass: 5.972e24, Radius: 6.371e6},
		Secondary:       &BodyConfig{Name: "moon", Mass: 7.348e22, Radius: 1.737e6, X: 3.844e8},
		SecondaryPeriod: 27.3 * 86400,
		Entry:           EntryConfig{Altitude: 100000, Speed: 12800, Diameter: 50, Density: 7800},
	},
	"chicxulub": {
		Fidelity: "high", Dt: 0.1, Duration: 1200, Multiplier: 1.0, Seed: 66,
		Primary:         BodyConfig{Name: "earth", Mass: 5.972e24, Radius: 6.371e6},
		Secondary:       &BodyConfig{Name: "moon", Mass: 7.348e22, Radius: 1.737e6, X: 3.844e8},
		SecondaryPeriod: 27.3 * 86400,
		Entry:           EntryConfig{Altitude: 120000, Speed: 20000, Diameter: 10000, Density: 2600},
	},
	"arcade": {
		Fidelity: "reduced", Dt: 0.016, Duration: 120, Multiplier: 1.0, Seed: 7,
		Primary: BodyConfig{Name: "earth", Mass: 5.972e24, Radius: 6.371e6},
		Entry:   EntryConfig{Altitude: 80000, Speed: 11000, Diameter: 10, Density: 3000},
	},
}

// GetPreset returns a copy, so callers layering flag overrides on top never
// mutate the shared table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if p.Secondary != nil {
		sec := *p.Secondary
		cfg.Secondary = &sec
	}
	if p.Params != nil {
		params := *p.Params
		cfg.Params = &params
	}
	if len(p.Layers) > 0 {
		cfg.Layers = append([]atmosphere.Layer(nil), p.Layers...)
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
