package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/impactsim/internal/atmosphere"
	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/engine"
	"github.com/san-kum/impactsim/internal/geom"
	"github.com/san-kum/impactsim/internal/integrator"
)

const (
	DefaultDt         = 0.05
	DefaultDuration   = 3600.0
	DefaultMultiplier = 1.0
)

// BodyConfig describes a celestial body in a scenario file.
type BodyConfig struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass"`   // kg
	Radius float64 `yaml:"radius"` // m
	X      float64 `yaml:"x"`      // m
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
}

// EntryConfig is the projectile's initial state: an inward entry at the
// given altitude unless explicit velocity components are set.
type EntryConfig struct {
	Altitude float64 `yaml:"altitude"` // m above the surface
	Speed    float64 `yaml:"speed"`    // m/s, applied inward when vx/vy/vz are zero
	Diameter float64 `yaml:"diameter"` // m
	Density  float64 `yaml:"density"`  // kg/m^3
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	VZ       float64 `yaml:"vz"`
}

// Config is one simulation scenario.
type Config struct {
	Fidelity        string             `yaml:"fidelity"` // "high" or "reduced"
	Dt              float64            `yaml:"dt"`
	Duration        float64            `yaml:"duration"`
	Multiplier      float64            `yaml:"multiplier"`
	Seed            int64              `yaml:"seed"`
	Primary         BodyConfig         `yaml:"primary"`
	Secondary       *BodyConfig        `yaml:"secondary,omitempty"`
	SecondaryPeriod float64            `yaml:"secondary_period"` // s
	Entry           EntryConfig        `yaml:"entry"`
	Layers          []atmosphere.Layer `yaml:"atmosphere,omitempty"`
	Params          *integrator.Params `yaml:"integrator,omitempty"`
}

// Default is an Earth scenario with a Chelyabinsk-sized entry.
func Default() *Config {
	return &Config{
		Fidelity:   "high",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Multiplier: DefaultMultiplier,
		Seed:       1,
		Primary:    BodyConfig{Name: "earth", Mass: 5.972e24, Radius: 6.371e6},
		Secondary: &BodyConfig{
			Name: "moon", Mass: 7.348e22, Radius: 1.737e6, X: 3.844e8,
		},
		SecondaryPeriod: 27.3 * 86400,
		Entry: EntryConfig{
			Altitude: 100000,
			Speed:    19000,
			Diameter: 18,
			Density:  3300,
		},
	}
}

// Load reads a scenario file over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the scenario as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FidelityMode maps the config string onto the integrator mode.
func (c *Config) FidelityMode() integrator.Fidelity {
	if c.Fidelity == "reduced" {
		return integrator.ReducedFidelity
	}
	return integrator.HighFidelity
}

// Build assembles a simulation from the scenario.
func (c *Config) Build() (*engine.Simulation, error) {
	primary, err := body.NewCelestialBody(c.Primary.Name, c.Primary.Mass, c.Primary.Radius,
		geom.Vec3{X: c.Primary.X, Y: c.Primary.Y, Z: c.Primary.Z})
	if err != nil {
		return nil, fmt.Errorf("config: primary: %w", err)
	}

	var secondary *body.CelestialBody
	if c.Secondary != nil {
		secondary, err = body.NewCelestialBody(c.Secondary.Name, c.Secondary.Mass, c.Secondary.Radius,
			geom.Vec3{X: c.Secondary.X, Y: c.Secondary.Y, Z: c.Secondary.Z})
		if err != nil {
			return nil, fmt.Errorf("config: secondary: %w", err)
		}
	}

	params := integrator.DefaultParams()
	if c.Params != nil {
		params = *c.Params
	}

	return engine.New(primary, secondary, atmosphere.New(c.Layers), engine.Options{
		Fidelity:        c.FidelityMode(),
		Params:          params,
		Seed:            c.Seed,
		SecondaryPeriod: c.SecondaryPeriod,
	})
}

// SpawnFrom places the configured entry into the simulation: at the given
// altitude above the primary's surface on its +x side, moving inward at the
// entry speed unless explicit velocity components were provided.
func (c *Config) SpawnFrom(sim *engine.Simulation) (*body.Projectile, error) {
	center := geom.Vec3{X: c.Primary.X, Y: c.Primary.Y, Z: c.Primary.Z}
	pos := center.Add(geom.Vec3{X: c.Primary.Radius + c.Entry.Altitude})
	vel := geom.Vec3{X: c.Entry.VX, Y: c.Entry.VY, Z: c.Entry.VZ}
	if vel == (geom.Vec3{}) {
		vel = geom.Vec3{X: -c.Entry.Speed}
	}
	return sim.SpawnProjectile(pos, vel, c.Entry.Diameter, c.Entry.Density)
}
