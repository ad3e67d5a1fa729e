package impact_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/impactsim/internal/body"
	"github.com/san-kum/impactsim/internal/geom"
	"github.com/san-kum/impactsim/internal/impact"
)

var _ = Describe("energy conversions", func() {
	It("computes kinetic energy as half m v squared", func() {
		Expect(impact.KineticEnergy(1000, 20000)).To(BeNumerically("~", 0.5*1000*20000*20000, 1e-3))
	})

	It("supports both TNT unit scales explicitly", func() {
		joules := 4.184e12
		Expect(impact.TNTKilotons(joules)).To(BeNumerically("~", 1.0, 1e-12))
		Expect(impact.TNTTons(joules)).To(BeNumerically("~", 1000.0, 1e-9))
	})
})

var _ = Describe("blast radius", func() {
	It("returns 0.5 km for exactly one kiloton", func() {
		Expect(impact.BlastRadiusKm(4.184e12)).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("grows with energy", func() {
		Expect(impact.BlastRadiusKm(4.184e15)).To(BeNumerically(">", impact.BlastRadiusKm(4.184e12)))
	})
})

var _ = Describe("crater scaling", func() {
	It("follows the quarter-power law", func() {
		ke := 1e15
		ratio := impact.CraterDiameter(16*ke) / impact.CraterDiameter(ke)
		Expect(ratio).To(BeNumerically("~", 2.0, 1e-9))
	})

	It("keeps depth at a fifth of diameter", func() {
		ke := 3.7e14
		Expect(impact.CraterDepth(ke)).To(BeNumerically("~", impact.CraterDiameter(ke)/5, 1e-9))
	})
})

var _ = Describe("seismic heuristics", func() {
	It("maps energy to a Richter-like magnitude", func() {
		Expect(impact.SeismicMagnitude(1e16)).To(BeNumerically("~", 16-4.4, 1e-12))
	})

	It("maps magnitude to a felt radius", func() {
		Expect(impact.SeismicRadiusKm(2.5)).To(BeNumerically("~", 10.0, 1e-9))
	})
})

var _ = Describe("Estimate", func() {
	terminal := func() impact.TerminalState {
		return impact.TerminalState{
			Mass:             5e5,
			PhysicalVelocity: geom.Vec3{Y: -1.8e4},
			Position:         geom.Vec3{X: 6.371e6},
			PrimaryCenter:    geom.Vec3{},
		}
	}

	It("is pure: identical input yields identical output", func() {
		a := impact.Estimate(terminal(), rand.New(rand.NewSource(99)))
		b := impact.Estimate(terminal(), rand.New(rand.NewSource(99)))
		Expect(a).To(Equal(b))

		c := impact.Estimate(terminal(), nil)
		d := impact.Estimate(terminal(), nil)
		Expect(c).To(Equal(d))
	})

	It("falls back to scaled scene velocity when physical velocity is absent", func() {
		st := terminal()
		st.PhysicalVelocity = geom.Vec3{}
		st.SceneVelocity = geom.Vec3{Y: -18} // 18 scene units/s = 18 km/s
		Expect(st.Speed()).To(BeNumerically("~", 18*body.SceneScale, 1e-9))

		res := impact.Estimate(st, nil)
		Expect(res.KineticEnergy).To(BeNumerically(">", 0))
	})

	It("orders the damage zones", func() {
		res := impact.Estimate(terminal(), nil)
		Expect(res.GlassDamageKm).To(BeNumerically(">=", res.SevereDamageKm))
		Expect(res.CraterDepth).To(BeNumerically("<", res.CraterDiameter))
	})

	It("only reports a tsunami radius for ocean impacts", func() {
		st := terminal()
		found := false
		for lon := 0.0; lon < 2*math.Pi; lon += 0.05 {
			st.Position = geom.Vec3{X: 6.371e6 * math.Cos(lon), Y: 6.371e6 * math.Sin(lon)}
			res := impact.Estimate(st, rand.New(rand.NewSource(1)))
			if res.IsOceanImpact {
				found = true
				Expect(res.TsunamiRadiusKm).To(BeNumerically(">=", res.SeismicRadiusKm*20))
				Expect(res.TsunamiRadiusKm).To(BeNumerically("<=", res.SeismicRadiusKm*50))
			} else {
				Expect(res.TsunamiRadiusKm).To(BeZero())
			}
		}
		Expect(found).To(BeTrue(), "periodic ocean function never classified ocean")
	})
})

var _ = Describe("ocean classification", func() {
	It("is a deterministic periodic function of position", func() {
		Expect(impact.IsOceanImpact(0.3, 1.2)).To(Equal(impact.IsOceanImpact(0.3, 1.2)))
	})

	It("classifies both land and ocean somewhere", func() {
		ocean, land := false, false
		for lat := -1.5; lat <= 1.5; lat += 0.25 {
			for lon := -3.1; lon <= 3.1; lon += 0.25 {
				if impact.IsOceanImpact(lat, lon) {
					ocean = true
				} else {
					land = true
				}
			}
		}
		Expect(ocean).To(BeTrue())
		Expect(land).To(BeTrue())
	})
})
