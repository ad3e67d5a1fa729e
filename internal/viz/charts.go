package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// TrajectoryCharts renders the stored descent trace as stacked terminal
// charts, one per quantity.
func TrajectoryCharts(altitudes, speeds, masses []float64) string {
	var b strings.Builder

	if len(altitudes) > 1 {
		km := make([]float64, len(altitudes))
		for i, a := range altitudes {
			km[i] = a / 1000
		}
		b.WriteString(asciigraph.Plot(km, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("Altitude (km)")))
		b.WriteString("\n\n")
	}
	if len(speeds) > 1 {
		kms := make([]float64, len(speeds))
		for i, v := range speeds {
			kms[i] = v / 1000
		}
		b.WriteString(asciigraph.Plot(kms, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("Speed (km/s)")))
		b.WriteString("\n\n")
	}
	if len(masses) > 1 {
		b.WriteString(asciigraph.Plot(masses, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("Mass (kg)")))
		b.WriteString("\n")
	}

	return b.String()
}

// DensityProfile charts atmospheric density samples taken at increasing
// altitudes.
func DensityProfile(densities []float64) string {
	if len(densities) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString(asciigraph.Plot(densities, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("Density (kg/m3) vs altitude")))
	b.WriteString("\n")
	return b.String()
}
