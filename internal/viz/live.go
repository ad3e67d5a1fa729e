package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/impactsim/internal/engine"
	"github.com/san-kum/impactsim/internal/impact"
)

const (
	width           = 70
	height          = 22
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	burnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	impactStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Factory rebuilds the simulation with a fresh projectile, used on reset so
// the whole run restarts from its seed.
type Factory func() (*engine.Simulation, error)

// Model drives a live descent: each UI tick advances the simulation and
// redraws the altitude profile plus a stats panel.
type Model struct {
	factory    Factory
	sim        *engine.Simulation
	scenario   string
	dt         float64
	multiplier float64

	canvas     *Canvas
	trail      []struct{ x, y int }
	altHistory []float64

	entryAltitude float64
	last          *engine.ProjectileSnapshot
	impact        *impact.Result
	lastEvent     *engine.Event
	running       bool
	err           error
}

// NewModel builds the live view. The factory must produce a simulation with
// one projectile already spawned.
func NewModel(factory Factory, scenario string, dt, multiplier float64) (Model, error) {
	sim, err := factory()
	if err != nil {
		return Model{}, err
	}
	return Model{
		factory:    factory,
		sim:        sim,
		scenario:   scenario,
		dt:         dt,
		multiplier: multiplier,
		canvas:     NewCanvas(width, height),
		trail:      make([]struct{ x, y int }, 0, historyCapacity),
		altHistory: make([]float64, 0, historyCapacity),
		running:    true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.impact == nil && m.lastEvent == nil {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	report, err := m.sim.Advance(m.dt, m.multiplier)
	if err != nil {
		m.err = err
		m.running = false
		return
	}

	for i := range report.Events {
		ev := report.Events[i]
		m.lastEvent = &ev
		if ev.Kind == engine.EventImpact {
			m.impact = ev.Result
		}
	}

	if len(report.Projectiles) > 0 {
		snap := report.Projectiles[0]
		m.last = &snap
		if m.entryAltitude == 0 {
			m.entryAltitude = snap.Altitude
		}
		m.altHistory = append(m.altHistory, snap.Altitude)
		if len(m.altHistory) > historyCapacity {
			m.altHistory = m.altHistory[1:]
		}
	}
}

func (m *Model) reset() {
	sim, err := m.factory()
	if err != nil {
		m.err = err
		return
	}
	m.sim = sim
	m.trail = m.trail[:0]
	m.altHistory = m.altHistory[:0]
	m.entryAltitude = 0
	m.last = nil
	m.impact = nil
	m.lastEvent = nil
	m.err = nil
	m.running = true
}

// draw paints the descent profile: the planet limb along the bottom, the
// altitude trail sweeping left to right, and a flare around the head while
// burning.
func (m *Model) draw() {
	m.canvas.Clear()
	cw, ch := width*2, height*4
	groundY := ch - 3

	// A circle much wider than the canvas, tangent to the ground line at the
	// center, reads as the planet's curvature. The radius keeps the sag at
	// the canvas edges within a couple of sub-pixels.
	limbRadius := cw * 6
	m.canvas.DrawCircle(cw/2, groundY+limbRadius, limbRadius)

	if m.last == nil || m.entryAltitude <= 0 {
		return
	}

	frac := m.last.Altitude / m.entryAltitude
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	x := len(m.altHistory) * (cw - 8) / historyCapacity
	if x >= cw-4 {
		x = cw - 5
	}
	y := 4 + int((1-frac)*float64(groundY-8))

	m.trail = append(m.trail, struct{ x, y int }{x + 4, y})
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	head := 1
	if m.last.Burning {
		head = 2 + int(m.last.BurnIntensity*2)
	}
	m.canvas.FillCircle(x+4, y, head)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = "ERROR: " + m.err.Error()
	case m.impact != nil:
		status = impactStyle.Render("IMPACT")
	case m.lastEvent != nil && m.lastEvent.Kind == engine.EventConsumed:
		status = burnStyle.Render("BURNED UP")
	case m.lastEvent != nil && m.lastEvent.Kind == engine.EventExpired:
		status = "EXPIRED"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.altHistory) > 1 {
		km := make([]float64, len(m.altHistory))
		for i, a := range m.altHistory {
			km[i] = a / 1000
		}
		chart := asciigraph.Plot(km, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Altitude (km)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sim.Elapsed())) + "\n")
	if m.last != nil {
		s.WriteString(labelStyle.Render("Altitude") + valueStyle.Render(fmt.Sprintf("%.1f km", m.last.Altitude/1000)) + "\n")
		s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.0f m/s", m.last.Speed)) + "\n")
		s.WriteString(labelStyle.Render("Mass") + valueStyle.Render(fmt.Sprintf("%.1f kg", m.last.Mass)) + "\n")
		s.WriteString(labelStyle.Render("Diameter") + valueStyle.Render(fmt.Sprintf("%.2f m", m.last.Diameter)) + "\n")
		s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(m.last.Phase.String()) + "\n")
		if m.last.Burning {
			s.WriteString(labelStyle.Render("Burn") + burnStyle.Render(fmt.Sprintf("%.0f%%", m.last.BurnIntensity*100)) + "\n")
		}
	}

	if m.impact != nil {
		s.WriteString("\n" + impactStyle.Render("IMPACT ESTIMATE") + "\n")
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3g kt TNT", m.impact.TNTKilotons)) + "\n")
		s.WriteString(labelStyle.Render("Crater") + valueStyle.Render(fmt.Sprintf("%.0f m wide", m.impact.CraterDiameter)) + "\n")
		s.WriteString(labelStyle.Render("Blast") + valueStyle.Render(fmt.Sprintf("%.1f km", m.impact.BlastRadiusKm)) + "\n")
		s.WriteString(labelStyle.Render("Magnitude") + valueStyle.Render(fmt.Sprintf("M%.1f", m.impact.EstimatedMagnitude)) + "\n")
		if m.impact.IsOceanImpact {
			s.WriteString(labelStyle.Render("Tsunami") + valueStyle.Render(fmt.Sprintf("%.0f km", m.impact.TsunamiRadiusKm)) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
