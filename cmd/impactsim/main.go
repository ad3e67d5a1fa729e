package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/impactsim/internal/atmosphere"
	"github.com/san-kum/impactsim/internal/config"
	"github.com/san-kum/impactsim/internal/engine"
	"github.com/san-kum/impactsim/internal/impact"
	"github.com/san-kum/impactsim/internal/kepler"
	"github.com/san-kum/impactsim/internal/store"
	"github.com/san-kum/impactsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	multiplier float64
	seed       int64
	fidelity   string
	altitude   float64
	speed      float64
	diameter   float64
	density    float64
	configFile string
	preset     string
	// Atmosphere sampling
	maxAltKm float64
	samples  int
	// Kepler solver inputs
	ecc         float64
	meanAnomaly float64
	tolerance   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "impactsim",
		Short: "asteroid entry and impact simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".impactsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an entry simulation",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run an entry with live visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's metadata and trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	atmosphereCmd := &cobra.Command{
		Use:   "atmosphere",
		Short: "print the atmospheric density and pressure profile",
		RunE:  atmosphereProfile,
	}
	atmosphereCmd.Flags().Float64Var(&maxAltKm, "max-alt", 120, "top altitude in km")
	atmosphereCmd.Flags().IntVar(&samples, "samples", 40, "number of samples")

	keplerCmd := &cobra.Command{
		Use:   "kepler",
		Short: "solve Kepler's equation for the given elements",
		RunE:  solveKepler,
	}
	keplerCmd.Flags().Float64Var(&ecc, "ecc", 0.1, "eccentricity")
	keplerCmd.Flags().Float64Var(&meanAnomaly, "mean-anomaly", 1.0, "mean anomaly (rad)")
	keplerCmd.Flags().Float64Var(&tolerance, "tol", kepler.DefaultTolerance, "convergence tolerance")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, atmosphereCmd, keplerCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&multiplier, "speed-mult", config.DefaultMultiplier, "speed multiplier")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&fidelity, "fidelity", "high", "integration mode (high or reduced)")
	cmd.Flags().Float64Var(&altitude, "altitude", 100000, "entry altitude (m)")
	cmd.Flags().Float64Var(&speed, "speed", 19000, "entry speed (m/s)")
	cmd.Flags().Float64Var(&diameter, "diameter", 18, "body diameter (m)")
	cmd.Flags().Float64Var(&density, "density", 3300, "body density (kg/m3)")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")
}

// resolveConfig layers the scenario sources: preset, then config file, then
// CLI flags on top.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.Default()
	name := "custom"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = configFile
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("speed-mult") {
		cfg.Multiplier = multiplier
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("fidelity") {
		cfg.Fidelity = fidelity
	}
	if cmd.Flags().Changed("altitude") {
		cfg.Entry.Altitude = altitude
	}
	if cmd.Flags().Changed("speed") {
		cfg.Entry.Speed = speed
		cfg.Entry.VX, cfg.Entry.VY, cfg.Entry.VZ = 0, 0, 0
	}
	if cmd.Flags().Changed("diameter") {
		cfg.Entry.Diameter = diameter
	}
	if cmd.Flags().Changed("density") {
		cfg.Entry.Density = density
	}

	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := cfg.Build()
	if err != nil {
		return err
	}
	if _, err := cfg.SpawnFrom(sim); err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", name)
	start := time.Now()

	result, err := sim.Run(context.Background(), cfg.Duration, cfg.Dt, cfg.Multiplier)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Fidelity, cfg.Dt, cfg.Duration, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)

	for _, ev := range result.Events {
		fmt.Printf("event: projectile %d %s\n", ev.ProjectileID, ev.Kind)
	}

	if result.Impact != nil {
		fmt.Println()
		printImpact(result.Impact)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	factory := func() (*engine.Simulation, error) {
		sim, err := cfg.Build()
		if err != nil {
			return nil, err
		}
		if _, err := cfg.SpawnFrom(sim); err != nil {
			return nil, err
		}
		return sim, nil
	}

	m, err := viz.NewModel(factory, name, cfg.Dt, cfg.Multiplier)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tFIDELITY\tOUTCOME")

	for _, run := range runs {
		outcome := "no impact"
		if run.Impact != nil {
			outcome = fmt.Sprintf("%.3g kt", run.Impact.TNTKilotons)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Fidelity,
			outcome,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(traj.Times))

	fmt.Println(viz.TrajectoryCharts(traj.Altitudes, traj.Speeds, traj.Masses))

	if meta.Impact != nil {
		printImpact(meta.Impact)
	}

	return nil
}

func printImpact(r *impact.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "impact estimate:")
	fmt.Fprintf(w, "  energy\t%.4g J (%.3g kt TNT)\n", r.KineticEnergy, r.TNTKilotons)
	fmt.Fprintf(w, "  crater\t%.0f m wide, %.0f m deep\n", r.CraterDiameter, r.CraterDepth)
	fmt.Fprintf(w, "  blast radius\t%.1f km\n", r.BlastRadiusKm)
	fmt.Fprintf(w, "  severe damage\t%.1f km\n", r.SevereDamageKm)
	fmt.Fprintf(w, "  broken glass\t%.1f km\n", r.GlassDamageKm)
	fmt.Fprintf(w, "  magnitude\tM%.1f felt to %.0f km\n", r.EstimatedMagnitude, r.SeismicRadiusKm)
	if r.IsOceanImpact {
		fmt.Fprintf(w, "  tsunami\t%.0f km\n", r.TsunamiRadiusKm)
	}
	w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "altitude", "speed", "mass"}); err != nil {
		return err
	}
	for i := range traj.Times {
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Altitudes[i], 'f', 3, 64),
			strconv.FormatFloat(traj.Speeds[i], 'f', 3, 64),
			strconv.FormatFloat(traj.Masses[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	out := struct {
		Metadata  *store.RunMetadata `json:"metadata"`
		Times     []float64          `json:"times"`
		Altitudes []float64          `json:"altitudes"`
		Speeds    []float64          `json:"speeds"`
		Masses    []float64          `json:"masses"`
	}{meta, traj.Times, traj.Altitudes, traj.Speeds, traj.Masses}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func atmosphereProfile(cmd *cobra.Command, args []string) error {
	atm := atmosphere.New(nil)

	if samples < 2 {
		samples = 2
	}
	densities := make([]float64, samples)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALT (km)\tDENSITY (kg/m3)\tPRESSURE (Pa)")
	for i := 0; i < samples; i++ {
		alt := maxAltKm * 1000 * float64(i) / float64(samples-1)
		d := atm.Density(alt)
		densities[i] = d
		fmt.Fprintf(w, "%.1f\t%.4e\t%.4e\n", alt/1000, d, atm.Pressure(alt))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(viz.DensityProfile(densities))
	return nil
}

func solveKepler(cmd *cobra.Command, args []string) error {
	if ecc < 0 || ecc >= 1 {
		return fmt.Errorf("eccentricity must be in [0, 1), got %g", ecc)
	}

	E, iterations, converged := kepler.Solve(ecc, meanAnomaly, tolerance)

	M := math.Mod(meanAnomaly, 2*math.Pi)
	if M < 0 {
		M += 2 * math.Pi
	}

	fmt.Printf("eccentric anomaly: %.12f rad\n", E)
	fmt.Printf("iterations: %d\n", iterations)
	fmt.Printf("converged: %v\n", converged)
	fmt.Printf("residual: %.3e\n", E-ecc*math.Sin(E)-M)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIAMETER (m)\tSPEED (m/s)\tDENSITY (kg/m3)\tFIDELITY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%s\n",
			name, p.Entry.Diameter, p.Entry.Speed, p.Entry.Density, p.Fidelity)
	}
	return w.Flush()
}
