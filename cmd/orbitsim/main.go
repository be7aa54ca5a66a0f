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

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	bodies      int
	seed        int64
	dt          float64
	duration    float64
	gconst      float64
	softening   float64
	centralMass float64
	scale       float64
	bodyMass    float64
	workers     int
	sampleEvery int
	validate    bool
	configFile  string
	preset      string
	outFile     string
	frameRate   int
	stepsFrame  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "parallel central-mass n-body simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample", 0, "record every k-th step")
	runCmd.Flags().BoolVar(&validate, "validate", false, "abort on NaN/Inf state")
	runCmd.Flags().StringVar(&outFile, "out", "", "also write full run JSON to file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsFrame, "steps-per-frame", 10, "integration steps per frame")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run simulation and dump render buffers as JSON",
		RunE:  runSnapshot,
	}
	addSimFlags(snapshotCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot orbital radii of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export stored run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping across body counts",
		RunE:  benchSizes,
	}
	benchCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, snapshotCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&bodies, "bodies", config.DefaultBodies, "number of bodies")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "scene seed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&gconst, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "softening length")
	cmd.Flags().Float64Var(&centralMass, "central-mass", config.DefaultCentralMass, "central mass")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "spatial scale of the initial disk")
	cmd.Flags().Float64Var(&bodyMass, "mass", config.DefaultBodyMass, "per-body mass")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves precedence: preset, then config file, then CLI
// flags (flags win when explicitly set).
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("bodies") {
		cfg.Bodies = bodies
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gconst
	}
	if cmd.Flags().Changed("softening") {
		cfg.Softening = softening
	}
	if cmd.Flags().Changed("central-mass") {
		cfg.CentralMass = centralMass
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale = scale
	}
	if cmd.Flags().Changed("mass") {
		cfg.BodyMass = bodyMass
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("sample") {
		cfg.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("validate") {
		cfg.Validate = validate
	}

	return cfg, nil
}

func newSession(cfg *config.Config) (*engine.Session, error) {
	return engine.NewSession(engine.Config{
		Bodies:   cfg.Bodies,
		Seed:     cfg.Seed,
		Scale:    cfg.Scale,
		BodyMass: cfg.BodyMass,
		Gravity: gravity.Params{
			G:           cfg.G,
			Softening:   cfg.Softening,
			CentralMass: cfg.CentralMass,
		},
		Workers: cfg.Workers,
	})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	runner := engine.NewRunner(session)
	runner.AddMetric(metrics.NewEnergy())
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewMomentum())
	runner.AddMetric(metrics.NewAngularMomentum())
	runner.AddMetric(metrics.NewContainment(cfg.Scale * 2))

	fmt.Printf("running %d bodies for %.2fs of simulated time...\n", cfg.Bodies, cfg.Duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), engine.RunConfig{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: cfg.Validate,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	fmt.Printf("  energy drift: %.6f\n", result.EnergyDrift)

	if outFile != "" {
		if err := export.JSONFile(outFile, cfg.Bodies, cfg.Dt, cfg.Duration, cfg.Seed, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	return viz.Run(session, cfg.Dt, cfg.Scale*1.5, stepsFrame, frameRate)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		session.Advance(cfg.Dt)
	}

	snap := export.NewSnapshot(session.Population(), session.Time())
	return export.WriteSnapshot(os.Stdout, snap)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tDURATION\tDT\tSEED\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.5fs\t%d\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Duration,
			run.Dt,
			run.Seed,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d, samples: %d\n\n", meta.Bodies, len(frames))

	// Radius of body 0 and the population mean radius over time.
	r0 := make([]float64, len(frames))
	mean := make([]float64, len(frames))
	for i, frame := range frames {
		n := len(frame) / 3
		sum := 0.0
		for b := 0; b < n; b++ {
			x, y, z := frame[b*3], frame[b*3+1], frame[b*3+2]
			r := radius(x, y, z)
			if b == 0 {
				r0[i] = r
			}
			sum += r
		}
		if n > 0 {
			mean[i] = sum / float64(n)
		}
	}

	for _, plot := range []struct {
		data    []float64
		caption string
	}{
		{r0, "body 0 radius"},
		{mean, "mean radius"},
	} {
		graph := asciigraph.Plot(plot.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plot.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	_ = times

	return nil
}

func radius(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta   storage.RunMetadata `json:"meta"`
		Times  []float64           `json:"times"`
		Frames [][]float64         `json:"frames"`
	}{*meta, times, frames}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	for i, frame := range frames {
		row := make([]string, 0, len(frame)+1)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, v := range frame {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func benchSizes(cmd *cobra.Command, args []string) error {
	sizes := []int{64, 256, 1024, 4096}
	const steps = 100

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tELAPSED\tSTEPS/SEC")

	for _, n := range sizes {
		session, err := engine.NewSession(engine.Config{
			Bodies:   n,
			Seed:     1,
			Scale:    config.DefaultScale,
			BodyMass: config.DefaultBodyMass,
			Gravity:  gravity.DefaultParams(),
			Workers:  workers,
		})
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < steps; i++ {
			session.Advance(dt)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.1f\n", n, steps, elapsed,
			float64(steps)/elapsed.Seconds())
	}

	return w.Flush()
}
