package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/skovran/physbox/internal/analysis"
	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/export"
	"github.com/skovran/physbox/internal/gui"
	"github.com/skovran/physbox/internal/metrics"
	"github.com/skovran/physbox/internal/script"
	"github.com/skovran/physbox/internal/session"
	"github.com/skovran/physbox/internal/storage"
	"github.com/skovran/physbox/internal/sweep"
	"github.com/skovran/physbox/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	preset     string
	configFile string
	save       bool
	particle   int
	field      string
	svgOut     string

	sweepField string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	metricName string

	logger *slog.Logger
)

func main() {
	logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "physbox",
		Short: "real-time 2D physics sandbox",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the interactive GUI when no command given.
			gui.RunInteractive(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physbox", "data directory")

	guiCmd := &cobra.Command{
		Use:   "gui [mode]",
		Short: "open a mode in the window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := string(config.ModeCollision)
			if len(args) > 0 {
				mode = args[0]
			}
			cfg, err := buildConfig(cmd, mode)
			if err != nil {
				return err
			}
			gui.Run(cfg, logger)
			return nil
		},
	}
	addConfigFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui [mode]",
		Short: "open a mode in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := string(config.ModeCollision)
			if len(args) > 0 {
				mode = args[0]
			}
			cfg, err := buildConfig(cmd, mode)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addConfigFlags(tuiCmd)

	runCmd := &cobra.Command{
		Use:   "run [mode]",
		Short: "run a mode headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	runCmd.Flags().BoolVar(&save, "save", false, "record the run")
	addConfigFlags(runCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", false, "record the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [mode]",
		Short: "sweep one config field and chart a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepField, "field", "gravity", "config field to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "low end of the range")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "high end of the range")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "points across the range")
	sweepCmd.Flags().StringVar(&metricName, "metric", "kinetic_energy", "metric to report per point")
	sweepCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", 10.0, "duration per point")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "random seed shared by all points (0 uses the clock)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded particle trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particle, "particle", 0, "particle index")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON metadata or SVG trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "write particle trajectories as SVG to this file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&particle, "particle", 0, "particle index")
	analyzeCmd.Flags().StringVar(&field, "field", "y", "trace field: x, y, vx, vy, speed")

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list presets for a mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := config.ParseMode(args[0])
			if err != nil {
				return err
			}
			names := config.ListPresets(mode)
			if len(names) == 0 {
				fmt.Printf("no presets for mode: %s\n", mode)
				return nil
			}
			fmt.Printf("presets for %s:\n", mode)
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list simulation modes",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("modes:")
			fmt.Println("  orbit      planets circling a serrated sun")
			fmt.Println("  ballistic  aim the cannon, watch the arc")
			fmt.Println("  collision  grab a ball and throw it")
			fmt.Println("  settling   five fluids, one race to the bottom")
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, scenarioCmd, sweepCmd, listCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd, modesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration name")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

// buildConfig resolves mode argument, preset, config file, and seed
// flag into one Config. A config file wins over the mode argument;
// an explicit --seed wins over both.
func buildConfig(cmd *cobra.Command, modeArg string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		mode, err := config.ParseMode(modeArg)
		if err != nil {
			return nil, err
		}
		if preset != "" {
			p := config.GetPreset(mode, preset)
			if p == nil {
				return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(mode))
			}
			c := *p
			cfg = &c
		} else {
			cfg = config.DefaultFor(mode)
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func attachMetrics(s *session.Session, mode config.Mode) {
	s.AddMetric(metrics.NewKineticEnergy())
	s.AddMetric(metrics.NewPeakSpeed())
	if mode == config.ModeCollision {
		s.AddMetric(metrics.NewMomentumDrift())
		s.AddMetric(metrics.NewCollisions())
		s.AddMetric(metrics.NewMeanImpact())
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := session.New(cfg)
	if err != nil {
		return err
	}
	attachMetrics(s, cfg.Mode)

	fmt.Printf("running %s for %.1fs (dt %.4fs)...\n", cfg.Mode, duration, dt)
	start := time.Now()

	rc := session.RunConfig{Dt: dt, Duration: duration}
	result, err := s.Run(context.Background(), rc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.Steps)
	printMetrics(result)

	if save {
		return saveRun(cfg, rc, result)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := sc.Config()
	if err != nil {
		return err
	}
	s, err := session.New(cfg)
	if err != nil {
		return err
	}
	attachMetrics(s, cfg.Mode)

	fmt.Printf("scenario %q: %s mode, %d events, %.1fs\n", sc.Name, cfg.Mode, len(sc.Events), sc.Duration)
	result, err := script.PlayOn(context.Background(), s, sc)
	if err != nil {
		return err
	}

	fmt.Printf("steps: %d\n", result.Steps)
	printMetrics(result)

	if n := len(result.Frames); n > 0 {
		if r := result.Frames[n-1].Result; r != nil {
			fmt.Printf("\nflight: range %.1f px, max height %.1f px, angle %.1f deg\n",
				r.Range, r.MaxHeight, r.Angle)
		}
	}

	if save {
		rc := session.RunConfig{Dt: sc.Dt, Duration: sc.Duration}
		if rc.Dt == 0 {
			rc.Dt = 1.0 / 60
		}
		return saveRun(cfg, rc, result)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	mode, err := config.ParseMode(args[0])
	if err != nil {
		return err
	}

	r := &sweep.Run{
		Mode:     mode,
		Axis:     sweep.Axis{Field: sweepField, Min: sweepMin, Max: sweepMax, Steps: sweepSteps},
		Metric:   metricName,
		Seed:     seed,
		Dt:       dt,
		Duration: duration,
	}

	fmt.Printf("sweeping %s %s over [%g, %g] in %d points (%.1fs each)...\n",
		mode, sweepField, sweepMin, sweepMax, sweepSteps, duration)
	start := time.Now()
	pts, err := r.Execute(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepField), strings.ToUpper(metricName))
	for _, p := range pts {
		fmt.Fprintf(w, "%.4g\t%.6f\n", p.Value, p.Metric)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(pts) >= 2 {
		data := make([]float64, len(pts))
		for i, p := range pts {
			data[i] = p.Metric
		}
		fmt.Println()
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", metricName, sweepField)),
		)
		fmt.Println(graph)
	}

	lo, hi := sweep.Extremes(pts)
	fmt.Printf("\nlowest  %s at %s=%.4g (%.6f)\n", metricName, sweepField, lo.Value, lo.Metric)
	fmt.Printf("highest %s at %s=%.4g (%.6f)\n", metricName, sweepField, hi.Value, hi.Metric)
	return nil
}

func printMetrics(result *session.Result) {
	if len(result.Metrics) == 0 {
		return
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
}

func saveRun(cfg *config.Config, rc session.RunConfig, result *session.Result) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, rc, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
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
	fmt.Fprintln(w, "ID\tMODE\tTIME\tDURATION\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("particle: %d\n\n", particle)

	series := []struct {
		caption string
		pick    func(storage.FrameRecord) float64
	}{
		{"x position (px)", func(r storage.FrameRecord) float64 { return r.X }},
		{"y position (px)", func(r storage.FrameRecord) float64 { return r.Y }},
		{"speed (px/s)", func(r storage.FrameRecord) float64 { return math.Hypot(r.VX, r.VY) }},
	}

	for _, sp := range series {
		data := storage.Series(records, particle, sp.pick)
		if len(data) < 2 {
			return fmt.Errorf("no data for particle %d", particle)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sp.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if svgOut != "" {
		records, err := st.LoadFrames(args[0])
		if err != nil {
			return err
		}
		doc := export.TrajectorySVG(records, 800, 600)
		if doc == "" {
			return fmt.Errorf("run %s has no frames", args[0])
		}
		if err := os.WriteFile(svgOut, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d steps)\n", svgOut, meta.Steps)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	pick, err := pickField(field)
	if err != nil {
		return err
	}
	data := storage.Series(records, particle, pick)

	freqs, power := analysis.PowerSpectrum(data, meta.Dt)
	if len(power) == 0 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s, particle %d, field %s\n\n", meta.Mode, particle, field)

	graph := asciigraph.Plot(power,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", field)),
	)
	fmt.Println(graph)
	fmt.Println()

	hz, mag := analysis.DominantFrequency(freqs, power)
	fmt.Printf("dominant frequency: %.3f hz (magnitude %.2f)\n", hz, mag)
	if hz > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/hz)
	}

	return nil
}

func pickField(name string) (func(storage.FrameRecord) float64, error) {
	switch name {
	case "x":
		return func(r storage.FrameRecord) float64 { return r.X }, nil
	case "y":
		return func(r storage.FrameRecord) float64 { return r.Y }, nil
	case "vx":
		return func(r storage.FrameRecord) float64 { return r.VX }, nil
	case "vy":
		return func(r storage.FrameRecord) float64 { return r.VY }, nil
	case "speed":
		return func(r storage.FrameRecord) float64 { return math.Hypot(r.VX, r.VY) }, nil
	}
	return nil, fmt.Errorf("unknown field: %s (want x, y, vx, vy, or speed)", name)
}
