package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/dampsim/internal/analysis"
	"github.com/san-kum/dampsim/internal/automation"
	"github.com/san-kum/dampsim/internal/config"
	"github.com/san-kum/dampsim/internal/experiment"
	"github.com/san-kum/dampsim/internal/export"
	"github.com/san-kum/dampsim/internal/optim"
	"github.com/san-kum/dampsim/internal/sim"
	"github.com/san-kum/dampsim/internal/storage"
	"github.com/san-kum/dampsim/internal/viz"
	"github.com/san-kum/dampsim/spring"
)

var (
	dataDir      string
	configFile   string
	preset       string
	omega        float64
	zeta         float64
	dt           float64
	duration     float64
	pos          float64
	vel          float64
	equilibrium  float64
	method       string
	precision    string
	outFile      string
	showPhase    bool
	ratios       []float64
	numSprings   int
	frameRate    int
	withVel      bool
	omegaRange   []float64
	zetaRange    []float64
	gridPoints   int
	objective    string
	maxOvershoot float64
	saveRuns     bool
	streamFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dampsim",
		Short:        "closed-form damped spring lab",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dampsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run and store a spring simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSpringFlags(runCmd)
	runCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "stepping method")
	runCmd.Flags().StringVar(&precision, "precision", config.DefaultPrecision, "float32 or float64")
	runCmd.Flags().StringVar(&streamFile, "stream", "", "also write samples to this csv file as they are produced")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&showPhase, "phase", false, "also draw the phase portrait")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure period, frequency and decay of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	compareCmd := &cobra.Command{
		Use:   "compare [method1] [method2] ...",
		Short: "compare stepping methods against the exact solution",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addSpringFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the damping ratio",
		Args:  cobra.NoArgs,
		RunE:  sweepDamping,
	}
	addSpringFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&ratios, "ratios", []float64{0, 0.25, 0.5, 0.75, 1, 1.5, 2, 4}, "damping ratios")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate springs in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSpringFlags(liveCmd)
	liveCmd.Flags().IntVar(&numSprings, "springs", 3, "number of springs when the config has no equilibriums")
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the run response as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&withVel, "velocity", false, "include velocity")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search angular frequency and damping ratio",
		Args:  cobra.NoArgs,
		RunE:  tuneSpring,
	}
	addSpringFlags(tuneCmd)
	tuneCmd.Flags().Float64SliceVar(&omegaRange, "omega-range", []float64{2, 10}, "angular frequency range (min,max)")
	tuneCmd.Flags().Float64SliceVar(&zetaRange, "zeta-range", []float64{0.2, 2}, "damping ratio range (min,max)")
	tuneCmd.Flags().IntVar(&gridPoints, "points", 9, "grid points per axis")
	tuneCmd.Flags().StringVar(&objective, "objective", "settling_time", "metric to minimise")
	tuneCmd.Flags().Float64Var(&maxOvershoot, "max-overshoot", -1, "overshoot limit (negative disables)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted list of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveRuns, "save", true, "store each step")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, sweepCmd, tuneCmd, scenarioCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSpringFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&omega, "omega", config.DefaultAngularFrequency, "angular frequency (rad/s)")
	cmd.Flags().Float64Var(&zeta, "zeta", config.DefaultDampingRatio, "damping ratio")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&pos, "pos", config.DefaultPosition, "initial position")
	cmd.Flags().Float64Var(&vel, "vel", 0, "initial velocity")
	cmd.Flags().Float64Var(&equilibrium, "eq", 0, "initial equilibrium")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order. The returned label names the run.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	label := "run"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, label = p, preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		label = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("omega") {
		cfg.AngularFrequency = omega
	}
	if flags.Changed("zeta") {
		cfg.DampingRatio = zeta
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("pos") {
		cfg.InitState.Position = pos
	}
	if flags.Changed("vel") {
		cfg.InitState.Velocity = vel
	}
	if flags.Changed("eq") {
		cfg.InitState.Equilibrium = equilibrium
	}
	if flags.Lookup("method") != nil && flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Lookup("precision") != nil && flags.Changed("precision") {
		cfg.Precision = precision
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, label, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, label, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, nil)
	sc, _ := cfg.Spring()

	var stream *storage.SampleWriter
	if streamFile != "" {
		f, err := os.Create(streamFile)
		if err != nil {
			return err
		}
		defer f.Close()
		stream = storage.NewSampleWriter(f)
		exp.AddObserver(stream)
	}

	sm := cfg.SpringMass()
	fmt.Printf("running %s (%s, %s)...\n", sc, sc.Params().Regime(), exp.Method())
	fmt.Printf("physical: m=%.4g kg, k=%.4g N/m, c=%.4g N·s/m, E0=%.4g J\n",
		sm.Mass, sm.Stiffness, sm.Damping, cfg.InitialEnergy())
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if stream != nil {
		if err := stream.Flush(); err != nil {
			return fmt.Errorf("stream %s: %w", streamFile, err)
		}
	}

	runID, err := st.Save(runMetadata(label, exp.Method(), cfg), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	return printMetrics(os.Stdout, result.Metrics)
}

func runMetadata(label, method string, cfg *config.Config) storage.RunMetadata {
	regime := ""
	if sc, err := cfg.Spring(); err == nil {
		regime = sc.Params().Regime().String()
	}
	return storage.RunMetadata{
		Label:            label,
		AngularFrequency: cfg.AngularFrequency,
		DampingRatio:     cfg.DampingRatio,
		Regime:           regime,
		Precision:        cfg.PrecisionOrDefault(),
		Method:           method,
		Dt:               cfg.Dt,
		Duration:         cfg.Duration,
	}
}

func printMetrics(out io.Writer, m map[string]float64) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, m[name])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tOMEGA\tZETA\tREGIME\tMETHOD\tDT\tDURATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%s\t%s\t%.4fs\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.AngularFrequency,
			run.DampingRatio,
			run.Regime,
			run.Method,
			run.Dt,
			run.Duration,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	res, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Times) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	res.Metrics = meta.Metrics
	return meta, res, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("spring: omega=%.3f zeta=%.3f (%s)\n", meta.AngularFrequency, meta.DampingRatio, meta.Regime)
	fmt.Printf("samples: %d\n\n", len(res.Times))

	fmt.Println(viz.PlotResponse(res, "position and equilibrium"))
	fmt.Println()
	fmt.Println(viz.Plot(res.Velocities, "velocity"))
	fmt.Println()

	if showPhase {
		fmt.Println("phase portrait (offset vs velocity, equilibrium at the axis crossing)")
		fmt.Print(viz.PhasePortrait(res.Offsets(), res.Velocities, 60, 20))
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}

	offsets := res.Offsets()
	fmt.Printf("analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(offsets)
	if len(ps) > 4 {
		fmt.Println(viz.Plot(ps[:len(ps)/4], "power spectrum (offset)"))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tMEASURED\tEXPECTED")

	var expectedFreq, expectedDecay float64
	if sc, err := spring.NewConfig(meta.AngularFrequency, meta.DampingRatio); err == nil {
		p := sc.Params()
		expectedFreq = p.DampedFrequency()
		expectedDecay = p.Decay()
	}

	fmt.Fprintf(w, "damped frequency (fft)\t%.4f rad/s\t%.4f rad/s\n",
		analysis.AngularFrequency(analysis.DominantFrequency(offsets, meta.Dt)), expectedFreq)
	if period := analysis.CrossingPeriod(res.Times, offsets); period > 0 {
		fmt.Fprintf(w, "damped frequency (crossings)\t%.4f rad/s\t%.4f rad/s\n", 2*math.Pi/period, expectedFreq)
	}
	fmt.Fprintf(w, "decay rate\t%.4f 1/s\t%.4f 1/s\n", analysis.DecayRate(res.Times, offsets), expectedDecay)
	fmt.Fprintf(w, "zero crossings\t%d\t\n", len(analysis.ZeroCrossings(res.Times, offsets)))
	return w.Flush()
}

func outputWriter() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, res, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := outputWriter()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, res); err != nil {
		done()
		return err
	}
	return done()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := outputWriter()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, res); err != nil {
		done()
		return err
	}
	return done()
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := experiment.Compare(context.Background(), nil, cfg, args)
	if err != nil {
		return err
	}

	fmt.Printf("reference: closedform, omega=%.3f zeta=%.3f dt=%.4f duration=%.2fs\n\n",
		cfg.AngularFrequency, cfg.DampingRatio, cfg.Dt, cfg.Duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tFINAL POS\tMAX ERR\tRMS ERR\tSTATE ERR\tOVERSHOOT\tTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.6f\t%.3e\t%.3e\t%.3e\t%.4f\t%v\n",
			r.Method, r.FinalPosition, r.MaxError, r.RMSError, r.MaxStateError, r.Metrics["overshoot"], r.Elapsed)
	}
	return w.Flush()
}

func sweepDamping(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rows, err := experiment.SweepDamping(context.Background(), cfg, ratios)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ZETA\tREGIME\tOVERSHOOT\tSETTLING\tCROSSINGS\tENERGY RATIO")
	for _, row := range rows {
		m := row.Result.Metrics
		fmt.Fprintf(w, "%.3f\t%s\t%.4f\t%.3fs\t%.0f\t%.3e\n",
			row.DampingRatio, row.Regime, m["overshoot"], m["settling_time"], m["zero_crossings"], m["energy_ratio"])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tOMEGA\tZETA\tREGIME\tDURATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		regime := "invalid"
		if sc, err := p.Spring(); err == nil {
			regime = sc.Params().Regime().String()
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\t%.1fs\n", name, p.AngularFrequency, p.DampingRatio, regime, p.Duration)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.Spring()
	if err != nil {
		return err
	}

	eqs := cfg.Equilibriums
	if len(eqs) == 0 {
		n := max(1, numSprings)
		eqs = make([]float64, n)
		for i := range eqs {
			// spread targets evenly over [-1, 1]
			if n > 1 {
				eqs[i] = -1 + 2*float64(i)/float64(n-1)
			} else {
				eqs[i] = 1
			}
		}
	}

	return viz.Run(sc, eqs, frameRate)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, res, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := outputWriter()
	if err != nil {
		return err
	}
	if err := export.ResponseSVG(w, res, 800, 400, withVel); err != nil {
		done()
		return err
	}
	return done()
}

func tuneSpring(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(omegaRange) != 2 || len(zetaRange) != 2 {
		return fmt.Errorf("ranges take exactly two values")
	}

	g := &optim.GridSearch{
		Frequencies:   optim.Linspace(omegaRange[0], omegaRange[1], gridPoints),
		DampingRatios: optim.Linspace(zetaRange[0], zetaRange[1], gridPoints),
		Objective:     objective,
	}
	if maxOvershoot >= 0 {
		g.Constraints = append(g.Constraints, optim.Constraint{Metric: "overshoot", Max: maxOvershoot})
	}

	best, all, err := g.Search(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("searched %d springs\n", len(all))
	fmt.Printf("best: omega=%.4f zeta=%.4f\n\n", best.AngularFrequency, best.DampingRatio)
	return printMetrics(os.Stdout, best.Metrics)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), sc, nil)

	var st *storage.Store
	if saveRuns {
		st = storage.New(dataDir)
		if initErr := st.Init(); initErr != nil {
			return initErr
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tOMEGA\tZETA\tMETHOD\tOVERSHOOT\tSETTLING\tRUN ID")
	for _, r := range results {
		runID := "-"
		if st != nil {
			id, saveErr := st.Save(runMetadata(r.Label, r.Method, r.Config), r.Result)
			if saveErr != nil {
				return saveErr
			}
			runID = id
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%s\t%.4f\t%.3fs\t%s\n",
			r.Label, r.Config.AngularFrequency, r.Config.DampingRatio, r.Method,
			r.Result.Metrics["overshoot"], r.Result.Metrics["settling_time"], runID)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}
	return err
}
