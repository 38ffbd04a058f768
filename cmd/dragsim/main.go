package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dragsim/internal/analysis"
	"github.com/san-kum/dragsim/internal/automation"
	"github.com/san-kum/dragsim/internal/config"
	"github.com/san-kum/dragsim/internal/export"
	"github.com/san-kum/dragsim/internal/integrators"
	"github.com/san-kum/dragsim/internal/logging"
	"github.com/san-kum/dragsim/internal/optim"
	"github.com/san-kum/dragsim/internal/render"
	"github.com/san-kum/dragsim/internal/sim"
	"github.com/san-kum/dragsim/internal/viz"
	"github.com/san-kum/dragsim/internal/web"
	"github.com/spf13/cobra"
)

var (
	height        float64
	speed         float64
	angle         float64
	drag          float64
	surfaceWidth  float64
	surfaceHeight float64
	maxTime       float64
	configFile    string
	preset        string
	logLevel      string
	// Exports of the current run; "-" is stdout
	csvOut  string
	jsonOut string
	svgOut  string
	pngOut  string
	// compare
	compareDt float64
	// serve
	addr string
	// config init
	force bool
	// sweep and optimize
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	gridPoints int
	objective  string
)

// main registers the commands and runs the root command, which opens the
// terminal UI when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "dragsim",
		Short:        "projectile motion with linear air resistance",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&height, "height", config.DefaultHeight, "initial height (m)")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "initial velocity (m/s)")
	pf.Float64Var(&angle, "angle", config.DefaultAngle, "launch angle (degrees)")
	pf.Float64Var(&drag, "drag", config.DefaultDrag, "air resistance coefficient (1/s)")
	pf.Float64Var(&surfaceWidth, "width", config.DefaultSurfaceWidth, "surface width (px)")
	pf.Float64Var(&surfaceHeight, "surface-height", config.DefaultSurfaceHeight, "surface height (px)")
	pf.Float64Var(&maxTime, "max-time", sim.DefaultMaxDuration, "headless run limit (s)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset launch")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal simulation",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one launch headless and print its history",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write per-tick frames as CSV")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write the run as JSON")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final scene as SVG")
	runCmd.Flags().StringVar(&pngOut, "png", "", "write a trajectory plot as PNG")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot height and speed against time",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the closed-form flight",
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&compareDt, "dt", sim.Dt, "timestep")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the browser simulation",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tHEIGHT\tSPEED\tANGLE\tDRAG")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", name, p.Height, p.Speed, p.Angle, p.Drag)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the launches listed in a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the launch across a range of one parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "angle", "parameter to sweep (height, speed, angle, drag)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 90, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search one parameter for the best run",
		Args:  cobra.NoArgs,
		RunE:  optimize,
	}
	optimizeCmd.Flags().StringVar(&sweepParam, "param", "angle", "parameter to search (height, speed, angle, drag)")
	optimizeCmd.Flags().Float64Var(&sweepFrom, "from", 0, "lower bound")
	optimizeCmd.Flags().Float64Var(&sweepTo, "to", 90, "upper bound")
	optimizeCmd.Flags().IntVar(&gridPoints, "steps", 91, "grid points")
	optimizeCmd.Flags().StringVar(&objective, "objective", "range", "objective: "+strings.Join(optim.ObjectiveNames(), ", "))

	rootCmd.AddCommand(liveCmd, runCmd, plotCmd, compareCmd, serveCmd, presetsCmd, configCmd, scenarioCmd, sweepCmd, optimizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig applies defaults, then the preset, then the config file,
// then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("height") {
		cfg.Params.Height = height
	}
	if flags.Changed("speed") {
		cfg.Params.Speed = speed
	}
	if flags.Changed("angle") {
		cfg.Params.Angle = angle
	}
	if flags.Changed("drag") {
		cfg.Params.Drag = drag
	}
	if flags.Changed("width") {
		cfg.Surface.Width = surfaceWidth
	}
	if flags.Changed("surface-height") {
		cfg.Surface.Height = surfaceHeight
	}
	if flags.Changed("max-time") {
		cfg.MaxDuration = maxTime
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg.Params, cfg.Surface)
}

// headless runs the resolved launch to the ground, stopping early on ^C.
func headless(cmd *cobra.Command) (*sim.Result, *config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.Default(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting headless run", "params", cfg.Params, "surface", cfg.Surface, "max_duration", cfg.MaxDuration)
	res, err := sim.Run(ctx, cfg.Params, cfg.Surface, cfg.RunConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("run failed: %w", err)
	}
	if !res.Completed {
		logger.Warn("ball still airborne at time limit", "max_duration", cfg.MaxDuration, "time", res.Final.Time)
	}
	return res, cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	res, _, err := headless(cmd)
	if err != nil {
		return err
	}

	exports := []struct {
		path  string
		write func(io.Writer) error
	}{
		{csvOut, func(w io.Writer) error { return export.WriteCSV(w, res) }},
		{jsonOut, func(w io.Writer) error { return export.WriteJSON(w, res) }},
		{svgOut, func(w io.Writer) error { return export.WriteSVG(w, render.Build(res.Final, res.Surface)) }},
		{pngOut, func(w io.Writer) error { return export.WritePNG(w, res, 6, 4) }},
	}

	toStdout := false
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if e.path == "-" {
			toStdout = true
		}
		if err := writeOutput(cmd.OutOrStdout(), e.path, e.write); err != nil {
			return err
		}
	}
	if toStdout {
		return nil
	}

	out := cmd.OutOrStdout()
	for _, entry := range res.Log {
		fmt.Fprintln(out, entry.String())
	}
	fmt.Fprintln(out)
	printSummary(out, res)
	return nil
}

func printSummary(out io.Writer, res *sim.Result) {
	s := analysis.Summarize(res)
	last := res.Final
	frame := sim.Frame{}
	if len(res.Frames) > 0 {
		frame = res.Frames[len(res.Frames)-1]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "landed:\t%v\n", s.Landed)
	fmt.Fprintf(w, "flight time:\t%.2f s\n", s.FlightTime)
	fmt.Fprintf(w, "apex:\t%.2f m at %.2f s\n", s.ApexHeight, s.ApexTime)
	fmt.Fprintf(w, "range:\t%.2f m\n", s.Range)
	fmt.Fprintf(w, "impact speed:\t%.2f m/s\n", s.ImpactSpeed)
	fmt.Fprintf(w, "ticks:\t%d (%d path points)\n", s.Ticks, len(last.Trajectory))
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, frame.TimeInfo())
	fmt.Fprintln(out, frame.VelocityInfo())
	fmt.Fprintln(out, frame.PositionInfo())
}

func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func plotRun(cmd *cobra.Command, args []string) error {
	res, cfg, err := headless(cmd)
	if err != nil {
		return err
	}
	if len(res.Frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	heights := make([]float64, len(res.Frames))
	speeds := make([]float64, len(res.Frames))
	for i, f := range res.Frames {
		heights[i] = f.Height
		speeds[i] = f.Speed
	}

	out := cmd.OutOrStdout()
	p := cfg.Params
	fmt.Fprintf(out, "launch: h=%g m v=%g m/s angle=%g° k=%g\n", p.Height, p.Speed, p.Angle, p.Drag)
	fmt.Fprintf(out, "samples: %d\n\n", len(res.Frames))

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{heights, "height (m) vs time"},
		{speeds, "speed (m/s) vs time"},
	} {
		data, ok := render.Series(series.data)
		if !ok {
			fmt.Fprintf(out, "%s: no finite samples\n\n", series.caption)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	cmp, err := analysis.Compare(cfg.Params, names, compareDt, cfg.RunConfig().MaxDuration)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := cmp.Params
	fmt.Fprintf(out, "comparing integrators (h=%g m, v=%g m/s, angle=%g°, k=%g, dt=%.4f)\n\n", p.Height, p.Speed, p.Angle, p.Drag, cmp.Dt)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "integrator\tapex_m\tapex_err\tflight_s\tflight_err\trange_m\trange_err\tmax_dev\tenergy_drift\t")
	fmt.Fprintln(w, strings.Repeat("-", 10)+"\t\t\t\t\t\t\t\t\t")
	ref := cmp.Exact
	if ref.Landed {
		fmt.Fprintf(w, "exact\t%.4f\t-\t%.4f\t-\t%.4f\t-\t-\t-\t\n", ref.ApexHeight, ref.FlightTime, ref.Range)
	} else {
		fmt.Fprintf(w, "exact\t%.4f\t-\tairborne\t-\t-\t-\t-\t-\t\n", ref.ApexHeight)
	}
	var failures []string
	for _, r := range cmp.Results {
		if r.Err != nil || r.Stability < 1 {
			fmt.Fprintf(w, "%s\tdiverged\t-\t-\t-\t-\t-\t-\t-\t\n", r.Integrator)
			if r.Err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", r.Integrator, r.Err))
			}
			continue
		}
		if !r.Landed {
			fmt.Fprintf(w, "%s\t%.4f\t%.2e\tairborne\t-\t-\t-\t%.2e\t%.2e\t\n", r.Integrator, r.ApexHeight, r.ApexError, r.MaxDeviation, r.EnergyDrift)
			continue
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.2e\t%.4f\t%.2e\t%.4f\t%.2e\t%.2e\t%.2e\t\n",
			r.Integrator, r.ApexHeight, r.ApexError, r.FlightTime, r.FlightTimeError, r.Range, r.RangeError, r.MaxDeviation, r.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, f := range failures {
		fmt.Fprintln(cmd.ErrOrStderr(), f)
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	listen := cfg.Server.Addr
	if addr != "" {
		listen = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return web.ListenAndServe(ctx, listen, web.HandlerConfig{Logger: logging.Default(cfg.LogLevel)})
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := automation.RunScenario(ctx, sc, logging.Default(cfg.LogLevel))
	if len(outcomes) > 0 {
		out := cmd.OutOrStdout()
		if sc.Name != "" {
			fmt.Fprintf(out, "scenario: %s\n\n", sc.Name)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tLANDED\tFLIGHT_S\tAPEX_M\tRANGE_M\tIMPACT_MS")
		for _, o := range outcomes {
			s := o.Summary
			fmt.Fprintf(w, "%s\t%v\t%.2f\t%.2f\t%.2f\t%.2f\n", o.Step, s.Landed, s.FlightTime, s.ApexHeight, s.Range, s.ImpactSpeed)
		}
		w.Flush()
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:        cfg.Params,
		Surface:     cfg.Surface,
		MaxDuration: cfg.RunConfig().MaxDuration,
		ParamName:   sweepParam,
		ParamMin:    sweepFrom,
		ParamMax:    sweepTo,
		NumSteps:    sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLANDED\tFLIGHT_S\tAPEX_M\tRANGE_M\tIMPACT_MS\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		s := r.Summary
		fmt.Fprintf(w, "%g\t%v\t%.2f\t%.2f\t%.2f\t%.2f\n", r.ParamValue, s.Landed, s.FlightTime, s.ApexHeight, s.Range, s.ImpactSpeed)
	}
	return w.Flush()
}

func optimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	obj, ok := optim.Objectives[objective]
	if !ok {
		return fmt.Errorf("unknown objective: %s (available: %v)", objective, optim.ObjectiveNames())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	search := optim.NewGridSearch([]string{sweepParam}, [][]float64{optim.Linspace(sweepFrom, sweepTo, gridPoints)})
	best, score, err := search.Search(ctx, cfg.Params, cfg.Surface, cfg.RunConfig(), obj)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "best %s for %s: h=%g m v=%g m/s angle=%g° k=%g\n", sweepParam, objective, best.Height, best.Speed, best.Angle, best.Drag)
	fmt.Fprintf(out, "score: %.4f\n", score)
	return nil
}
