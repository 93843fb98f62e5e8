package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/randwalk/internal/config"
	"github.com/san-kum/randwalk/internal/experiment"
	"github.com/san-kum/randwalk/internal/logging"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/tui"
	"github.com/san-kum/randwalk/internal/viz"
	"github.com/san-kum/randwalk/internal/walker"
)

var (
	population int
	hop        float64
	boundary   string
	iterations int
	speed      float64
	seed       int64
	start      string
	configFile string
	preset     string
	logLevel   string
	envFile    string
	// run
	watch   bool
	metrics []string
	// plot
	plotHeight int
	plotWidth  int
)

// main registers the commands and flags and executes the root command,
// which opens the parameter screen when no subcommand is given.
func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "randwalk",
		Short:        "random walk on a square grid",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			seedFromClock(cfg)
			return viz.RunInteractive(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&population, "population", "n", config.DefaultPopulation, "population size; the grid side is floor(sqrt(n))")
	pf.Float64Var(&hop, "hop", config.DefaultHop, "probability of hopping on each step")
	pf.StringVar(&boundary, "boundary", config.DefaultBoundary, "boundary condition (Periodic, Mirror, Absorbing)")
	pf.IntVar(&iterations, "iterations", config.DefaultIterations, "number of steps")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed in [0,1]; the pause between steps is 1-speed seconds")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&start, "start", "", "starting cell as x,y (random when empty)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file with RANDWALK_* overrides")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a walk headless and print the outcome",
		Args:  cobra.NoArgs,
		RunE:  runWalk,
	}
	runCmd.Flags().BoolVar(&watch, "watch", false, "redraw the grid on every step")
	runCmd.Flags().StringSliceVar(&metrics, "metric", nil, "metrics to report (default all)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a walk in the live terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot position and displacement over a walk",
		Args:  cobra.NoArgs,
		RunE:  plotWalk,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	boundariesCmd := &cobra.Command{
		Use:   "boundaries",
		Short: "list boundary conditions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListBoundaries() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, presetsCmd, boundariesCmd, configCmd)
	rootCmd.AddCommand(newBatchCmds()...)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file, environment and
// explicitly set flags, in that order, then sets up logging.
func resolveConfig(cmd *cobra.Command) (*config.Config, context.Context, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("population") {
		cfg.Population = population
	}
	if flags.Changed("hop") {
		cfg.HopProbability = hop
	}
	if flags.Changed("boundary") {
		b, err := experiment.NewRegistry().GetBoundary(boundary)
		if err != nil {
			return nil, nil, err
		}
		cfg.Boundary = b.String()
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if start != "" {
		pos, err := parseStart(start)
		if err != nil {
			return nil, nil, err
		}
		cfg.Start = &pos
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, _ := logging.WithRun(logging.NewLogger(cfg.LogLevel, os.Stderr))
	logger.Debug("resolved config",
		"population", cfg.Population,
		"side", cfg.Side(),
		"hop", cfg.HopProbability,
		"boundary", cfg.Boundary,
		"iterations", cfg.Iterations,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cfg, logging.WithLogger(ctx, logger), nil
}

// seedFromClock replaces the "no seed" zero value with a clock seed. The
// chosen seed is always reported so the run can be replayed.
func seedFromClock(cfg *config.Config) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
}

func parseStart(s string) (walker.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return walker.Position{}, fmt.Errorf("start must be x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return walker.Position{}, fmt.Errorf("start x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return walker.Position{}, fmt.Errorf("start y: %w", err)
	}
	return walker.Position{X: x, Y: y}, nil
}

func setupExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	expCfg, err := experiment.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	expCfg.Metrics = metrics

	exp := experiment.New(expCfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, err
	}
	return exp, nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, ctx, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	seedFromClock(cfg)
	if !watch {
		// pacing only matters when someone is watching
		cfg.Speed = 1
	}
	exp, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if watch {
		r := tui.NewLiveRenderer(out, fmt.Sprintf("%s %dx%d", cfg.Boundary, cfg.Side(), cfg.Side()), cfg.Iterations, 0)
		exp.Runner().AddObserver(r)
		r.Start()
		defer r.Stop()
	}

	logger := logging.FromContext(ctx)
	logger.Info("running walk", "seed", cfg.Seed, "boundary", cfg.Boundary, "side", cfg.Side())
	begin := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	logger.Debug("walk complete", "elapsed", time.Since(begin))

	printSummary(cmd, cfg, result)
	return err
}

func printSummary(cmd *cobra.Command, cfg *config.Config, result *sim.Result) {
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "grid\t%dx%d\n", cfg.Side(), cfg.Side())
	fmt.Fprintf(w, "boundary\t%s\n", cfg.Boundary)
	fmt.Fprintf(w, "hop\t%.3f\n", cfg.HopProbability)
	fmt.Fprintf(w, "seed\t%d\n", cfg.Seed)
	fmt.Fprintf(w, "steps\t%d/%d\n", result.Steps, cfg.Iterations)
	fmt.Fprintf(w, "moves\t%d\n", result.Moves())
	if result.Absorbed {
		fmt.Fprintf(w, "outcome\tabsorbed at step %d\n", result.AbsorbedAt)
	} else if len(result.Path) > 0 {
		fmt.Fprintf(w, "outcome\tat %s\n", result.Path[len(result.Path)-1])
	}
	w.Flush()

	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range experiment.NewRegistry().ListMetrics() {
		if val, ok := result.Metrics[name]; ok {
			fmt.Fprintf(out, "  %s: %.6f\n", name, val)
		}
	}

	last := walker.Outcome{Kind: walker.Stayed}
	if n := len(result.Outcomes); n > 0 {
		last = result.Outcomes[n-1]
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, tui.Frame("final", sim.Sample{Step: result.Steps, Outcome: last}, result.Final, cfg.Iterations))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, ctx, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	seedFromClock(cfg)
	logging.FromContext(ctx).Info("starting live view", "seed", cfg.Seed)
	expCfg, err := experiment.FromConfig(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(expCfg)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOPULATION\tHOP\tBOUNDARY\tITERATIONS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\t%d\n", name, p.Population, p.HopProbability, p.Boundary, p.Iterations)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
