package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/randwalk/internal/automation"
	"github.com/san-kum/randwalk/internal/experiment"
	"github.com/san-kum/randwalk/internal/walker"
)

var (
	// sweep
	hopMin      float64
	hopMax      float64
	sweepPoints int
	// trials
	numTrials int
)

func newBatchCmds() []*cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one walk per hop probability over a range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&hopMin, "hop-min", 0, "lowest hop probability")
	sweepCmd.Flags().Float64Var(&hopMax, "hop-max", 1, "highest hop probability")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 11, "number of hop values")

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "repeat a walk with independent seeds and report absorption",
		Args:  cobra.NoArgs,
		RunE:  runTrials,
	}
	trialsCmd.Flags().IntVar(&numTrials, "trials", 100, "number of walks")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the walks listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	return []*cobra.Command{sweepCmd, trialsCmd, scenarioCmd}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, ctx, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	seedFromClock(cfg)
	b, err := cfg.BoundaryPolicy()
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(ctx, &automation.HopSweep{
		Population: cfg.Population,
		Boundary:   b,
		HopMin:     hopMin,
		HopMax:     hopMax,
		NumSteps:   sweepPoints,
		Iterations: cfg.Iterations,
		Seed:       cfg.Seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %dx%d, %d iterations, seed %d\n\n", b, cfg.Side(), cfg.Side(), cfg.Iterations, cfg.Seed)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HOP\tMOVES\tCOVERAGE\tDISPLACEMENT\tABSORBED")
	for _, r := range results {
		absorbed := "-"
		if r.Absorbed {
			absorbed = fmt.Sprintf("step %d", r.AbsorbedAt)
		}
		fmt.Fprintf(w, "%.3f\t%d\t%.4f\t%.3f\t%s\n", r.HopProbability, r.Moves, r.Coverage, r.Displacement, absorbed)
	}
	return w.Flush()
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, ctx, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	seedFromClock(cfg)
	b, err := cfg.BoundaryPolicy()
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Population:     cfg.Population,
		HopProbability: cfg.HopProbability,
		Boundary:       b,
		Iterations:     cfg.Iterations,
		NumTrials:      numTrials,
		Seed:           cfg.Seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	absorbed, survived, mean := automation.MonteCarloStats(results)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "grid\t%dx%d\n", cfg.Side(), cfg.Side())
	fmt.Fprintf(w, "boundary\t%s\n", b)
	fmt.Fprintf(w, "seed\t%d\n", cfg.Seed)
	fmt.Fprintf(w, "trials\t%d\n", len(results))
	fmt.Fprintf(w, "absorbed\t%d\n", absorbed)
	fmt.Fprintf(w, "survived\t%d\n", survived)
	if !math.IsNaN(mean) {
		fmt.Fprintf(w, "mean absorption step\t%.2f\n", mean)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	_, ctx, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	results, runErr := automation.RunScenario(ctx, sc, experiment.NewRegistry())

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintf(out, "scenario %s\n", sc.Name)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tBOUNDARY\tGRID\tSTEPS\tMOVES\tOUTCOME")
	for i, r := range results {
		step := sc.Steps[i]
		side := walker.SideFor(step.Population)
		outcome := "inside"
		if r.Absorbed {
			outcome = fmt.Sprintf("absorbed at step %d", r.AbsorbedAt)
		}
		fmt.Fprintf(w, "%d\t%s\t%dx%d\t%d\t%d\t%s\n", i+1, step.Boundary, side, side, r.Steps, r.Moves(), outcome)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}
