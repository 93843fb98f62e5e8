package main

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/randwalk/internal/logging"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

// trace records the walker's cell after every step. Steps after absorption
// repeat the last in-grid cell.
type trace struct {
	xs, ys, dist []float64
	last         walker.Position
}

func (tr *trace) OnStep(s sim.Sample, g walker.Grid) {
	if s.Inside {
		tr.last = s.Pos
	}
	tr.xs = append(tr.xs, float64(tr.last.X))
	tr.ys = append(tr.ys, float64(tr.last.Y))
	tr.dist = append(tr.dist, math.Hypot(float64(tr.last.X-s.Start.X), float64(tr.last.Y-s.Start.Y)))
}

func plotWalk(cmd *cobra.Command, args []string) error {
	cfg, ctx, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	seedFromClock(cfg)
	cfg.Speed = 1

	exp, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	tr := &trace{}
	if pos, ok := exp.Model().Position(); ok {
		tr.last = pos
	}
	exp.Runner().AddObserver(tr)

	logging.FromContext(ctx).Info("running walk", "seed", cfg.Seed, "boundary", cfg.Boundary, "side", cfg.Side())
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	if result.Steps == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "boundary: %s  grid: %dx%d  seed: %d\n", cfg.Boundary, cfg.Side(), cfg.Side(), cfg.Seed)
	if result.Absorbed {
		fmt.Fprintf(out, "absorbed at step %d\n", result.AbsorbedAt)
	}
	fmt.Fprintln(out)

	series := []struct {
		data    []float64
		caption string
	}{
		{tr.xs, "x (column) vs step"},
		{tr.ys, "y (row) vs step"},
		{tr.dist, "distance from start vs step"},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(s.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}
