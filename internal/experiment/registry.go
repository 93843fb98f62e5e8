package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/randwalk/internal/metrics"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

type Registry struct {
	boundaries map[string]walker.Boundary
	metrics    map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		boundaries: make(map[string]walker.Boundary),
		metrics:    make(map[string]func() sim.Metric),
	}

	for _, b := range walker.Boundaries() {
		r.boundaries[strings.ToLower(b.String())] = b
	}

	r.metrics["hop_rate"] = func() sim.Metric { return metrics.NewHopRate() }
	r.metrics["coverage"] = func() sim.Metric { return metrics.NewCoverage() }
	r.metrics["displacement"] = func() sim.Metric { return metrics.NewDisplacement() }
	r.metrics["max_displacement"] = func() sim.Metric { return metrics.NewMaxDisplacement() }

	return r
}

func (r *Registry) GetBoundary(name string) (walker.Boundary, error) {
	b, ok := r.boundaries[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown boundary: %s", name)
	}
	return b, nil
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListBoundaries() []string {
	names := make([]string, 0, len(r.boundaries))
	for _, b := range walker.Boundaries() {
		names = append(names, b.String())
	}
	return names
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}
