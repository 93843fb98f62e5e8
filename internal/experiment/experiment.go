package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/randwalk/internal/config"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

type Config struct {
	Population     int
	HopProbability float64
	Boundary       walker.Boundary
	Iterations     int
	Delay          time.Duration
	Seed           int64
	Start          *walker.Position
	Metrics        []string
}

// FromConfig converts a validated file/flag configuration.
func FromConfig(c *config.Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	b, err := c.BoundaryPolicy()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Population:     c.Population,
		HopProbability: c.HopProbability,
		Boundary:       b,
		Iterations:     c.Iterations,
		Delay:          c.Delay(),
		Seed:           c.Seed,
		Start:          c.Start,
	}, nil
}

type Experiment struct {
	cfg        Config
	model      *walker.Model
	runner     *sim.Runner
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup builds the model from the experiment's random source and attaches
// the configured metrics, or the registry defaults when none are named.
func (e *Experiment) Setup(reg *Registry) error {
	var (
		m   *walker.Model
		err error
	)
	if e.cfg.Start != nil {
		m, err = walker.NewAt(e.cfg.Population, e.cfg.HopProbability, e.cfg.Boundary, e.randSource, *e.cfg.Start)
	} else {
		m, err = walker.New(e.cfg.Population, e.cfg.HopProbability, e.cfg.Boundary, e.randSource)
	}
	if err != nil {
		return err
	}

	metrics := reg.DefaultMetrics()
	if len(e.cfg.Metrics) > 0 {
		metrics = make([]sim.Metric, 0, len(e.cfg.Metrics))
		for _, name := range e.cfg.Metrics {
			mt, err := reg.GetMetric(name)
			if err != nil {
				return err
			}
			metrics = append(metrics, mt)
		}
	}

	e.model = m
	e.runner = sim.New()
	for _, mt := range metrics {
		e.runner.AddMetric(mt)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx, e.model, sim.Config{
		Iterations: e.cfg.Iterations,
		Delay:      e.cfg.Delay,
	})
}

func (e *Experiment) Config() Config { return e.cfg }

// Model returns the walker built by Setup.
func (e *Experiment) Model() *walker.Model { return e.model }

// Runner returns the underlying runner for adding observers
func (e *Experiment) Runner() *sim.Runner { return e.runner }
