package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/randwalk/internal/experiment"
	"github.com/san-kum/randwalk/internal/logging"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

var ErrInvalidBatch = errors.New("automation: invalid batch")

// Scenario is a scripted sequence of walks read from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one walk in a scenario.
type ScenarioStep struct {
	Population     int              `yaml:"population"`
	HopProbability float64          `yaml:"hop_probability"`
	Boundary       string           `yaml:"boundary"`
	Iterations     int              `yaml:"iterations"`
	Seed           int64            `yaml:"seed"`
	Start          *walker.Position `yaml:"start,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", ErrInvalidBatch, scenario.Name)
	}

	return &scenario, nil
}

// RunScenario executes every step in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]*sim.Result, error) {
	logger := logging.FromContext(ctx)
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		b, err := registry.GetBoundary(step.Boundary)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "boundary", b, "population", step.Population)

		result, err := runOne(ctx, registry, experiment.Config{
			Population:     step.Population,
			HopProbability: step.HopProbability,
			Boundary:       b,
			Iterations:     step.Iterations,
			Seed:           step.Seed,
			Start:          step.Start,
		})
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// HopSweep runs one walk per hop probability, evenly spaced over
// [HopMin, HopMax], all from the same seed.
type HopSweep struct {
	Population int
	Boundary   walker.Boundary
	HopMin     float64
	HopMax     float64
	NumSteps   int
	Iterations int
	Seed       int64
}

type SweepResult struct {
	HopProbability float64
	Moves          int
	Absorbed       bool
	AbsorbedAt     int
	Coverage       float64
	Displacement   float64
}

func RunSweep(ctx context.Context, sweep *HopSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", ErrInvalidBatch)
	}
	if sweep.HopMin > sweep.HopMax {
		return nil, fmt.Errorf("%w: hop range [%v, %v] is reversed", ErrInvalidBatch, sweep.HopMin, sweep.HopMax)
	}

	logger := logging.FromContext(ctx)
	results := make([]SweepResult, 0, sweep.NumSteps)

	var hopStep float64
	if sweep.NumSteps > 1 {
		hopStep = (sweep.HopMax - sweep.HopMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		hop := sweep.HopMin + float64(i)*hopStep
		if i == sweep.NumSteps-1 && sweep.NumSteps > 1 {
			hop = sweep.HopMax
		}

		result, err := runOne(ctx, registry, experiment.Config{
			Population:     sweep.Population,
			HopProbability: hop,
			Boundary:       sweep.Boundary,
			Iterations:     sweep.Iterations,
			Seed:           sweep.Seed,
		})
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			HopProbability: hop,
			Moves:          result.Moves(),
			Absorbed:       result.Absorbed,
			AbsorbedAt:     result.AbsorbedAt,
			Coverage:       result.Metrics["coverage"],
			Displacement:   result.Metrics["displacement"],
		})
		logger.Debug("sweep point", "index", i+1, "of", sweep.NumSteps, "hop", hop)
	}

	return results, nil
}

// MonteCarloConfig repeats a walk with independent seeds drawn from Seed.
type MonteCarloConfig struct {
	Population     int
	HopProbability float64
	Boundary       walker.Boundary
	Iterations     int
	NumTrials      int
	Seed           int64
}

type MonteCarloResult struct {
	TrialID    int
	Seed       int64
	Start      walker.Position
	Absorbed   bool
	AbsorbedAt int
	Moves      int
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("%w: need at least one trial", ErrInvalidBatch)
	}

	logger := logging.FromContext(ctx)
	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	rng := rand.New(rand.NewSource(cfg.Seed))

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialSeed := rng.Int63()

		exp := experiment.New(experiment.Config{
			Population:     cfg.Population,
			HopProbability: cfg.HopProbability,
			Boundary:       cfg.Boundary,
			Iterations:     cfg.Iterations,
			Seed:           trialSeed,
			Metrics:        []string{"hop_rate"},
		})
		if err := exp.Setup(registry); err != nil {
			return results, err
		}
		start, _ := exp.Model().Position()

		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			Seed:       trialSeed,
			Start:      start,
			Absorbed:   result.Absorbed,
			AbsorbedAt: result.AbsorbedAt,
			Moves:      result.Moves(),
		})

		if (trial+1)%100 == 0 {
			logger.Info("monte carlo progress", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats summarises trials: how many were absorbed and the mean
// step of absorption among those. mean is NaN when none were absorbed.
func MonteCarloStats(results []MonteCarloResult) (absorbed, survived int, mean float64) {
	var total int
	for _, r := range results {
		if r.Absorbed {
			absorbed++
			total += r.AbsorbedAt
		} else {
			survived++
		}
	}
	if absorbed == 0 {
		return absorbed, survived, math.NaN()
	}
	return absorbed, survived, float64(total) / float64(absorbed)
}

func runOne(ctx context.Context, registry *experiment.Registry, cfg experiment.Config) (*sim.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(registry); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
