package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/randwalk/internal/logging"
	"github.com/san-kum/randwalk/internal/walker"
)

// Runner is the loop around a walker model: it calls Step until the
// iteration budget is spent or the walker is absorbed.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps m at most cfg.Iterations times, waiting cfg.Delay before each
// step. A canceled context stops the run and returns the partial result
// together with the context error.
func (r *Runner) Run(ctx context.Context, m Stepper, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	result := &Result{
		Outcomes: make([]walker.Outcome, 0, cfg.Iterations),
		Path:     make([]walker.Position, 0, cfg.Iterations+1),
		Metrics:  make(map[string]float64),
	}

	for _, mt := range r.metrics {
		mt.Reset()
	}

	start, inside := m.Position()
	if inside {
		result.Path = append(result.Path, start)
	}
	side := m.Side()

	var runErr error
	for i := 1; i <= cfg.Iterations; i++ {
		if err := wait(ctx, cfg.Delay); err != nil {
			runErr = err
			break
		}

		out := m.Step()
		pos, inside := m.Position()
		result.Outcomes = append(result.Outcomes, out)
		result.Steps++
		if out.Kind == walker.Moved {
			result.Path = append(result.Path, pos)
		}

		s := Sample{Step: i, Outcome: out, Pos: pos, Inside: inside, Start: start, Side: side}
		for _, mt := range r.metrics {
			mt.Observe(s)
		}
		if len(r.observers) > 0 {
			g := m.Grid()
			for _, obs := range r.observers {
				obs.OnStep(s, g)
			}
		}

		if out.Kind == walker.Absorbed {
			result.Absorbed = true
			result.AbsorbedAt = i
			log.Info("walker absorbed", "step", i)
			break
		}
	}

	result.Final = m.Grid()
	for _, mt := range r.metrics {
		result.Metrics[mt.Name()] = mt.Value()
	}
	log.Debug("run finished", "steps", result.Steps, "moves", result.Moves(), "absorbed", result.Absorbed)

	return result, runErr
}

func validateConfig(cfg Config) error {
	if cfg.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be non-negative, got %d", ErrInvalidConfig, cfg.Iterations)
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("%w: delay must be non-negative, got %v", ErrInvalidConfig, cfg.Delay)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
