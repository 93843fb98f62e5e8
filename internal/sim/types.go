package sim

import (
	"time"

	"github.com/san-kum/randwalk/internal/walker"
)

// Stepper is the model the runner drives. *walker.Model satisfies it.
type Stepper interface {
	Step() walker.Outcome
	Position() (walker.Position, bool)
	Grid() walker.Grid
	Side() int
}

// Sample describes one completed tick.
type Sample struct {
	Step    int
	Outcome walker.Outcome
	Pos     walker.Position
	Inside  bool
	Start   walker.Position
	Side    int
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample, g walker.Grid)
}

type Config struct {
	Iterations int
	Delay      time.Duration
}

type Result struct {
	Outcomes   []walker.Outcome
	Path       []walker.Position
	Steps      int
	Absorbed   bool
	AbsorbedAt int
	Final      walker.Grid
	Metrics    map[string]float64
}

// Moves counts outcomes of kind Moved.
func (r *Result) Moves() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == walker.Moved {
			n++
		}
	}
	return n
}
