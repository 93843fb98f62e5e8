package metrics

import (
	"math"

	"github.com/san-kum/randwalk/internal/sim"
)

// Displacement is the straight-line distance, in cells, between the
// starting cell and the last cell the walker occupied. Wrapped moves under
// the periodic boundary are not unwrapped.
type Displacement struct {
	name string
	last float64
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement"}
}

func (d *Displacement) Name() string {
	return d.name
}

func (d *Displacement) Observe(s sim.Sample) {
	if s.Inside {
		d.last = distance(s)
	}
}

func (d *Displacement) Value() float64 {
	return d.last
}

func (d *Displacement) Reset() {
	d.last = 0
}

// MaxDisplacement is the largest Displacement seen during the run.
type MaxDisplacement struct {
	name string
	max  float64
}

func NewMaxDisplacement() *MaxDisplacement {
	return &MaxDisplacement{name: "max_displacement"}
}

func (m *MaxDisplacement) Name() string {
	return m.name
}

func (m *MaxDisplacement) Observe(s sim.Sample) {
	if s.Inside {
		m.max = math.Max(m.max, distance(s))
	}
}

func (m *MaxDisplacement) Value() float64 {
	return m.max
}

func (m *MaxDisplacement) Reset() {
	m.max = 0
}

func distance(s sim.Sample) float64 {
	dx := float64(s.Pos.X - s.Start.X)
	dy := float64(s.Pos.Y - s.Start.Y)
	return math.Hypot(dx, dy)
}
