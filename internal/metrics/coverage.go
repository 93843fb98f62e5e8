package metrics

import (
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

// Coverage is the share of grid cells the walker has occupied, its starting
// cell included.
type Coverage struct {
	name    string
	side    int
	visited map[walker.Position]struct{}
}

func NewCoverage() *Coverage {
	return &Coverage{
		name:    "coverage",
		visited: make(map[walker.Position]struct{}),
	}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(s sim.Sample) {
	c.side = s.Side
	c.visited[s.Start] = struct{}{}
	if s.Inside {
		c.visited[s.Pos] = struct{}{}
	}
}

func (c *Coverage) Value() float64 {
	if c.side == 0 {
		return 0
	}
	return float64(len(c.visited)) / float64(c.side*c.side)
}

func (c *Coverage) Reset() {
	c.side = 0
	c.visited = make(map[walker.Position]struct{})
}
