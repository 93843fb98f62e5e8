package walker

import (
	"fmt"
	"math"
)

// Model is one walker on one grid. It is created by New and mutated only by
// Step and StepToward.
type Model struct {
	grid     Grid
	pos      Position
	hop      float64
	boundary Boundary
	src      Source
	absorbed bool
}

// SideFor returns the side of the square grid built for population n: the
// largest integer whose square does not exceed n. It returns 0 for n < 1.
func SideFor(n int) int {
	if n < 1 {
		return 0
	}
	s := isqrt(n)
	return isqrt(s * s)
}

func isqrt(n int) int {
	if n < 1 {
		return 0
	}
	// Compare by division so r*r never overflows near MaxInt.
	r := int(math.Sqrt(float64(n)))
	for r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}

// MaxSide bounds the grid side so the occupancy grid stays allocatable.
const MaxSide = 1 << 12

// New builds a model for population n with the walker placed on a uniformly
// random cell. The x coordinate is drawn before y, both from src, which the
// model keeps for every later draw.
func New(n int, hop float64, b Boundary, src Source) (*Model, error) {
	side, err := validate(n, hop, b, src)
	if err != nil {
		return nil, err
	}
	x := src.Intn(side)
	y := src.Intn(side)
	return build(side, hop, b, src, Position{X: x, Y: y}), nil
}

// NewAt is New with an explicit starting cell instead of a random one.
func NewAt(n int, hop float64, b Boundary, src Source, start Position) (*Model, error) {
	side, err := validate(n, hop, b, src)
	if err != nil {
		return nil, err
	}
	if start.X < 0 || start.X >= side || start.Y < 0 || start.Y >= side {
		return nil, fmt.Errorf("%w: start %s outside %dx%d grid", ErrInvalidParameter, start, side, side)
	}
	return build(side, hop, b, src, start), nil
}

func validate(n int, hop float64, b Boundary, src Source) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: population %d must be at least 1", ErrInvalidParameter, n)
	}
	if math.IsNaN(hop) || hop < 0 || hop > 1 {
		return 0, fmt.Errorf("%w: hop probability %v outside [0,1]", ErrInvalidParameter, hop)
	}
	if !b.valid() {
		return 0, fmt.Errorf("%w: unknown boundary %d", ErrInvalidParameter, int(b))
	}
	if src == nil {
		return 0, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}
	side := SideFor(n)
	if side > MaxSide {
		return 0, fmt.Errorf("%w: population %d gives side %d, above %d", ErrInvalidParameter, n, side, MaxSide)
	}
	if b == Mirror && side < 2 {
		return 0, fmt.Errorf("%w: mirror boundary needs a grid of side 2 or more, population %d gives side %d", ErrInvalidParameter, n, side)
	}
	return side, nil
}

func build(side int, hop float64, b Boundary, src Source, start Position) *Model {
	m := &Model{
		grid:     newGrid(side),
		pos:      start,
		hop:      hop,
		boundary: b,
		src:      src,
	}
	m.grid.set(start, 1)
	return m
}

// Step advances the simulation by one tick: a hop decision and, if the
// walker hops, a uniformly chosen direction. Once absorbed the model stays
// absorbed and Step draws nothing.
func (m *Model) Step() Outcome {
	if m.absorbed {
		return Outcome{Kind: Absorbed}
	}
	if m.src.Float64() >= m.hop {
		return Outcome{Kind: Stayed}
	}
	return m.move(Direction(m.src.Intn(len(directionNames))))
}

// StepToward is Step with the direction fixed. The hop decision is still
// drawn from the source.
func (m *Model) StepToward(d Direction) Outcome {
	if m.absorbed {
		return Outcome{Kind: Absorbed}
	}
	if m.src.Float64() >= m.hop {
		return Outcome{Kind: Stayed}
	}
	return m.move(d)
}

func (m *Model) move(d Direction) Outcome {
	next, inside := Resolve(m.pos, d, m.grid.side, m.boundary)
	if !inside {
		m.grid.set(m.pos, 0)
		m.absorbed = true
		return Outcome{Kind: Absorbed}
	}
	// Clear before set: with Periodic on a 1x1 grid next == pos.
	m.grid.set(m.pos, 0)
	m.grid.set(next, 1)
	m.pos = next
	return Outcome{Kind: Moved, Pos: next}
}

func (m *Model) Side() int               { return m.grid.side }
func (m *Model) Boundary() Boundary      { return m.boundary }
func (m *Model) HopProbability() float64 { return m.hop }
func (m *Model) Absorbed() bool          { return m.absorbed }

// Position reports the walker's cell; ok is false after absorption.
func (m *Model) Position() (pos Position, ok bool) {
	if m.absorbed {
		return Position{}, false
	}
	return m.pos, true
}

// Grid returns a copy of the current occupancy.
func (m *Model) Grid() Grid {
	return m.grid.Snapshot()
}
