package walker

import (
	"fmt"
	"strings"
)

// Boundary selects what happens when a move would leave the grid.
type Boundary int

const (
	Periodic Boundary = iota
	Mirror
	Absorbing
)

var boundaryNames = [...]string{
	Periodic:  "Periodic",
	Mirror:    "Mirror",
	Absorbing: "Absorbing",
}

// Boundaries lists every policy in declaration order.
func Boundaries() []Boundary {
	return []Boundary{Periodic, Mirror, Absorbing}
}

func (b Boundary) String() string {
	if !b.valid() {
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
	return boundaryNames[b]
}

func (b Boundary) valid() bool {
	return b >= Periodic && b <= Absorbing
}

// ParseBoundary accepts a policy name in any letter case.
func ParseBoundary(s string) (Boundary, error) {
	for _, b := range Boundaries() {
		if strings.EqualFold(strings.TrimSpace(s), boundaryNames[b]) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown boundary %q", ErrInvalidParameter, s)
}

// MarshalText lets a Boundary appear by name in YAML and JSON.
func (b Boundary) MarshalText() ([]byte, error) {
	if !b.valid() {
		return nil, fmt.Errorf("%w: unknown boundary %d", ErrInvalidParameter, int(b))
	}
	return []byte(boundaryNames[b]), nil
}

func (b *Boundary) UnmarshalText(text []byte) error {
	parsed, err := ParseBoundary(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Direction is one of the four lattice moves.
type Direction int

const (
	West Direction = iota
	South
	East
	North
)

var directionNames = [...]string{West: "West", South: "South", East: "East", North: "North"}

// Directions lists the four moves in their numeric order.
func Directions() []Direction {
	return []Direction{West, South, East, North}
}

func (d Direction) String() string {
	if d < West || d > North {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Position is a cell address. X is the column, Y the row.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// OutcomeKind tags the result of one tick.
type OutcomeKind int

const (
	Stayed OutcomeKind = iota
	Moved
	Absorbed
)

func (k OutcomeKind) String() string {
	switch k {
	case Stayed:
		return "stayed"
	case Moved:
		return "moved"
	case Absorbed:
		return "absorbed"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of Model.Step. Pos is set only when Kind is Moved.
type Outcome struct {
	Kind OutcomeKind
	Pos  Position
}

func (o Outcome) String() string {
	if o.Kind == Moved {
		return "moved " + o.Pos.String()
	}
	return o.Kind.String()
}

// Source is the random stream a Model draws from. *math/rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}
