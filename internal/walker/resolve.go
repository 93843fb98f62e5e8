package walker

// Resolve computes where a walker at pos ends up after moving one cell in
// direction d on a grid of the given side. Only the coordinate on d's axis
// changes. The boolean is false when the move leaves the grid, which only
// the Absorbing policy allows; the returned Position is then zero and must
// not be used.
//
// Mirror reflects off an edge by bouncing one cell inward (0 -> 1 and
// side-1 -> side-2). With side < 2 there is no inward cell and Mirror
// leaves the coordinate unchanged; New rejects that combination anyway.
func Resolve(pos Position, d Direction, side int, b Boundary) (Position, bool) {
	switch d {
	case West:
		x, ok := resolveAxis(pos.X, -1, side, b)
		return Position{X: x, Y: pos.Y}.orZero(ok), ok
	case East:
		x, ok := resolveAxis(pos.X, +1, side, b)
		return Position{X: x, Y: pos.Y}.orZero(ok), ok
	case South:
		y, ok := resolveAxis(pos.Y, -1, side, b)
		return Position{X: pos.X, Y: y}.orZero(ok), ok
	case North:
		y, ok := resolveAxis(pos.Y, +1, side, b)
		return Position{X: pos.X, Y: y}.orZero(ok), ok
	}
	return pos, true
}

func resolveAxis(c, delta, side int, b Boundary) (int, bool) {
	next := c + delta
	if next >= 0 && next < side {
		return next, true
	}

	switch b {
	case Periodic:
		if delta < 0 {
			return side - 1, true
		}
		return 0, true
	case Mirror:
		if side < 2 {
			return c, true
		}
		if delta < 0 {
			return 1, true
		}
		return side - 2, true
	default:
		return 0, false
	}
}

func (p Position) orZero(ok bool) Position {
	if !ok {
		return Position{}
	}
	return p
}
