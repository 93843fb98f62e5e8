package walker

// Grid is a square occupancy lattice. Cells are addressed Rows()[y][x];
// row 0 holds y = 0, the southern edge.
type Grid struct {
	side  int
	cells [][]uint8
}

func newGrid(side int) Grid {
	cells := make([][]uint8, side)
	for y := range cells {
		cells[y] = make([]uint8, side)
	}
	return Grid{side: side, cells: cells}
}

func (g Grid) Side() int { return g.side }

// At returns the occupancy of cell (x, y); addresses outside the grid read 0.
func (g Grid) At(x, y int) uint8 {
	if !g.contains(x, y) {
		return 0
	}
	return g.cells[y][x]
}

// Rows exposes the cells row by row. Callers must treat it as read-only;
// use Snapshot for a copy they may keep.
func (g Grid) Rows() [][]uint8 {
	return g.cells
}

// Occupied counts cells holding 1.
func (g Grid) Occupied() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c != 0 {
				n++
			}
		}
	}
	return n
}

// Snapshot returns a deep copy of the grid.
func (g Grid) Snapshot() Grid {
	c := newGrid(g.side)
	for y := range g.cells {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

func (g Grid) contains(x, y int) bool {
	return x >= 0 && x < g.side && y >= 0 && y < g.side
}

func (g Grid) set(p Position, v uint8) {
	g.cells[p.Y][p.X] = v
}
