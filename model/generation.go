package model

// Generation is a read-only view of the engine's current grid.
// A view returned by the engine is only stable until the next Step, Randomize
// or Clear; use Clone to keep a snapshot across those calls.
type Generation struct {
	grid  *Grid
	index int
}

// Index returns the number of steps taken since the grid was last seeded
func (g Generation) Index() int {
	return g.index
}

// Rows returns the number of rows
func (g Generation) Rows() int {
	if g.grid == nil {
		return 0
	}
	return g.grid.rows
}

// Columns returns the number of columns
func (g Generation) Columns() int {
	if g.grid == nil {
		return 0
	}
	return g.grid.columns
}

// Alive reports whether the cell at (row, column) is live. Cells outside the grid are dead.
func (g Generation) Alive(row, column int) bool {
	if g.grid == nil {
		return false
	}
	return g.grid.Get(row, column)
}

// Population returns the number of live cells
func (g Generation) Population() int {
	if g.grid == nil {
		return 0
	}
	return g.grid.CountLivingCells()
}

// Hash identifies the cell pattern of the generation
func (g Generation) Hash() string {
	if g.grid == nil {
		return ""
	}
	return g.grid.Hash()
}

// Equal reports whether both generations hold the same cell pattern
func (g Generation) Equal(other Generation) bool {
	if g.Rows() != other.Rows() || g.Columns() != other.Columns() {
		return false
	}
	if g.grid == nil {
		return true
	}
	for i, alive := range g.grid.cells {
		if other.grid.cells[i] != alive {
			return false
		}
	}
	return true
}

// Clone returns a copy that is not affected by later engine calls
func (g Generation) Clone() Generation {
	if g.grid == nil {
		return g
	}
	return Generation{grid: g.grid.Clone(), index: g.index}
}

// Cells returns the generation as a freshly allocated rows x columns matrix
func (g Generation) Cells() [][]bool {
	out := make([][]bool, g.Rows())
	for r := range out {
		out[r] = make([]bool, g.Columns())
		copy(out[r], g.grid.cells[r*g.grid.columns:(r+1)*g.grid.columns])
	}
	return out
}

// NeighbourCounts holds the live neighbour count of every cell of the
// generation a step was computed from. The zero value reports no counts.
type NeighbourCounts struct {
	columns int
	counts  []uint8
}

// Valid reports whether the value carries counts
func (n NeighbourCounts) Valid() bool {
	return n.counts != nil
}

// At returns the neighbour count of (row, column), or 0 when unknown
func (n NeighbourCounts) At(row, column int) int {
	if n.counts == nil || row < 0 || column < 0 || column >= n.columns {
		return 0
	}
	i := row*n.columns + column
	if i >= len(n.counts) {
		return 0
	}
	return int(n.counts[i])
}
