package model

import (
	"crypto/md5"
	"fmt"
)

// Grid is a fixed-size rectangle of cells stored row-major in a single slice
type Grid struct {
	rows    int
	columns int
	cells   []bool
}

// NewGrid creates a new grid with all cells dead
func NewGrid(rows, columns int) *Grid {
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   make([]bool, rows*columns),
	}
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns in the grid
func (g *Grid) Columns() int {
	return g.columns
}

// Reset resizes the grid and kills every cell
func (g *Grid) Reset(rows, columns int) {
	g.rows = rows
	g.columns = columns

	if cap(g.cells) < rows*columns {
		g.cells = make([]bool, rows*columns)
		return
	}
	g.cells = g.cells[:rows*columns]
	g.Clear()
}

// Clear clears all cells
func (g *Grid) Clear() {
	clear(g.cells)
}

// InBounds reports whether (row, column) lies inside the grid
func (g *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < g.rows && column >= 0 && column < g.columns
}

// Set sets a cell to alive (true) or dead (false). Out-of-bounds writes are ignored.
func (g *Grid) Set(row, column int, alive bool) {
	if g.InBounds(row, column) {
		g.cells[row*g.columns+column] = alive
	}
}

// Get returns the state of a cell, treating everything outside the grid as dead
func (g *Grid) Get(row, column int) bool {
	if !g.InBounds(row, column) {
		return false
	}
	return g.cells[row*g.columns+column]
}

// CountNeighbors counts the live cells in the Moore neighbourhood of (row, column).
// The cell itself and positions outside the grid are not counted; there is no wraparound.
func (g *Grid) CountNeighbors(row, column int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, column-1)
	maxCol := min(g.columns-1, column+1)

	for r := minRow; r <= maxRow; r++ {
		base := r * g.columns
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == column {
				continue // Skip the cell itself
			}
			if g.cells[base+c] {
				count++
			}
		}
	}

	return count
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return
}

// CopyFrom overwrites g, dimensions included, with the contents of src
func (g *Grid) CopyFrom(src *Grid) {
	g.rows = src.rows
	g.columns = src.columns
	if cap(g.cells) < len(src.cells) {
		g.cells = make([]bool, len(src.cells))
	}
	g.cells = g.cells[:len(src.cells)]
	copy(g.cells, src.cells)
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{}
	c.CopyFrom(g)
	return c
}

// Hash returns an MD5 digest of the grid state, used for cycle detection
func (g *Grid) Hash() string {
	h := md5.New()
	buf := make([]byte, len(g.cells))
	for i, alive := range g.cells {
		if alive {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}
