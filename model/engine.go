package model

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifecore/rules"
)

// DefaultLiveProbability is the chance of a cell starting live after Randomize
const DefaultLiveProbability = 0.3

// Engine owns a fixed-size grid and computes Game of Life generations on demand.
// It has no clock of its own and is not safe for concurrent use: all calls must
// come from a single goroutine.
type Engine struct {
	rows    int
	columns int

	current *Grid
	scratch *Grid
	counts  []uint8
	index   int

	rule    rules.Rule
	workers int
	pool    *GridPool
	rng     *rand.Rand
}

// Option configures an Engine
type Option func(*Engine)

// WithRule replaces the default B3/S23 rule
func WithRule(rule rules.Rule) Option {
	return func(e *Engine) {
		e.rule = rule
	}
}

// WithParallelism splits each step into row bands computed by up to workers goroutines.
// Step still returns only once the whole generation is computed.
func WithParallelism(workers int) Option {
	return func(e *Engine) {
		e.workers = max(1, workers)
	}
}

// WithPool draws scratch grids from pool instead of keeping a private one
func WithPool(pool *GridPool) Option {
	return func(e *Engine) {
		e.pool = pool
	}
}

// NewEngine creates a rows x columns engine with every cell dead.
// seed drives the pseudo-random source used by Randomize.
func NewEngine(rows, columns int, seed int64, opts ...Option) (*Engine, error) {
	if rows <= 0 || columns <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewEngine] grid must be at least 1x1, got %dx%d", rows, columns)
	}

	e := &Engine{
		rows:    rows,
		columns: columns,
		current: NewGrid(rows, columns),
		counts:  make([]uint8, rows*columns),
		rule:    rules.Conway,
		workers: 1,
		rng:     rand.New(rand.NewPCG(uint64(seed), 0)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Rows returns the number of rows
func (e *Engine) Rows() int {
	return e.rows
}

// Columns returns the number of columns
func (e *Engine) Columns() int {
	return e.columns
}

// Rule returns the transition rule in use
func (e *Engine) Rule() rules.Rule {
	return e.rule
}

// Generation returns a read-only view of the current grid
func (e *Engine) Generation() Generation {
	return Generation{grid: e.current, index: e.index}
}

// Population returns the number of live cells in the current generation
func (e *Engine) Population() int {
	return e.current.CountLivingCells()
}

// Randomize sets every cell live independently with probability liveProbability
// and resets the generation index.
func (e *Engine) Randomize(liveProbability float64) error {
	if math.IsNaN(liveProbability) || liveProbability < 0 || liveProbability > 1 {
		return errors.Wrapf(ErrInvalidArgument, "[Randomize] live probability must be within [0, 1], got %v", liveProbability)
	}

	for i := range e.current.cells {
		e.current.cells[i] = e.rng.Float64() < liveProbability
	}
	e.index = 0
	return nil
}

// Clear kills every cell and resets the generation index
func (e *Engine) Clear() {
	e.current.Clear()
	e.index = 0
}

// CellAt returns the state of the cell at (row, column)
func (e *Engine) CellAt(row, column int) (bool, error) {
	if err := e.checkBounds(row, column); err != nil {
		return false, errors.Wrap(err, "[CellAt]")
	}
	return e.current.Get(row, column), nil
}

// NeighbourCount returns the number of live cells among the in-bounds neighbours of (row, column)
func (e *Engine) NeighbourCount(row, column int) (int, error) {
	if err := e.checkBounds(row, column); err != nil {
		return 0, errors.Wrap(err, "[NeighbourCount]")
	}
	return e.current.CountNeighbors(row, column), nil
}

// Set forces the state of a single cell
func (e *Engine) Set(row, column int, alive bool) error {
	if err := e.checkBounds(row, column); err != nil {
		return errors.Wrap(err, "[Set]")
	}
	e.current.Set(row, column, alive)
	return nil
}

// Place stamps the live cells of p with its top-left corner at (row, column).
// Nothing is written unless the whole pattern fits.
func (e *Engine) Place(p Pattern, row, column int) error {
	for _, c := range p.Cells {
		if err := e.checkBounds(row+c[0], column+c[1]); err != nil {
			return errors.Wrapf(err, "[Place] pattern %q at (%d,%d)", p.Name, row, column)
		}
	}
	for _, c := range p.Cells {
		e.current.Set(row+c[0], column+c[1], true)
	}
	return nil
}

// Step computes the next generation from the current one and makes it current.
// The returned counts are the neighbour counts of the generation the step was computed from.
// Both values are only valid until the next call that changes the grid.
func (e *Engine) Step() (Generation, NeighbourCounts) {
	next := e.scratchGrid()

	if e.workers <= 1 || e.rows < 2 {
		e.computeRows(next, 0, e.rows)
	} else {
		var (
			eg            errgroup.Group
			numWorkers    = min(e.workers, e.rows)
			rowsPerWorker = (e.rows + numWorkers - 1) / numWorkers // Ceiling division
		)
		for i := range numWorkers {
			var (
				startRow = i * rowsPerWorker
				endRow   = min(startRow+rowsPerWorker, e.rows)
			)
			if startRow >= e.rows {
				break
			}
			eg.Go(func() error {
				e.computeRows(next, startRow, endRow)
				return nil
			})
		}
		// bands never fail; Wait only joins them
		_ = eg.Wait()
	}

	prev := e.current
	e.current = next
	e.release(prev)
	e.index++

	return e.Generation(), NeighbourCounts{columns: e.columns, counts: e.counts}
}

// computeRows writes every cell of rows [startRow, endRow) into next, reading only e.current
func (e *Engine) computeRows(next *Grid, startRow, endRow int) {
	for r := startRow; r < endRow; r++ {
		for c := 0; c < e.columns; c++ {
			i := r*e.columns + c
			n := e.current.CountNeighbors(r, c)
			e.counts[i] = uint8(n)
			next.cells[i] = e.rule.Apply(n, e.current.cells[i])
		}
	}
}

func (e *Engine) scratchGrid() *Grid {
	if e.pool != nil {
		return e.pool.Get(e.rows, e.columns)
	}
	if e.scratch == nil {
		e.scratch = NewGrid(e.rows, e.columns)
	}
	return e.scratch
}

func (e *Engine) release(g *Grid) {
	if e.pool != nil {
		e.pool.Put(g)
		e.scratch = nil
		return
	}
	e.scratch = g
}

func (e *Engine) checkBounds(row, column int) error {
	if !e.current.InBounds(row, column) {
		return errors.Wrapf(ErrOutOfRange, "cell (%d,%d) outside %dx%d grid", row, column, e.rows, e.columns)
	}
	return nil
}
