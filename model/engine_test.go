package model

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifecore/rules"
)

func newTestEngine(t *testing.T, rows, columns int, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(rows, columns, 42, opts...)
	if err != nil {
		t.Fatalf("NewEngine(%d, %d): %v", rows, columns, err)
	}
	return e
}

func setCells(t *testing.T, e *Engine, cells ...[2]int) {
	t.Helper()
	for _, c := range cells {
		if err := e.Set(c[0], c[1], true); err != nil {
			t.Fatalf("Set(%d, %d): %v", c[0], c[1], err)
		}
	}
}

func assertLive(t *testing.T, gen Generation, want ...[2]int) {
	t.Helper()
	live := map[[2]int]bool{}
	for _, c := range want {
		live[c] = true
	}
	for r := range gen.Rows() {
		for c := range gen.Columns() {
			if got := gen.Alive(r, c); got != live[[2]int{r, c}] {
				t.Fatalf("gen %d cell (%d,%d) alive=%v, expected %v", gen.Index(), r, c, got, live[[2]int{r, c}])
			}
		}
	}
}

func TestNewEngineInvalidDimension(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, -1}, {-3, -3}, {0, 0}} {
		e, err := NewEngine(dims[0], dims[1], 1)
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("NewEngine(%d, %d) error = %v, want ErrInvalidDimension", dims[0], dims[1], err)
		}
		if e != nil {
			t.Errorf("NewEngine(%d, %d) returned a partial engine", dims[0], dims[1])
		}
	}
}

func TestNewEngineStartsDead(t *testing.T) {
	e := newTestEngine(t, 3, 7)
	if e.Rows() != 3 || e.Columns() != 7 {
		t.Fatalf("dimensions = %dx%d, want 3x7", e.Rows(), e.Columns())
	}
	if got := e.Population(); got != 0 {
		t.Fatalf("Population() = %d, want 0", got)
	}
}

func TestCellAtOutOfRange(t *testing.T) {
	e := newTestEngine(t, 5, 5)
	for _, c := range [][2]int{{5, 0}, {0, 5}, {-1, 0}, {0, -1}} {
		if _, err := e.CellAt(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CellAt(%d, %d) error = %v, want ErrOutOfRange", c[0], c[1], err)
		}
		if _, err := e.NeighbourCount(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("NeighbourCount(%d, %d) error = %v, want ErrOutOfRange", c[0], c[1], err)
		}
	}
	if _, err := e.CellAt(4, 4); err != nil {
		t.Fatalf("CellAt(4, 4): %v", err)
	}
}

func TestStepAllDeadStaysDead(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 9}, {6, 4}, {16, 16}} {
		e := newTestEngine(t, dims[0], dims[1])
		for range 3 {
			gen, _ := e.Step()
			if p := gen.Population(); p != 0 {
				t.Fatalf("%dx%d all-dead grid produced %d live cells", dims[0], dims[1], p)
			}
		}
	}
}

func TestNeighbourCountBounds(t *testing.T) {
	e := newTestEngine(t, 5, 6)
	if err := e.Randomize(1); err != nil {
		t.Fatalf("Randomize(1): %v", err)
	}
	for r := range 5 {
		for c := range 6 {
			n, err := e.NeighbourCount(r, c)
			if err != nil {
				t.Fatalf("NeighbourCount(%d, %d): %v", r, c, err)
			}
			edgeRow := r == 0 || r == 4
			edgeCol := c == 0 || c == 5
			want := 8
			switch {
			case edgeRow && edgeCol:
				want = 3
			case edgeRow || edgeCol:
				want = 5
			}
			if n != want {
				t.Errorf("NeighbourCount(%d, %d) = %d, want %d", r, c, n, want)
			}
		}
	}
}

func TestNeighbourCountIncludesAllDiagonals(t *testing.T) {
	e := newTestEngine(t, 3, 3)
	setCells(t, e, [2]int{0, 0}, [2]int{2, 2}, [2]int{0, 2}, [2]int{2, 0})
	n, err := e.NeighbourCount(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("NeighbourCount(1, 1) = %d, want 4", n)
	}
}

func TestBlockStillLife(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	if err := e.Place(Block, 1, 1); err != nil {
		t.Fatal(err)
	}
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	for range 5 {
		gen, counts := e.Step()
		assertLive(t, gen, block...)
		if n := counts.At(1, 1); n != 3 {
			t.Fatalf("block cell neighbour count = %d, want 3", n)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	e := newTestEngine(t, 5, 5)
	setCells(t, e, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	gen, _ := e.Step()
	assertLive(t, gen, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	gen, _ = e.Step()
	assertLive(t, gen, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	if gen.Index() != 2 {
		t.Fatalf("Index() = %d, want 2", gen.Index())
	}
}

func TestStepReturnsPreviousCounts(t *testing.T) {
	e := newTestEngine(t, 5, 5)
	setCells(t, e, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	_, counts := e.Step()
	if !counts.Valid() {
		t.Fatal("Step returned no neighbour counts")
	}
	// computed from the horizontal blinker
	if n := counts.At(1, 2); n != 3 {
		t.Errorf("count above centre = %d, want 3", n)
	}
	if n := counts.At(2, 2); n != 2 {
		t.Errorf("count at centre = %d, want 2", n)
	}
}

func TestGliderReachesEdge(t *testing.T) {
	e := newTestEngine(t, 6, 6)
	if err := e.Place(Glider, 0, 0); err != nil {
		t.Fatal(err)
	}
	for range 4 {
		e.Step()
	}
	assertLive(t, e.Generation(), [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3})

	// no wraparound: it collapses into a block in the corner
	for range 20 {
		e.Step()
	}
	assertLive(t, e.Generation(), [2]int{4, 4}, [2]int{4, 5}, [2]int{5, 4}, [2]int{5, 5})
}

func TestRandomizeBounds(t *testing.T) {
	e := newTestEngine(t, 5, 5)
	setCells(t, e, [2]int{0, 0})
	for _, p := range []float64{-0.1, 1.01, math.NaN()} {
		if err := e.Randomize(p); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Randomize(%v) error = %v, want ErrInvalidArgument", p, err)
		}
	}
	// failed calls leave the grid untouched
	assertLive(t, e.Generation(), [2]int{0, 0})
}

func TestRandomizeFullAndEmpty(t *testing.T) {
	e := newTestEngine(t, 5, 5)
	if err := e.Randomize(1.0); err != nil {
		t.Fatal(err)
	}
	for r := range 5 {
		for c := range 5 {
			alive, err := e.CellAt(r, c)
			if err != nil || !alive {
				t.Fatalf("CellAt(%d, %d) = %v, %v after Randomize(1)", r, c, alive, err)
			}
		}
	}

	if err := e.Randomize(0.0); err != nil {
		t.Fatal(err)
	}
	randomizedEmpty := e.Generation().Clone()

	e.Randomize(1.0)
	e.Clear()
	if !randomizedEmpty.Equal(e.Generation()) {
		t.Fatal("Randomize(0) differs from Clear()")
	}
	if e.Population() != 0 {
		t.Fatalf("Population() = %d after Clear", e.Population())
	}
}

func TestRandomizeDeterministicPerSeed(t *testing.T) {
	a, _ := NewEngine(20, 20, 7)
	b, _ := NewEngine(20, 20, 7)
	c, _ := NewEngine(20, 20, 8)
	for _, e := range []*Engine{a, b, c} {
		if err := e.Randomize(DefaultLiveProbability); err != nil {
			t.Fatal(err)
		}
	}
	if !a.Generation().Equal(b.Generation()) {
		t.Fatal("same seed produced different grids")
	}
	if a.Generation().Equal(c.Generation()) {
		t.Fatal("different seeds produced identical grids")
	}
	if p := a.Population(); p < 60 || p > 180 {
		t.Fatalf("population %d far from 30%% of 400", p)
	}
}

func TestParallelStepMatchesSequential(t *testing.T) {
	seq := newTestEngine(t, 37, 23)
	par := newTestEngine(t, 37, 23, WithParallelism(4), WithPool(NewGridPool()))
	seq.Randomize(0.4)
	par.Randomize(0.4)

	for i := range 30 {
		sg, sc := seq.Step()
		pg, pc := par.Step()
		if !sg.Equal(pg) {
			t.Fatalf("generation %d differs between sequential and parallel steps", i+1)
		}
		for r := range 37 {
			for c := range 23 {
				if sc.At(r, c) != pc.At(r, c) {
					t.Fatalf("generation %d count (%d,%d) differs", i+1, r, c)
				}
			}
		}
	}
}

func TestCloneSurvivesStep(t *testing.T) {
	e := newTestEngine(t, 5, 5)
	setCells(t, e, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	snapshot := e.Generation().Clone()
	e.Step()
	assertLive(t, snapshot, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
}

func TestPlaceOutOfRangeLeavesGrid(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	if err := e.Place(Glider, 2, 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Place error = %v, want ErrOutOfRange", err)
	}
	if e.Population() != 0 {
		t.Fatal("partial pattern written")
	}
}

func TestWithRule(t *testing.T) {
	seeds, err := rules.ParseRule("B2/S")
	if err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(t, 3, 4, WithRule(seeds))
	setCells(t, e, [2]int{1, 1}, [2]int{1, 2})
	gen, _ := e.Step()
	assertLive(t, gen, [2]int{0, 1}, [2]int{0, 2}, [2]int{2, 1}, [2]int{2, 2})
}
