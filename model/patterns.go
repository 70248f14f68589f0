package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Pattern is a set of live cells given as (row, column) offsets from a top-left origin
type Pattern struct {
	Name  string
	Cells [][2]int
}

var (
	// Block is a 2x2 still life
	Block = Pattern{Name: "block", Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}}
	// Blinker is a horizontal period-2 oscillator
	Blinker = Pattern{Name: "blinker", Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}}}
	// Glider travels one cell diagonally down-right every four generations
	Glider = Pattern{Name: "glider", Cells: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}}
	// Beehive is a 3x4 still life
	Beehive = Pattern{Name: "beehive", Cells: [][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 1}, {2, 2}}}
)

var patterns = map[string]Pattern{
	Block.Name:   Block,
	Blinker.Name: Blinker,
	Glider.Name:  Glider,
	Beehive.Name: Beehive,
}

// LookupPattern returns the built-in pattern with the given name
func LookupPattern(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrInvalidArgument, "[LookupPattern] unknown pattern %q", name)
	}
	return p, nil
}

// PatternNames lists the built-in patterns in alphabetical order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
