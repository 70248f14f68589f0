package model

import (
	"bytes"
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearScreen = "\033[H\033[2J"
)

// Renderer consumes full-grid pushes after every change to the engine's grid.
// counts is the zero value when no step produced it (after Randomize or Clear).
type Renderer interface {
	Render(gen Generation, counts NeighbourCounts) error
}

// TerminalRenderer draws generations as text, optionally coloured and with neighbour counts
type TerminalRenderer struct {
	out            io.Writer
	au             aurora.Aurora
	color          bool
	showNeighbours bool
	clearBetween   bool
}

// NewTerminalRenderer writes frames to out. With clearBetween each frame first clears the screen.
func NewTerminalRenderer(out io.Writer, color, showNeighbours, clearBetween bool) *TerminalRenderer {
	return &TerminalRenderer{
		out:            out,
		au:             aurora.NewAurora(color),
		color:          color,
		showNeighbours: showNeighbours,
		clearBetween:   clearBetween,
	}
}

// Render writes one frame: a status line followed by one text line per grid row
func (r *TerminalRenderer) Render(gen Generation, counts NeighbourCounts) error {
	var buf bytes.Buffer
	if r.clearBetween {
		buf.WriteString(clearScreen)
	}

	fmt.Fprintf(&buf, "Gen: %d | Living: %d\n", gen.Index(), gen.Population())
	for row := range gen.Rows() {
		for col := range gen.Columns() {
			buf.WriteString(r.cell(gen.Alive(row, col), counts, row, col))
		}
		buf.WriteByte('\n')
	}

	if _, err := r.out.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Render] failed to write frame")
	}
	return nil
}

func (r *TerminalRenderer) cell(alive bool, counts NeighbourCounts, row, col int) string {
	if r.showNeighbours && counts.Valid() {
		n := counts.At(row, col)
		switch {
		case alive && r.color:
			return r.au.Black(fmt.Sprintf(" %d", n)).BgGreen().String()
		case alive:
			return fmt.Sprintf("#%d", n)
		}
		return fmt.Sprintf(" %d", n)
	}
	if alive {
		return r.au.Green(gridPosBlock).String()
	}
	return gridPosEmpty
}
