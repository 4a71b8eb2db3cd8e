// Package memory implements the round engine of the recall game: pattern
// generation, timed reveal planning, input verification and the level/lives
// state machine that drives them.
//
// The package performs no I/O. Presentation is reached only through the
// Surface port and time only advances through Session.Advance.
package memory

import (
	"errors"
	"fmt"
)

// Misuse errors. They flag programmer errors rather than game events.
var (
	ErrOutOfRange    = errors.New("memory: index out of range")
	ErrInputDisabled = errors.New("memory: input disabled")
	ErrOutsideGrid   = errors.New("memory: cell outside grid")
)

// Cell is a grid coordinate: X is the column, Y the row.
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// In reports whether the cell lies inside a w×h grid.
func (c Cell) In(w, h int) bool {
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}
