package memory

import "fmt"

// Source supplies random integers in [0,n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Pattern is the ordered target sequence the player must reproduce.
// Cells may repeat.
type Pattern struct {
	cells []Cell
}

// Extend draws a cell uniformly from [0,w)×[0,h), appends it and returns it.
func (p *Pattern) Extend(rng Source, w, h int) Cell {
	c := Cell{X: rng.Intn(w), Y: rng.Intn(h)}
	p.cells = append(p.cells, c)
	return c
}

// Reset clears the pattern.
func (p *Pattern) Reset() {
	p.cells = p.cells[:0]
}

// Len returns the number of cells in the pattern.
func (p *Pattern) Len() int {
	return len(p.cells)
}

// At returns the cell at position i (0-based).
func (p *Pattern) At(i int) (Cell, error) {
	if i < 0 || i >= len(p.cells) {
		return Cell{}, fmt.Errorf("pattern element %d of %d: %w", i, len(p.cells), ErrOutOfRange)
	}
	return p.cells[i], nil
}

// Cells returns a copy of the pattern in order.
func (p *Pattern) Cells() []Cell {
	out := make([]Cell, len(p.cells))
	copy(out, p.cells)
	return out
}
