package maze

import (
	"errors"
	"fmt"
)

const minGridSize = 3

// ErrInvalidSize is returned for boards that are even-sized or smaller than 3.
var ErrInvalidSize = errors.New("invalid board size")

// Grid is a square board of cells. Cells are addressed by position only and
// callers always receive copies.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid allocates a size x size grid of Empty cells. size must be odd and at least 3.
func NewGrid(size int) (*Grid, error) {
	if size < minGridSize || size%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Grid{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// Center returns the middle cell of the grid.
func (g *Grid) Center() Position {
	return Position{Row: g.size / 2, Col: g.size / 2}
}

// InBound reports whether p lies on the grid.
func (g *Grid) InBound(p Position) bool {
	return inBound(p, g.size)
}

// CellAt returns a copy of the cell at (row, col) and whether it is on the grid.
func (g *Grid) CellAt(row, col int) (Cell, bool) {
	p := Position{Row: row, Col: col}
	if !g.InBound(p) {
		return Cell{}, false
	}
	return g.at(p), true
}

// Materialized counts the non-Empty cells.
func (g *Grid) Materialized() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Linked reports whether the edge from p toward d is usable: p opens toward d,
// the neighbor exists, is materialized and opens back toward p.
func (g *Grid) Linked(p Position, d Direction) bool {
	if !g.InBound(p) || !g.at(p).HasPassage(d) {
		return false
	}
	n := p.Step(d)
	if !g.InBound(n) {
		return false
	}
	nc := g.at(n)
	return !nc.IsEmpty() && nc.HasPassage(d.Opposite())
}

func (g *Grid) at(p Position) Cell {
	return g.cells[p.Row*g.size+p.Col]
}

func (g *Grid) set(p Position, c Cell) {
	if c.IsEmpty() {
		c.Passages = 0
	}
	g.cells[p.Row*g.size+p.Col] = c
}

// reset empties every cell except keep.
func (g *Grid) reset(keep Position) {
	kept := g.at(keep)
	clear(g.cells)
	g.set(keep, kept)
}

func inBound(p Position, size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}
