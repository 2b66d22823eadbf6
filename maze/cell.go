package maze

import (
	"math/bits"
	"strings"
)

// CellKind classifies a cell of the board.
type CellKind uint8

const (
	// Empty cells have not been generated yet and act as walls.
	Empty CellKind = iota
	Entry
	Corridor
	Room
	Exit
)

var kindNames = [...]string{"Empty", "Entry", "Corridor", "Room", "Exit"}

func (k CellKind) String() string {
	if int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Passages is the set of directions that are traversable out of a cell.
type Passages uint8

// AllPassages opens every direction.
const AllPassages = Passages(1<<North | 1<<East | 1<<South | 1<<West)

// PassagesOf builds a passage set from the given directions.
func PassagesOf(dirs ...Direction) Passages {
	var p Passages
	for _, d := range dirs {
		p = p.With(d)
	}
	return p
}

// Has reports whether d is in the set.
func (p Passages) Has(d Direction) bool {
	return d.Valid() && p&(1<<d) != 0
}

// With returns the set with d added.
func (p Passages) With(d Direction) Passages {
	if !d.Valid() {
		return p
	}
	return p | 1<<d
}

// Without returns the set with d removed.
func (p Passages) Without(d Direction) Passages {
	if !d.Valid() {
		return p
	}
	return p &^ (1 << d)
}

// Len returns the number of open directions.
func (p Passages) Len() int {
	return bits.OnesCount8(uint8(p & AllPassages))
}

// Directions returns the open directions in clockwise order.
func (p Passages) Directions() []Direction {
	dirs := make([]Direction, 0, 4)
	for _, d := range Directions {
		if p.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (p Passages) String() string {
	names := make([]string, 0, 4)
	for _, d := range p.Directions() {
		names = append(names, d.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Cell is the state of a single board position.
type Cell struct {
	Kind     CellKind // Kind of the cell; Empty until materialized.
	Passages Passages // Passages open out of the cell; always empty for Empty cells.
}

// IsEmpty reports whether the cell has not been materialized.
func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// HasPassage reports whether the cell opens toward d.
func (c Cell) HasPassage(d Direction) bool {
	return c.Passages.Has(d)
}
