package maze

import (
	"errors"
	"strings"
)

// ErrUnknownDirection is returned when a direction name cannot be parsed.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction clockwise, starting at North.
var Directions = [4]Direction{North, East, South, West}

var (
	directionNames = [4]string{"North", "East", "South", "West"}
	directionDelta = [4]Position{{Row: -1}, {Col: 1}, {Row: 1}, {Col: -1}}
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= West
}

// Opposite returns the direction pointing back (North <-> South, East <-> West).
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the row/col offset of a single step in direction d.
func (d Direction) Delta() Position {
	if !d.Valid() {
		return Position{}
	}
	return directionDelta[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return "Unknown"
	}
	return directionNames[d]
}

// ParseDirection accepts full names ("north") or initials ("n"), case-insensitive.
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	for _, d := range Directions {
		name := directionNames[d]
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:1]) {
			return d, nil
		}
	}
	return 0, ErrUnknownDirection
}

// Position addresses a cell on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Manhattan returns the taxicab distance between p and o.
func (p Position) Manhattan(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

// DirectionTo returns the direction from p to o when the two are 4-neighbors.
func (p Position) DirectionTo(o Position) (Direction, bool) {
	for _, d := range Directions {
		if p.Step(d) == o {
			return d, true
		}
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
