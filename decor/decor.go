// Package decor derives cosmetic cell details (torches, blood, stone texture)
// as a pure function of board position, so the same cell always looks the
// same no matter when or in which order it was materialized.
package decor

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-depths/maze"
)

const (
	rowStride = 100000
	mixer     = 0x9E3779B97F4A7C15

	stoneVariants = 4
)

// Salts keep the draws for different decorations independent.
const (
	SaltTorch uint64 = iota + 1
	SaltBlood
	SaltStone
)

var torchChance = map[maze.CellKind]float64{
	maze.Entry:    1,
	maze.Exit:     1,
	maze.Corridor: 0.15,
	maze.Room:     0.30,
}

const bloodChance = 0.05

// Decoration is the cosmetic state of a materialized cell.
type Decoration struct {
	Torch bool `json:"torch"`
	Blood bool `json:"blood"`
	Stone int  `json:"stone"`
}

// SeededDraw returns a random source derived only from pos and salt.
func SeededDraw(pos maze.Position, salt uint64) *rand.Rand {
	key := uint64(int64(pos.Row)*rowStride + int64(pos.Col))
	return rand.New(rand.NewSource(int64(key ^ salt*mixer)))
}

// Of returns the decoration of cell at pos. Empty cells are undecorated.
func Of(pos maze.Position, cell maze.Cell) Decoration {
	if cell.IsEmpty() {
		return Decoration{}
	}
	return Decoration{
		Torch: SeededDraw(pos, SaltTorch).Float64() < torchChance[cell.Kind],
		Blood: cell.Kind != maze.Entry && SeededDraw(pos, SaltBlood).Float64() < bloodChance,
		Stone: SeededDraw(pos, SaltStone).Intn(stoneVariants),
	}
}
