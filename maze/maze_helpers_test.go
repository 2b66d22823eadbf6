package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// constRand always draws the same float and the first index.
type constRand struct {
	f float64
}

func (c constRand) Float64() float64 { return c.f }
func (c constRand) Intn(int) int     { return 0 }

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// requireMutual fails when any two adjacent materialized cells disagree on
// their shared edge.
func requireMutual(t *testing.T, g *Grid) {
	t.Helper()
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			pos := Position{Row: row, Col: col}
			cell := g.at(pos)
			if cell.IsEmpty() {
				require.Zero(t, cell.Passages, "empty cell %v has passages", pos)
				continue
			}
			for _, d := range cell.Passages.Directions() {
				n := pos.Step(d)
				if !g.InBound(n) || g.at(n).IsEmpty() {
					continue
				}
				require.True(t, g.at(n).HasPassage(d.Opposite()),
					"one-way door %v -%s-> %v (%s)", pos, d, n, g.at(n).Passages)
			}
		}
	}
}
