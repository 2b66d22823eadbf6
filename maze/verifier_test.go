package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(t *testing.T, size int) *Grid {
	t.Helper()
	g, err := NewGrid(size)
	require.NoError(t, err)
	return g
}

func TestConnected(t *testing.T) {
	a, b, c := Position{Row: 2, Col: 1}, Position{Row: 2, Col: 2}, Position{Row: 2, Col: 3}

	t.Run("mutual passages connect", func(t *testing.T) {
		g := newTestGrid(t, 5)
		g.set(a, Cell{Kind: Entry, Passages: PassagesOf(East)})
		g.set(b, Cell{Kind: Corridor, Passages: PassagesOf(West, East)})
		g.set(c, Cell{Kind: Exit, Passages: PassagesOf(West)})
		assert.True(t, Connected(g, a, c))
		assert.True(t, Connected(g, c, a))
	})

	t.Run("one-way passage does not connect", func(t *testing.T) {
		g := newTestGrid(t, 5)
		g.set(a, Cell{Kind: Entry, Passages: PassagesOf(East)})
		g.set(b, Cell{Kind: Corridor, Passages: PassagesOf(East)})
		g.set(c, Cell{Kind: Exit, Passages: PassagesOf(West)})
		assert.False(t, Connected(g, a, c))
	})

	t.Run("empty neighbor does not connect", func(t *testing.T) {
		g := newTestGrid(t, 5)
		g.set(a, Cell{Kind: Entry, Passages: PassagesOf(East)})
		g.set(c, Cell{Kind: Exit, Passages: PassagesOf(West)})
		assert.False(t, Connected(g, a, c))
	})

	t.Run("start is its own target", func(t *testing.T) {
		g := newTestGrid(t, 5)
		assert.True(t, Connected(g, a, a))
		assert.False(t, Connected(g, a, Position{Row: 9, Col: 9}))
	})
}

func TestNewGrid(t *testing.T) {
	for _, size := range []int{-1, 0, 1, 2, 10} {
		_, err := NewGrid(size)
		assert.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}

	g := newTestGrid(t, 7)
	assert.Equal(t, Position{Row: 3, Col: 3}, g.Center())
	_, ok := g.CellAt(7, 0)
	assert.False(t, ok)
}
