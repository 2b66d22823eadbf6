package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	t.Run("opposites", func(t *testing.T) {
		assert.Equal(t, South, North.Opposite())
		assert.Equal(t, West, East.Opposite())
		assert.Equal(t, North, South.Opposite())
		assert.Equal(t, East, West.Opposite())
	})

	t.Run("steps are unit moves", func(t *testing.T) {
		origin := Position{Row: 5, Col: 5}
		for _, d := range Directions {
			next := origin.Step(d)
			assert.Equal(t, 1, origin.Manhattan(next))
			back, ok := next.DirectionTo(origin)
			assert.True(t, ok)
			assert.Equal(t, d.Opposite(), back)
		}
	})

	t.Run("parse", func(t *testing.T) {
		for input, want := range map[string]Direction{
			"north": North, "N": North, "East": East, "s": South, " WEST ": West,
		} {
			got, err := ParseDirection(input)
			assert.NoError(t, err, input)
			assert.Equal(t, want, got, input)
		}

		_, err := ParseDirection("up")
		assert.ErrorIs(t, err, ErrUnknownDirection)
	})

	t.Run("non adjacent positions have no direction", func(t *testing.T) {
		_, ok := Position{Row: 0, Col: 0}.DirectionTo(Position{Row: 1, Col: 1})
		assert.False(t, ok)
	})
}

func TestPassages(t *testing.T) {
	p := PassagesOf(North, West)
	assert.True(t, p.Has(North))
	assert.False(t, p.Has(East))
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []Direction{North, West}, p.Directions())

	p = p.With(East).Without(North)
	assert.Equal(t, []Direction{East, West}, p.Directions())
	assert.Equal(t, 4, AllPassages.Len())
	assert.Equal(t, "{East,West}", p.String())
}
