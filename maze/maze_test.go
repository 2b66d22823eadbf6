package maze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	infos, warnings []string
}

func (l *recordingLogger) Info(msg string)    { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warning(msg string) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(string)       {}

func newTestBoard(t *testing.T, size int, opts ...Option) *Board {
	t.Helper()
	b, err := NewBoard(size, opts...)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	t.Run("rejects invalid sizes", func(t *testing.T) {
		_, err := NewBoard(100)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("generation invariants", func(t *testing.T) {
		for seed := int64(0); seed < 25; seed++ {
			b := newTestBoard(t, 101, WithSeed(seed))
			path := b.MainPath()

			requireSimplePath(t, path, b.Entry(), b.Exit())
			require.True(t, b.Verified())
			require.True(t, Connected(b.grid, b.Entry(), b.Exit()))
			require.Equal(t, b.Entry(), b.Player())

			exit, _ := b.CellAt(b.Exit().Row, b.Exit().Col)
			require.Equal(t, Exit, exit.Kind)
			require.Equal(t, 1, exit.Passages.Len())
			back, _ := b.Exit().DirectionTo(path[len(path)-2])
			require.True(t, exit.HasPassage(back))

			entries := 0
			for row := 0; row < b.Size(); row++ {
				for col := 0; col < b.Size(); col++ {
					cell, _ := b.CellAt(row, col)
					pos := Position{Row: row, Col: col}
					if cell.Kind == Entry {
						entries++
						require.NotZero(t, cell.Passages.Len())
					}
					require.Equal(t, !cell.IsEmpty(), b.IsOnMainPath(pos), "only path cells exist after generation: %v", pos)
				}
			}
			require.Equal(t, 1, entries)
			requireMutual(t, b.grid)
		}
	})

	t.Run("small board with injected exit", func(t *testing.T) {
		for seed := int64(0); seed < 25; seed++ {
			b := newTestBoard(t, 11, WithSeed(seed), WithSampler(FixedExit{Row: 5, Col: 9}))
			assert.Equal(t, Position{Row: 5, Col: 5}, b.Entry())
			assert.Equal(t, Position{Row: 5, Col: 9}, b.Exit())
			assert.GreaterOrEqual(t, len(b.MainPath())-1, 4)
			requireSimplePath(t, b.MainPath(), b.Entry(), b.Exit())
			assert.True(t, Connected(b.grid, b.Entry(), b.Exit()))
			assert.True(t, b.Verified())
		}
	})

	t.Run("entry closes toward an adjacent exit reached by a detour", func(t *testing.T) {
		exitPos := Position{Row: 1, Col: 2}
		direct, detours := 0, 0
		for seed := int64(0); seed < 60; seed++ {
			b := newTestBoard(t, 3, WithSeed(seed), WithSampler(FixedExit(exitPos)))
			entry, _ := b.CellAt(1, 1)
			exit, _ := b.CellAt(exitPos.Row, exitPos.Col)
			require.Equal(t, 1, exit.Passages.Len())
			requireMutual(t, b.grid)
			require.True(t, Connected(b.grid, b.Entry(), b.Exit()))

			// the exit only opens toward its path predecessor, so the entry
			// gives up its east passage whenever the path goes around
			if len(b.MainPath()) == 2 {
				direct++
				require.Equal(t, AllPassages, entry.Passages)
				continue
			}
			detours++
			require.Equal(t, PassagesOf(North, South, West), entry.Passages)
		}
		assert.NotZero(t, direct)
		assert.NotZero(t, detours)
	})

	t.Run("unusable sampled exit falls back to the ring", func(t *testing.T) {
		b := newTestBoard(t, 21, WithSeed(2), WithSampler(FixedExit{Row: 10, Col: 10}))
		assert.NotEqual(t, b.Entry(), b.Exit())
		assert.True(t, b.Verified())
	})

	t.Run("exhausted attempts keep the last board", func(t *testing.T) {
		logger := &recordingLogger{}
		b, err := NewBoard(21, WithSeed(9), WithLogger(logger), WithMaxAttempts(3),
			withConnected(func(*Grid, Position, Position) bool { return false }))
		require.NoError(t, err)

		assert.False(t, b.Verified())
		assert.Equal(t, 3, b.Attempts())
		assert.Len(t, logger.warnings, 1)
		requireSimplePath(t, b.MainPath(), b.Entry(), b.Exit())
		cell, _ := b.CellAt(b.Exit().Row, b.Exit().Col)
		assert.Equal(t, Exit, cell.Kind)
	})

	t.Run("same seed builds the same board", func(t *testing.T) {
		a := newTestBoard(t, 51, WithSeed(42))
		b := newTestBoard(t, 51, WithSeed(42))
		assert.Equal(t, a.MainPath(), b.MainPath())
		assert.Equal(t, a.String(), b.String())
	})
}

func withConnected(fn func(*Grid, Position, Position) bool) Option {
	return func(b *Board) {
		b.connected = fn
	}
}

func TestTryMove(t *testing.T) {
	// constRand{0}: greedy carving east in a straight line, corridors only.
	straightBoard := func(t *testing.T) *Board {
		return newTestBoard(t, 101, WithRand(constRand{f: 0}), WithSampler(FixedExit{Row: 50, Col: 90}))
	}

	t.Run("moving into an empty neighbor materializes it", func(t *testing.T) {
		b := straightBoard(t)
		north := b.Entry().Step(North)
		before, _ := b.CellAt(north.Row, north.Col)
		require.True(t, before.IsEmpty())

		out := b.TryMove(North)
		assert.Equal(t, MoveOutcome{Outcome: Moved, Position: north}, out)

		cell, _ := b.CellAt(north.Row, north.Col)
		assert.Contains(t, []CellKind{Corridor, Room}, cell.Kind)
		assert.True(t, cell.HasPassage(South))
		assert.GreaterOrEqual(t, cell.Passages.Len(), 1)
		assert.LessOrEqual(t, cell.Passages.Len(), 4)
		assert.Equal(t, north, b.Player())
	})

	t.Run("moving without a passage changes nothing", func(t *testing.T) {
		b := straightBoard(t)
		b.TryMove(North)
		cell, _ := b.CellAt(b.Player().Row, b.Player().Col)
		require.False(t, cell.HasPassage(North), "constRand corridor only opens the way back")

		before := b.String()
		materialized := b.Materialized()
		out := b.TryMove(North)

		assert.Equal(t, Blocked, out.Outcome)
		assert.Equal(t, b.Player(), out.Position)
		assert.Equal(t, materialized, b.Materialized())
		assert.Equal(t, before, b.String())
	})

	t.Run("invalid direction is blocked", func(t *testing.T) {
		b := straightBoard(t)
		assert.Equal(t, Blocked, b.TryMove(Direction(9)).Outcome)
	})

	t.Run("walking the main path reaches the exit", func(t *testing.T) {
		b := newTestBoard(t, 61, WithSeed(5))
		path := b.MainPath()
		for i := 1; i < len(path); i++ {
			d, ok := path[i-1].DirectionTo(path[i])
			require.True(t, ok)
			require.Equal(t, MoveOutcome{Outcome: Moved, Position: path[i]}, b.TryMove(d))
		}
		assert.Equal(t, b.Exit(), b.Player())
	})

	t.Run("moving off the board reports no exit", func(t *testing.T) {
		b := newTestBoard(t, 3, WithSeed(1), WithSampler(FixedExit{Row: 0, Col: 2}))
		b.grid.set(Position{Row: 1, Col: 0}, Cell{Kind: Corridor, Passages: PassagesOf(East, West)})
		require.Equal(t, Moved, b.TryMove(West).Outcome)
		out := b.TryMove(West)
		assert.Equal(t, MoveOutcome{Outcome: NoExit, Position: Position{Row: 1, Col: 0}}, out)
	})

	t.Run("materialized neighbor without back passage blocks", func(t *testing.T) {
		b := straightBoard(t)
		north := b.Entry().Step(North)
		b.grid.set(north, Cell{Kind: Room, Passages: PassagesOf(East)})
		out := b.TryMove(North)
		assert.Equal(t, MoveOutcome{Outcome: Blocked, Position: b.Entry()}, out)
	})
}

func TestLazyMaterializationKeepsEdgesMutual(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := newTestBoard(t, 41, WithSeed(seed))
		walker := seeded(seed + 1000)

		for range 3000 {
			out := b.TryMove(Directions[walker.Intn(4)])
			if out.Outcome == Moved {
				cell, _ := b.CellAt(out.Position.Row, out.Position.Col)
				require.NotEqual(t, Empty, cell.Kind)
			}
		}

		requireMutual(t, b.grid)
		exit, _ := b.CellAt(b.Exit().Row, b.Exit().Col)
		require.Equal(t, 1, exit.Passages.Len())
		require.True(t, Connected(b.grid, b.Entry(), b.Exit()))
	}
}

func TestMovedDestinationOpensBack(t *testing.T) {
	b := newTestBoard(t, 41, WithSeed(77))
	walker := seeded(78)
	for range 2000 {
		from := b.Player()
		d := Directions[walker.Intn(4)]
		out := b.TryMove(d)
		if out.Outcome != Moved {
			assert.Equal(t, from, b.Player())
			continue
		}
		cell, _ := b.CellAt(out.Position.Row, out.Position.Col)
		require.True(t, cell.HasPassage(d.Opposite()))
	}
}

func TestBoardString(t *testing.T) {
	b := newTestBoard(t, 11, WithRand(constRand{f: 0}), WithSampler(FixedExit{Row: 5, Col: 9}))
	assert.Equal(t, "@***X\n", b.String())

	b.TryMove(North)
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Equal(t, []string{"@    ", "E***X"}, lines)
}
