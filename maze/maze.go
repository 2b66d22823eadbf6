/*
Package maze builds lazily materialized dungeon boards.

A Board is a square grid whose center cell is the Entry. Generation samples an
Exit far from the center, carves a simple main path between the two,
materializes only the cells on that path and verifies that the Exit can be
reached by walking passages both neighboring cells agree on. Generation is
retried a bounded number of times; the last attempt is kept when none verifies.

Every other cell stays Empty until the player walks into it, at which point it
is materialized with the same placement policy and its edges are reconciled
with the neighbors that already exist.

A Board is not safe for concurrent use.
*/
package maze

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/zyedidia/generic/mapset"
)

const defaultMaxAttempts = 10

// Outcome is the result kind of a move request.
type Outcome uint8

const (
	// Moved means the player now stands on MoveOutcome.Position.
	Moved Outcome = iota + 1
	// Blocked means the current cell has no passage that way or the
	// neighbor does not open back.
	Blocked
	// NoExit means the move would leave the board.
	NoExit
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "Moved"
	case Blocked:
		return "Blocked"
	case NoExit:
		return "NoExit"
	default:
		return "Unknown"
	}
}

// MoveOutcome reports the result of TryMove and the player position after it.
type MoveOutcome struct {
	Outcome  Outcome
	Position Position
}

// Logger receives generation diagnostics.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

// Board owns the grid and drives generation and play-time materialization.
type Board struct {
	grid     *Grid
	entry    Position
	exit     Position
	player   Position
	mainPath []Position
	onPath   mapset.Set[Position]

	rng         Rand
	sampler     ExitSampler
	policy      Policy
	logger      Logger
	maxAttempts int
	attempts    int
	verified    bool

	// connected is swapped in tests to force verification failures.
	connected func(*Grid, Position, Position) bool
}

// Option configures a Board.
type Option func(*Board)

// WithRand sets the random source used for generation and materialization.
func WithRand(rng Rand) Option {
	return func(b *Board) {
		b.rng = rng
	}
}

// WithSeed seeds a math/rand source, making the board reproducible for a
// given sequence of moves.
func WithSeed(seed int64) Option {
	return func(b *Board) {
		b.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSampler overrides how the exit position is chosen.
func WithSampler(s ExitSampler) Option {
	return func(b *Board) {
		b.sampler = s
	}
}

// WithLogger sets the logger used for generation diagnostics.
func WithLogger(l Logger) Option {
	return func(b *Board) {
		b.logger = l
	}
}

// WithMaxAttempts caps the number of generation attempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.maxAttempts = n
		}
	}
}

// NewBoard allocates a size x size board and generates it.
func NewBoard(size int, opts ...Option) (*Board, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}

	b := &Board{
		grid:        grid,
		entry:       grid.Center(),
		onPath:      mapset.New[Position](),
		sampler:     RingSampler{Margin: defaultExitMargin},
		logger:      nopLogger{},
		maxAttempts: defaultMaxAttempts,
		connected:   Connected,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b.policy = NewPolicy(b.rng)

	b.grid.set(b.entry, Cell{Kind: Entry, Passages: AllPassages})
	b.generate()
	return b, nil
}

// generate runs reset, sample, carve, materialize and verify until the exit is
// reachable or the attempt budget is spent.
func (b *Board) generate() {
	for b.attempts = 1; ; b.attempts++ {
		b.reset()
		b.exit = b.sampleExit()
		b.mainPath = CarvePath(b.entry, b.exit, b.grid.Size(), b.rng)
		b.materializeMainPath()

		if b.connected(b.grid, b.entry, b.exit) {
			b.verified = true
			b.logger.Info(fmt.Sprintf("board generated: size=%d exit=%v path=%d attempts=%d",
				b.grid.Size(), b.exit, len(b.mainPath), b.attempts))
			break
		}

		if b.attempts >= b.maxAttempts {
			b.logger.Warning(fmt.Sprintf("connectivity not guaranteed: exit %v unreachable after %d attempts",
				b.exit, b.attempts))
			break
		}
		b.logger.Info(fmt.Sprintf("generation attempt %d failed verification, retrying", b.attempts))
	}
	b.player = b.entry
}

func (b *Board) reset() {
	b.grid.reset(b.entry)
	b.mainPath = nil
	b.onPath = mapset.New[Position]()
}

func (b *Board) sampleExit() Position {
	exit := b.sampler.SampleExit(b.entry, b.grid.Size(), b.rng)
	if !b.grid.InBound(exit) || exit == b.entry {
		b.logger.Warning(fmt.Sprintf("exit sampler returned unusable position %v, using ring sampler", exit))
		exit = RingSampler{Margin: defaultExitMargin}.SampleExit(b.entry, b.grid.Size(), b.rng)
	}
	return exit
}

// materializeMainPath places every path cell in order and then reconciles
// the path edges.
func (b *Board) materializeMainPath() {
	last := len(b.mainPath) - 1
	for i, pos := range b.mainPath {
		b.onPath.Put(pos)

		var links Passages
		if i > 0 {
			d, _ := pos.DirectionTo(b.mainPath[i-1])
			links = links.With(d)
		}
		if i < last {
			d, _ := pos.DirectionTo(b.mainPath[i+1])
			links = links.With(d)
		}

		switch {
		case i == 0:
			entry := b.grid.at(pos)
			entry.Passages |= links
			b.grid.set(pos, entry)
		case i == last:
			b.grid.set(pos, Cell{Kind: Exit, Passages: links})
		default:
			travel, _ := b.mainPath[i-1].DirectionTo(pos)
			b.grid.set(pos, b.policy.Materialize(Placement{
				Travel:     travel,
				Forced:     links.Without(travel.Opposite()),
				Closed:     b.closedAround(pos),
				OnMainPath: true,
			}))
		}
	}
	b.reconcile(b.mainPath)
}

// closedAround returns the directions out of pos that must stay shut: off the
// board, toward the reserved exit, or toward a materialized neighbor that does
// not open back.
func (b *Board) closedAround(pos Position) Passages {
	var closed Passages
	for _, d := range Directions {
		n := pos.Step(d)
		if !b.grid.InBound(n) || n == b.exit {
			closed = closed.With(d)
			continue
		}
		if nc := b.grid.at(n); !nc.IsEmpty() && !nc.HasPassage(d.Opposite()) {
			closed = closed.With(d)
		}
	}
	return closed
}

// reconcile makes every edge touching the given cells mutual. Deltas are
// collected first and applied afterwards. The Exit never gains passages; a
// passage pointing into it without a matching back-passage is removed instead.
func (b *Board) reconcile(cells []Position) {
	add := make(map[Position]Passages)
	remove := make(map[Position]Passages)

	for _, pos := range cells {
		cell := b.grid.at(pos)
		if cell.IsEmpty() {
			continue
		}
		for _, d := range Directions {
			n := pos.Step(d)
			if !b.grid.InBound(n) {
				continue
			}
			nc := b.grid.at(n)
			if nc.IsEmpty() {
				continue
			}
			out, back := cell.HasPassage(d), nc.HasPassage(d.Opposite())
			switch {
			case out && !back && nc.Kind == Exit:
				remove[pos] = remove[pos].With(d)
			case out && !back:
				add[n] = add[n].With(d.Opposite())
			case back && !out && cell.Kind == Exit:
				remove[n] = remove[n].With(d.Opposite())
			case back && !out:
				add[pos] = add[pos].With(d)
			}
		}
	}

	for pos, p := range add {
		cell := b.grid.at(pos)
		cell.Passages |= p
		b.grid.set(pos, cell)
	}
	for pos, p := range remove {
		cell := b.grid.at(pos)
		cell.Passages &^= p
		b.grid.set(pos, cell)
	}
}

// TryMove moves the player one cell in direction d, materializing the target
// cell when it is still Empty. Illegal moves leave the board untouched.
func (b *Board) TryMove(d Direction) MoveOutcome {
	blocked := MoveOutcome{Outcome: Blocked, Position: b.player}
	if !d.Valid() || !b.grid.at(b.player).HasPassage(d) {
		return blocked
	}

	target := b.player.Step(d)
	if !b.grid.InBound(target) {
		return MoveOutcome{Outcome: NoExit, Position: b.player}
	}

	if tc := b.grid.at(target); !tc.IsEmpty() {
		if !tc.HasPassage(d.Opposite()) {
			return blocked
		}
	} else {
		b.materialize(target, d)
	}

	b.player = target
	return MoveOutcome{Outcome: Moved, Position: target}
}

func (b *Board) materialize(pos Position, travel Direction) {
	if pos == b.exit {
		b.grid.set(pos, Cell{Kind: Exit, Passages: PassagesOf(travel.Opposite())})
	} else {
		b.grid.set(pos, b.policy.Materialize(Placement{
			Travel: travel,
			Closed: b.closedAround(pos),
		}))
	}
	b.reconcile([]Position{pos})
}

// CellAt returns a copy of the cell at (row, col) and whether it is on the board.
func (b *Board) CellAt(row, col int) (Cell, bool) {
	return b.grid.CellAt(row, col)
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.grid.Size()
}

// Entry returns the entry position (the board center).
func (b *Board) Entry() Position {
	return b.entry
}

// Exit returns the exit position of the last generation attempt.
func (b *Board) Exit() Position {
	return b.exit
}

// Player returns the current player position.
func (b *Board) Player() Position {
	return b.player
}

// MainPath returns a copy of the carved path from entry to exit.
func (b *Board) MainPath() []Position {
	return append([]Position(nil), b.mainPath...)
}

// IsOnMainPath reports whether pos belongs to the main path.
func (b *Board) IsOnMainPath(pos Position) bool {
	return b.onPath.Has(pos)
}

// Verified reports whether generation proved the exit reachable.
func (b *Board) Verified() bool {
	return b.verified
}

// Attempts returns how many generation attempts were run.
func (b *Board) Attempts() int {
	return b.attempts
}

// Materialized counts the cells that have been generated so far.
func (b *Board) Materialized() int {
	return b.grid.Materialized()
}

// String renders the materialized part of the board, cropped to its bounding box.
//
//	@ player, E entry, X exit, * main path, . corridor, # room
func (b *Board) String() string {
	size := b.grid.Size()
	minRow, minCol, maxRow, maxCol := size, size, -1, -1
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if b.grid.at(Position{Row: row, Col: col}).IsEmpty() {
				continue
			}
			minRow, maxRow = min(minRow, row), max(maxRow, row)
			minCol, maxCol = min(minCol, col), max(maxCol, col)
		}
	}

	var output strings.Builder
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			output.WriteByte(b.glyph(Position{Row: row, Col: col}))
		}
		output.WriteByte('\n')
	}
	return output.String()
}

func (b *Board) glyph(pos Position) byte {
	cell := b.grid.at(pos)
	switch {
	case pos == b.player:
		return '@'
	case cell.Kind == Entry:
		return 'E'
	case cell.Kind == Exit:
		return 'X'
	case cell.IsEmpty():
		return ' '
	case b.onPath.Has(pos):
		return '*'
	case cell.Kind == Room:
		return '#'
	default:
		return '.'
	}
}
