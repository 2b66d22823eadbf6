// Package game wraps a maze board into a single-player run: it serializes
// access to the board, counts steps and tracks when the exit is reached.
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-depths/decor"
	"github.com/beka-birhanu/vinom-depths/maze"
	"github.com/google/uuid"
)

// Run-related errors.
var (
	ErrRunFinished   = errors.New("run already finished")
	ErrOutOfBounds   = errors.New("cell is out of the board")
	ErrInvalidRadius = errors.New("window radius out of range")
)

// MaxWindowRadius bounds the square of cells a single Window call returns.
const MaxWindowRadius = 15

// Run is one player's walk through one board.
type Run struct {
	id         uuid.UUID   // Run identifier.
	player     string      // Player name.
	seed       int64       // Seed the board was generated from.
	board      *maze.Board // The board being explored.
	steps      int         // Successful moves so far.
	startedAt  time.Time   // When the run was created.
	finishedAt time.Time   // When the exit was reached; zero while running.
	now        func() time.Time
	sync.RWMutex
}

// Config holds the parameters of a new Run.
type Config struct {
	ID     uuid.UUID
	Player string
	Seed   int64
	Board  *maze.Board
	Now    func() time.Time // Defaults to time.Now.
}

// New creates a Run positioned at the board entry.
func New(c Config) *Run {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	return &Run{
		id:        c.ID,
		player:    c.Player,
		seed:      c.Seed,
		board:     c.Board,
		startedAt: now(),
		now:       now,
	}
}

// ID returns the run identifier.
func (r *Run) ID() uuid.UUID {
	return r.id
}

// Player returns the name of the player walking the run.
func (r *Run) Player() string {
	return r.player
}

// StartedAt returns when the run was created.
func (r *Run) StartedAt() time.Time {
	return r.startedAt
}

// Move tries to move the player one cell. Blocked moves are reported through
// the outcome, not as errors.
func (r *Run) Move(d maze.Direction) (maze.MoveOutcome, error) {
	r.Lock()
	defer r.Unlock()

	if !r.finishedAt.IsZero() {
		return maze.MoveOutcome{Outcome: maze.Blocked, Position: r.board.Player()}, ErrRunFinished
	}

	out := r.board.TryMove(d)
	if out.Outcome != maze.Moved {
		return out, nil
	}

	r.steps++
	if out.Position == r.board.Exit() {
		r.finishedAt = r.now()
	}
	return out, nil
}

// Finished reports whether the player has reached the exit.
func (r *Run) Finished() bool {
	r.RLock()
	defer r.RUnlock()
	return !r.finishedAt.IsZero()
}

// Snapshot captures the current state of the run.
func (r *Run) Snapshot() State {
	r.RLock()
	defer r.RUnlock()
	return r.snapshot()
}

func (r *Run) snapshot() State {
	return State{
		ID:           r.id.String(),
		Player:       r.player,
		BoardSize:    r.board.Size(),
		Position:     r.board.Player(),
		Entry:        r.board.Entry(),
		Exit:         r.board.Exit(),
		Verified:     r.board.Verified(),
		Attempts:     r.board.Attempts(),
		Steps:        r.steps,
		Materialized: r.board.Materialized(),
		Finished:     !r.finishedAt.IsZero(),
		StartedAt:    r.startedAt,
		FinishedAt:   r.finishedAt,
	}
}

// Record summarizes the run for the history store.
func (r *Run) Record() Record {
	r.RLock()
	defer r.RUnlock()
	return Record{State: r.snapshot(), Seed: r.seed}
}

// Cell returns the view of the cell at (row, col).
func (r *Run) Cell(row, col int) (CellView, error) {
	r.RLock()
	defer r.RUnlock()

	cell, ok := r.board.CellAt(row, col)
	if !ok {
		return CellView{}, ErrOutOfBounds
	}
	return r.view(maze.Position{Row: row, Col: col}, cell), nil
}

// Window returns the views of the square of cells within radius of the
// player, row by row. Cells off the board are skipped.
func (r *Run) Window(radius int) ([]CellView, error) {
	if radius < 0 || radius > MaxWindowRadius {
		return nil, ErrInvalidRadius
	}

	r.RLock()
	defer r.RUnlock()

	center := r.board.Player()
	views := make([]CellView, 0, (2*radius+1)*(2*radius+1))
	for row := center.Row - radius; row <= center.Row+radius; row++ {
		for col := center.Col - radius; col <= center.Col+radius; col++ {
			if cell, ok := r.board.CellAt(row, col); ok {
				views = append(views, r.view(maze.Position{Row: row, Col: col}, cell))
			}
		}
	}
	return views, nil
}

// Debug renders the explored board and the main path.
func (r *Run) Debug() DebugView {
	r.RLock()
	defer r.RUnlock()
	return DebugView{
		Board:    r.board.String(),
		MainPath: r.board.MainPath(),
	}
}

func (r *Run) view(pos maze.Position, cell maze.Cell) CellView {
	passages := make([]string, 0, 4)
	for _, d := range cell.Passages.Directions() {
		passages = append(passages, d.String())
	}
	return CellView{
		Position:   pos,
		Kind:       cell.Kind.String(),
		Passages:   passages,
		OnMainPath: r.board.IsOnMainPath(pos),
		Decoration: decor.Of(pos, cell),
	}
}
