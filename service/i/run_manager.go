package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-depths/domain"
	"github.com/beka-birhanu/vinom-depths/game"
	"github.com/beka-birhanu/vinom-depths/maze"
	"github.com/google/uuid"
)

// RunManager creates runs and routes player requests to them.
type RunManager interface {
	// NewRun generates a board for player and returns the run id, its access token and initial state.
	NewRun(ctx context.Context, player string) (uuid.UUID, string, game.State, error)

	// Move moves the player of run id one cell in direction d.
	Move(ctx context.Context, id uuid.UUID, d maze.Direction) (maze.MoveOutcome, game.State, error)

	// State returns the current state of run id.
	State(id uuid.UUID) (game.State, error)

	// Cell returns the view of a single cell of run id.
	Cell(id uuid.UUID, row, col int) (game.CellView, error)

	// Window returns the cells within radius of the player of run id.
	Window(id uuid.UUID, radius int) ([]game.CellView, error)

	// Debug returns the debug overlay of run id.
	Debug(id uuid.UUID) (game.DebugView, error)

	// Close forgets run id.
	Close(id uuid.UUID) error

	// Leaderboard returns the best n scores.
	Leaderboard(ctx context.Context, n int64) ([]dmn.Score, error)

	// History returns the last finished runs of player.
	History(ctx context.Context, player string, limit int64) ([]dmn.RunRecord, error)
}
