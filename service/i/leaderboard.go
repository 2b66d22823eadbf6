package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-depths/domain"
)

// Leaderboard keeps the best (lowest) step count per player.
type Leaderboard interface {
	// Record stores steps for player unless the player already has a better score.
	Record(ctx context.Context, player string, steps int) error

	// Top returns up to n scores, best first.
	Top(ctx context.Context, n int64) ([]dmn.Score, error)
}
