package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-depths/domain"
)

// RunRepo defines the persistence operations for finished runs.
type RunRepo interface {
	// Save inserts or replaces the record of a finished run.
	Save(ctx context.Context, run *dmn.RunRecord) error

	// ByPlayer returns up to limit runs of player, most recent first.
	ByPlayer(ctx context.Context, player string, limit int64) ([]dmn.RunRecord, error)
}
