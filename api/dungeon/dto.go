// Package dungeonapi exposes dungeon runs over HTTP.
package dungeonapi

import (
	dmn "github.com/beka-birhanu/vinom-depths/domain"
	"github.com/beka-birhanu/vinom-depths/game"
	"github.com/beka-birhanu/vinom-depths/maze"
)

// NewRunRequest starts a run for a player.
type NewRunRequest struct {
	Player string `json:"player" binding:"required"`
}

// NewRunResponse carries the run id, the token protecting it and the initial state.
type NewRunResponse struct {
	ID    string     `json:"id"`
	Token string     `json:"token"`
	State game.State `json:"state"`
}

// MoveRequest asks to move one cell. Direction is a name or initial, e.g. "north" or "N".
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// MoveResponse reports what happened and the run state afterwards.
type MoveResponse struct {
	Outcome  string        `json:"outcome"`
	Position maze.Position `json:"position"`
	State    game.State    `json:"state"`
}

// LeaderboardResponse lists the best scores, fewest steps first.
type LeaderboardResponse struct {
	Scores []dmn.Score `json:"scores"`
}

// HistoryResponse lists a player's finished runs, newest first.
type HistoryResponse struct {
	Runs []dmn.RunRecord `json:"runs"`
}
