package game

import (
	"time"

	"github.com/beka-birhanu/vinom-depths/decor"
	"github.com/beka-birhanu/vinom-depths/maze"
)

// State is a point-in-time view of a run.
type State struct {
	ID           string        `json:"id"`
	Player       string        `json:"player"`
	BoardSize    int           `json:"board_size"`
	Position     maze.Position `json:"position"`
	Entry        maze.Position `json:"entry"`
	Exit         maze.Position `json:"exit"`
	Verified     bool          `json:"verified"` // false when generation gave up proving the exit reachable
	Attempts     int           `json:"attempts"`
	Steps        int           `json:"steps"`
	Materialized int           `json:"materialized"`
	Finished     bool          `json:"finished"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
}

// Record is the final state of a run plus what is needed to replay it.
type Record struct {
	State
	Seed int64
}

// CellView is the read-only view renderers get of one cell.
type CellView struct {
	Position   maze.Position    `json:"position"`
	Kind       string           `json:"kind"`
	Passages   []string         `json:"passages"`
	OnMainPath bool             `json:"on_main_path"`
	Decoration decor.Decoration `json:"decoration"`
}

// DebugView is the debug overlay of a run.
type DebugView struct {
	Board    string          `json:"board"`
	MainPath []maze.Position `json:"main_path"`
}
