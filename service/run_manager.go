package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-depths/domain"
	"github.com/beka-birhanu/vinom-depths/game"
	"github.com/beka-birhanu/vinom-depths/maze"
	"github.com/beka-birhanu/vinom-depths/service/i"
	"github.com/google/uuid"
)

const (
	defaultBoardSize   = 101
	defaultTokenTTL    = 2 * time.Hour
	defaultStoreTimout = 2 * time.Second
)

var (
	ErrRunNotFound      = errors.New("run not found")
	ErrNoTokenizer      = errors.New("tokenizer is required")
	ErrNoLogger         = errors.New("logger is required")
	ErrStoreUnavailable = errors.New("store not configured")
)

// RunManager keeps the live runs in memory and reports finished ones to the
// leaderboard and run history.
type RunManager struct {
	runs        map[uuid.UUID]*game.Run
	boardSize   int
	maxAttempts int
	tokenTTL    time.Duration
	tokenizer   i.Tokenizer
	leaderboard i.Leaderboard
	runRepo     i.RunRepo
	logger      i.Logger
	seed        func() int64
	now         func() time.Time
	boardOpts   []maze.Option
	sync.RWMutex
}

// Config holds the dependencies of a RunManager. Leaderboard and RunRepo are optional.
type Config struct {
	BoardSize    int
	MaxAttempts  int
	TokenTTL     time.Duration
	Tokenizer    i.Tokenizer
	Leaderboard  i.Leaderboard
	RunRepo      i.RunRepo
	Logger       i.Logger
	Seed         func() int64     // Seed source for new boards; defaults to the wall clock.
	Now          func() time.Time // Clock for run start times and expiry; defaults to time.Now.
	BoardOptions []maze.Option    // Extra options applied to every new board.
}

var _ i.RunManager = &RunManager{}

// NewRunManager validates c and creates a RunManager.
func NewRunManager(c *Config) (*RunManager, error) {
	if c.Tokenizer == nil {
		return nil, ErrNoTokenizer
	}
	if c.Logger == nil {
		return nil, ErrNoLogger
	}

	rm := &RunManager{
		runs:        make(map[uuid.UUID]*game.Run),
		boardSize:   c.BoardSize,
		maxAttempts: c.MaxAttempts,
		tokenTTL:    c.TokenTTL,
		tokenizer:   c.Tokenizer,
		leaderboard: c.Leaderboard,
		runRepo:     c.RunRepo,
		logger:      c.Logger,
		seed:        c.Seed,
		now:         c.Now,
		boardOpts:   c.BoardOptions,
	}
	if rm.boardSize == 0 {
		rm.boardSize = defaultBoardSize
	}
	if rm.tokenTTL <= 0 {
		rm.tokenTTL = defaultTokenTTL
	}
	if rm.now == nil {
		rm.now = time.Now
	}
	if rm.seed == nil {
		rm.seed = func() int64 { return time.Now().UnixNano() }
	}
	return rm, nil
}

// NewRun implements i.RunManager.
func (rm *RunManager) NewRun(ctx context.Context, player string) (uuid.UUID, string, game.State, error) {
	if err := dmn.ValidatePlayerName(player); err != nil {
		return uuid.Nil, "", game.State{}, err
	}

	seed := rm.seed()
	opts := append([]maze.Option{
		maze.WithSeed(seed),
		maze.WithMaxAttempts(rm.maxAttempts),
		maze.WithLogger(rm.logger),
	}, rm.boardOpts...)

	board, err := maze.NewBoard(rm.boardSize, opts...)
	if err != nil {
		rm.logger.Error(fmt.Sprintf("creating board for %s: %s", player, err))
		return uuid.Nil, "", game.State{}, fmt.Errorf("creating board: %w", err)
	}

	rm.Lock()
	id := uuid.New()
	for {
		if _, ok := rm.runs[id]; !ok {
			break
		}
		id = uuid.New()
	}
	run := game.New(game.Config{ID: id, Player: player, Seed: seed, Board: board, Now: rm.now})
	rm.runs[id] = run
	rm.Unlock()

	token, err := rm.tokenizer.Generate(map[string]interface{}{
		i.ClaimRunID:  id.String(),
		i.ClaimPlayer: player,
	}, rm.tokenTTL)
	if err != nil {
		rm.logger.Error(fmt.Sprintf("issuing token for run %s: %s", id, err))
		_ = rm.Close(id)
		return uuid.Nil, "", game.State{}, fmt.Errorf("issuing run token: %w", err)
	}

	state := run.Snapshot()
	if !state.Verified {
		rm.logger.Warning(fmt.Sprintf("run %s started on an unverified board (seed %d)", id, seed))
	}
	rm.logger.Info(fmt.Sprintf("started run %s for player %s (seed %d)", id, player, seed))
	return id, token, state, nil
}

// Move implements i.RunManager.
func (rm *RunManager) Move(ctx context.Context, id uuid.UUID, d maze.Direction) (maze.MoveOutcome, game.State, error) {
	run, err := rm.run(id)
	if err != nil {
		return maze.MoveOutcome{}, game.State{}, err
	}

	out, err := run.Move(d)
	state := run.Snapshot()
	if err != nil {
		return out, state, err
	}

	// only the move that lands on the exit gets here with the exit position
	if out.Outcome == maze.Moved && out.Position == state.Exit {
		rm.finish(ctx, run)
		rm.clean(id)
	}
	return out, state, nil
}

// finish reports a run that just reached its exit. Store failures are logged only.
func (rm *RunManager) finish(ctx context.Context, run *game.Run) {
	rec := run.Record()
	rm.logger.Info(fmt.Sprintf("run %s finished by %s in %d steps", rec.ID, rec.Player, rec.Steps))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultStoreTimout)
	defer cancel()

	if rm.leaderboard != nil {
		if err := rm.leaderboard.Record(ctx, rec.Player, rec.Steps); err != nil {
			rm.logger.Error(fmt.Sprintf("recording score of run %s: %s", rec.ID, err))
		}
	}

	if rm.runRepo != nil {
		err := rm.runRepo.Save(ctx, &dmn.RunRecord{
			ID:         rec.ID,
			Player:     rec.Player,
			Seed:       rec.Seed,
			BoardSize:  rec.BoardSize,
			Steps:      rec.Steps,
			Explored:   rec.Materialized,
			Attempts:   rec.Attempts,
			Verified:   rec.Verified,
			StartedAt:  rec.StartedAt,
			FinishedAt: rec.FinishedAt,
		})
		if err != nil {
			rm.logger.Error(fmt.Sprintf("saving run %s: %s", rec.ID, err))
		}
	}
}

// State implements i.RunManager.
func (rm *RunManager) State(id uuid.UUID) (game.State, error) {
	run, err := rm.run(id)
	if err != nil {
		return game.State{}, err
	}
	return run.Snapshot(), nil
}

// Cell implements i.RunManager.
func (rm *RunManager) Cell(id uuid.UUID, row, col int) (game.CellView, error) {
	run, err := rm.run(id)
	if err != nil {
		return game.CellView{}, err
	}
	return run.Cell(row, col)
}

// Window implements i.RunManager.
func (rm *RunManager) Window(id uuid.UUID, radius int) ([]game.CellView, error) {
	run, err := rm.run(id)
	if err != nil {
		return nil, err
	}
	return run.Window(radius)
}

// Debug implements i.RunManager.
func (rm *RunManager) Debug(id uuid.UUID) (game.DebugView, error) {
	run, err := rm.run(id)
	if err != nil {
		return game.DebugView{}, err
	}
	return run.Debug(), nil
}

// clean forgets a finished run.
func (rm *RunManager) clean(id uuid.UUID) {
	rm.Lock()
	defer rm.Unlock()
	delete(rm.runs, id)
}

// ReapExpired forgets every run older than the token lifetime, since no
// request can reach it anymore. It returns how many runs were removed.
func (rm *RunManager) ReapExpired() int {
	deadline := rm.now().Add(-rm.tokenTTL)

	rm.Lock()
	defer rm.Unlock()
	reaped := 0
	for id, run := range rm.runs {
		if run.StartedAt().Before(deadline) {
			delete(rm.runs, id)
			reaped++
		}
	}
	if reaped > 0 {
		rm.logger.Info(fmt.Sprintf("reaped %d expired runs", reaped))
	}
	return reaped
}

// Reaper calls ReapExpired every interval until ctx is done.
func (rm *RunManager) Reaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rm.ReapExpired()
		}
	}
}

// Close implements i.RunManager.
func (rm *RunManager) Close(id uuid.UUID) error {
	rm.Lock()
	defer rm.Unlock()
	if _, ok := rm.runs[id]; !ok {
		return ErrRunNotFound
	}
	delete(rm.runs, id)
	rm.logger.Info(fmt.Sprintf("closed run %s", id))
	return nil
}

// Leaderboard implements i.RunManager.
func (rm *RunManager) Leaderboard(ctx context.Context, n int64) ([]dmn.Score, error) {
	if rm.leaderboard == nil {
		return nil, ErrStoreUnavailable
	}
	return rm.leaderboard.Top(ctx, n)
}

// History implements i.RunManager.
func (rm *RunManager) History(ctx context.Context, player string, limit int64) ([]dmn.RunRecord, error) {
	if rm.runRepo == nil {
		return nil, ErrStoreUnavailable
	}
	return rm.runRepo.ByPlayer(ctx, player, limit)
}

// Count returns the number of live runs.
func (rm *RunManager) Count() int {
	rm.RLock()
	defer rm.RUnlock()
	return len(rm.runs)
}

func (rm *RunManager) run(id uuid.UUID) (*game.Run, error) {
	rm.RLock()
	defer rm.RUnlock()
	run, ok := rm.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}
