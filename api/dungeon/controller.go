package dungeonapi

import (
	"errors"
	"net/http"
	"strconv"

	dmn "github.com/beka-birhanu/vinom-depths/domain"
	"github.com/beka-birhanu/vinom-depths/game"
	"github.com/beka-birhanu/vinom-depths/maze"
	"github.com/beka-birhanu/vinom-depths/service"
	"github.com/beka-birhanu/vinom-depths/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	defaultHistoryLimit     = 20
	maxHistoryLimit         = 100
	defaultWindowRadius     = 5
)

// RunController serves the run, leaderboard and history routes.
type RunController struct {
	runManager i.RunManager
}

// NewRunController initializes a RunController.
func NewRunController(rm i.RunManager) (*RunController, error) {
	if rm == nil {
		return nil, errors.New("run manager is required")
	}
	return &RunController{runManager: rm}, nil
}

// RegisterPublic registers public routes.
func (rc *RunController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/runs", rc.newRun)
	route.GET("/leaderboard", rc.leaderboard)
	route.GET("/players/:name/runs", rc.history)
}

// RegisterProtected registers routes that need the run token.
func (rc *RunController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs/:ID")
	{
		runs.GET("", rc.state)
		runs.POST("/moves", rc.move)
		runs.GET("/cells/:row/:col", rc.cell)
		runs.GET("/window", rc.window)
		runs.GET("/debug", rc.debug)
		runs.DELETE("", rc.close)
	}
}

// newRun handles run creation requests.
func (rc *RunController) newRun(ctx *gin.Context) {
	var request NewRunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, token, state, err := rc.runManager.NewRun(ctx, request.Player)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &NewRunResponse{
		ID:    id.String(),
		Token: token,
		State: state,
	})
}

// move handles a single step of the player.
func (rc *RunController) move(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := maze.ParseDirection(request.Direction)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, state, err := rc.runManager.Move(ctx, id, d)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &MoveResponse{
		Outcome:  out.Outcome.String(),
		Position: out.Position,
		State:    state,
	})
}

func (rc *RunController) state(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	state, err := rc.runManager.State(id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

func (rc *RunController) cell(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	row, rowErr := strconv.Atoi(ctx.Param("row"))
	col, colErr := strconv.Atoi(ctx.Param("col"))
	if rowErr != nil || colErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "row and col must be integers"})
		return
	}

	view, err := rc.runManager.Cell(id, row, col)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (rc *RunController) window(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	radius, err := queryInt(ctx, "radius", defaultWindowRadius)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views, err := rc.runManager.Window(id, radius)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cells": views})
}

func (rc *RunController) debug(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	view, err := rc.runManager.Debug(id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (rc *RunController) close(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	if err := rc.runManager.Close(id); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (rc *RunController) leaderboard(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit", defaultLeaderboardLimit)
	if err != nil || limit < 1 || limit > maxLeaderboardLimit {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	scores, err := rc.runManager.Leaderboard(ctx, int64(limit))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &LeaderboardResponse{Scores: scores})
}

func (rc *RunController) history(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit", defaultHistoryLimit)
	if err != nil || limit < 1 || limit > maxHistoryLimit {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	runs, err := rc.runManager.History(ctx, ctx.Param("name"), int64(limit))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &HistoryResponse{Runs: runs})
}

func runID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(ctx *gin.Context, key string, def int) (int, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// abortWithError maps service errors to status codes.
func abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrRunFinished):
		status = http.StatusConflict
	case errors.Is(err, game.ErrOutOfBounds),
		errors.Is(err, game.ErrInvalidRadius),
		errors.Is(err, dmn.ErrPlayerNameTooShort),
		errors.Is(err, dmn.ErrPlayerNameTooLong),
		errors.Is(err, dmn.ErrPlayerNameFormat):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
