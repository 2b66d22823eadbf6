// Package domain holds the records the service persists about finished runs.
package domain

import (
	"errors"
	"regexp"
	"time"
)

const (
	playerNamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minPlayerNameLength = 3
	maxPlayerNameLength = 20
)

var (
	playerNameRegex = regexp.MustCompile(playerNamePattern)

	ErrPlayerNameTooShort = errors.New("player name too short")
	ErrPlayerNameTooLong  = errors.New("player name too long")
	ErrPlayerNameFormat   = errors.New("invalid player name format")
)

// RunRecord is the BSON document stored for every finished run.
type RunRecord struct {
	ID         string    `bson:"_id" json:"id"`
	Player     string    `bson:"player" json:"player"`
	Seed       int64     `bson:"seed" json:"seed"`
	BoardSize  int       `bson:"boardSize" json:"board_size"`
	Steps      int       `bson:"steps" json:"steps"`
	Explored   int       `bson:"explored" json:"explored"`
	Attempts   int       `bson:"attempts" json:"attempts"`
	Verified   bool      `bson:"verified" json:"verified"`
	StartedAt  time.Time `bson:"startedAt" json:"started_at"`
	FinishedAt time.Time `bson:"finishedAt" json:"finished_at"`
}

// Score is a leaderboard entry: the fewest steps a player needed to find an exit.
type Score struct {
	Player string `json:"player"`
	Steps  int    `json:"steps"`
}

// ValidatePlayerName checks length and allowed characters of a player name.
func ValidatePlayerName(name string) error {
	if len(name) < minPlayerNameLength {
		return ErrPlayerNameTooShort
	}
	if len(name) > maxPlayerNameLength {
		return ErrPlayerNameTooLong
	}
	if !playerNameRegex.MatchString(name) {
		return ErrPlayerNameFormat
	}
	return nil
}
