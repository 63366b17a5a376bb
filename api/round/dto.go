// Package roundapi hands out rounds, plays them and collects their scores.
package roundapi

import (
	"github.com/beka-birhanu/maze-runner/maze"
)

// RoundState is what a client needs to draw a round.
type RoundState struct {
	Generation int             `json:"generation"`
	Cols       int             `json:"cols"`
	Rows       int             `json:"rows"`
	Walls      []int           `json:"walls"`
	Path       []maze.Position `json:"path"`
	Player     maze.Rect       `json:"player"`
	Food       []maze.Rect     `json:"food"`
	Score      int             `json:"score"`
	TimeLeft   int             `json:"timeLeft"`
	Speed      int             `json:"speed"`
	Record     int             `json:"record"`
	Over       bool            `json:"over"`
}

// StartRoundResponse carries the round token and the round state.
type StartRoundResponse struct {
	RoundID string `json:"roundID"`
	Token   string `json:"token"`
	RoundState
}

// MoveRequest is one player step in pixels.
type MoveRequest struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// MoveResponse reports the outcome of a step.
type MoveResponse struct {
	Moved  bool        `json:"moved"`
	Ate    bool        `json:"ate"`
	Player maze.Rect   `json:"player"`
	Food   []maze.Rect `json:"food"`
	Score  int         `json:"score"`
	Speed  int         `json:"speed"`
}

// ScoreRequest closes a round under a player name.
type ScoreRequest struct {
	Player string `json:"player" binding:"required"`
}

// ScoreResponse is the score the round earned.
type ScoreResponse struct {
	Score int `json:"score"`
}
