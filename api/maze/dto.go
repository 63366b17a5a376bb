// Package mazeapi exposes maze generation and path queries over HTTP.
package mazeapi

import (
	"github.com/beka-birhanu/maze-runner/maze"
)

// CreateMazeRequest represents a request to generate a maze.
type CreateMazeRequest struct {
	Cols int   `json:"cols" binding:"required,min=1"`
	Rows int   `json:"rows" binding:"required,min=1"`
	Seed int64 `json:"seed"`
}

// MazeResponse describes a stored maze. Walls holds one mask per cell in
// row-major order: bit 0 north, bit 1 east, bit 2 south, bit 3 west.
type MazeResponse struct {
	ID    string `json:"id"`
	Cols  int    `json:"cols"`
	Rows  int    `json:"rows"`
	Seed  int64  `json:"seed"`
	Walls []int  `json:"walls"`
}

// PathResponse is a route through a maze.
type PathResponse struct {
	Length int             `json:"length"`
	Cells  []maze.Position `json:"cells"`
}
