package i

import (
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
)

// Encoder serializes mazes and paths for storage and transport.
type Encoder interface {
	MarshalMaze(*maze.Maze) ([]byte, error)
	UnmarshalMaze([]byte) (*maze.Maze, error)
	MarshalPath(*maze.Maze, pathfinder.Path) ([]byte, error)
	UnmarshalPath(*maze.Maze, []byte) (pathfinder.Path, error)
}
