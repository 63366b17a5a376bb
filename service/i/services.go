package i

import (
	"context"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/session"
	"github.com/google/uuid"
)

// MazeCatalog generates, stores and solves mazes.
type MazeCatalog interface {
	// Generate carves a maze of the given size. A zero seed picks one.
	Generate(ctx context.Context, cols, rows int, seed int64) (*dmn.MazeDocument, *maze.Maze, error)

	// Maze loads a stored maze.
	Maze(ctx context.Context, id uuid.UUID) (*dmn.MazeDocument, *maze.Maze, error)

	// Path finds the shortest route between two cells of a stored maze and
	// returns the maze it searched.
	Path(ctx context.Context, id uuid.UUID, from, to *maze.Position) (*maze.Maze, pathfinder.Path, error)
}

// RoundKeeper hands out round tokens, plays rounds and tracks scores.
type RoundKeeper interface {
	// StartRound opens a round and returns its ID, a token bound to it and
	// the round state.
	StartRound(ctx context.Context) (uuid.UUID, string, *session.Round, error)

	// Move steps the player of a round and reports whether it moved and
	// whether it ate food.
	Move(ctx context.Context, roundID uuid.UUID, dx, dy int) (*session.Round, bool, bool, error)

	// RestartRound stores the round record and starts over on a new maze.
	RestartRound(ctx context.Context, roundID uuid.UUID) (*session.Round, error)

	// SubmitScore closes a round and puts the score it earned on the
	// leaderboard under player.
	SubmitScore(ctx context.Context, roundID uuid.UUID, player string) (int, error)

	// Records returns the leaderboard head and the all-time record.
	Records(ctx context.Context, limit int64) (*dmn.Standings, error)
}
