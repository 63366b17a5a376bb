package i

import (
	"context"

	dmn "github.com/beka-birhanu/maze-runner/domain"
)

// Leaderboard ranks players by their best round score.
type Leaderboard interface {
	// Submit records score for player, keeping the player's best.
	Submit(ctx context.Context, player string, score int) error

	// Top returns up to n entries with the highest scores first.
	Top(ctx context.Context, n int64) ([]dmn.Score, error)

	// Count returns the number of players on the leaderboard.
	Count(ctx context.Context) (int64, error)
}
