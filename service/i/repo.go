package i

import (
	"context"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or replaces a maze document.
	Save(ctx context.Context, doc *dmn.MazeDocument) error

	// ByID retrieves a maze by its unique ID.
	// Returns an error if the maze is not found or in case of an unexpected error.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeDocument, error)
}

// RecordStore keeps the best score ever reached.
type RecordStore interface {
	// Record returns the stored best score, creating a zero record when none exists.
	Record(ctx context.Context) (int, error)

	// SetRecord stores score unless a higher one is already recorded.
	SetRecord(ctx context.Context, score int) error
}
