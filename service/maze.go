package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 64
)

var (
	ErrDimensionTooLarge = errors.New("maze dimension is too large")
	ErrMissingDependency = errors.New("missing dependency")
)

// MazeOptions tunes maze generation.
type MazeOptions struct {
	ExtraPassagePercent int // Per cell chance of an extra passage
	MaxDimension        int // Largest accepted cols or rows
}

// MazeService generates mazes, stores them and answers path queries.
type MazeService struct {
	repo    i.MazeRepo
	encoder i.Encoder
	logger  i.Logger
	opts    *MazeOptions
}

var _ i.MazeCatalog = &MazeService{}

// NewMazeService creates a MazeService. Nil options fall back to defaults.
func NewMazeService(repo i.MazeRepo, encoder i.Encoder, logger i.Logger, opts *MazeOptions) (*MazeService, error) {
	if repo == nil || encoder == nil || logger == nil {
		return nil, ErrMissingDependency
	}

	if opts == nil {
		opts = &MazeOptions{
			ExtraPassagePercent: maze.DefaultExtraPassagePercent,
			MaxDimension:        defaultMaxDimension,
		}
	}

	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	if opts.ExtraPassagePercent < 0 || opts.ExtraPassagePercent > 100 {
		return nil, maze.ErrInvalidPercent
	}

	return &MazeService{
		repo:    repo,
		encoder: encoder,
		logger:  logger,
		opts:    opts,
	}, nil
}

// Generate implements i.MazeCatalog.
func (ms *MazeService) Generate(ctx context.Context, cols, rows int, seed int64) (*dmn.MazeDocument, *maze.Maze, error) {
	if cols > ms.opts.MaxDimension || rows > ms.opts.MaxDimension {
		return nil, nil, ErrDimensionTooLarge
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m, err := maze.Generate(maze.Config{
		Cols:                cols,
		Rows:                rows,
		ExtraPassagePercent: ms.opts.ExtraPassagePercent,
		Rand:                rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, nil, err
	}

	layout, err := ms.encoder.MarshalMaze(m)
	if err != nil {
		ms.logger.Error(fmt.Sprintf("Encoding maze: %s", err))
		return nil, nil, err
	}

	doc := &dmn.MazeDocument{
		ID:        uuid.New(),
		Seed:      seed,
		Cols:      cols,
		Rows:      rows,
		Layout:    layout,
		CreatedAt: time.Now().UTC(),
	}
	if err := ms.repo.Save(ctx, doc); err != nil {
		ms.logger.Error(fmt.Sprintf("Saving maze %s: %s", doc.ID, err))
		return nil, nil, err
	}

	ms.logger.Info(fmt.Sprintf("Maze generated: ID=%s Size=%dx%d Seed=%d", doc.ID, cols, rows, seed))
	return doc, m, nil
}

// Maze implements i.MazeCatalog.
func (ms *MazeService) Maze(ctx context.Context, id uuid.UUID) (*dmn.MazeDocument, *maze.Maze, error) {
	doc, err := ms.repo.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	m, err := ms.encoder.UnmarshalMaze(doc.Layout)
	if err != nil {
		ms.logger.Error(fmt.Sprintf("Decoding stored maze %s: %s", id, err))
		return nil, nil, fmt.Errorf("decoding maze %s: %w", id, err)
	}
	return doc, m, nil
}

// Path implements i.MazeCatalog. Nil endpoints default to the entrance
// and the exit.
func (ms *MazeService) Path(ctx context.Context, id uuid.UUID, from, to *maze.Position) (*maze.Maze, pathfinder.Path, error) {
	_, m, err := ms.Maze(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	start, end := m.First().Pos(), m.Last().Pos()
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}

	path, err := pathfinder.FindPath(m, start, end)
	if err != nil {
		return nil, nil, err
	}
	if path.Len() == 0 {
		ms.logger.Warning(fmt.Sprintf("No path in maze %s from %v to %v", id, start, end))
	}
	return m, path, nil
}
