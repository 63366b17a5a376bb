// Package session holds the state of one play round: the current maze and
// its solution, wall collision rectangles, food, timer, score and record.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
)

// Round-related errors.
var (
	ErrInvalidConfig = errors.New("invalid round configuration")
	ErrNilRecords    = errors.New("record store is nil")
	ErrNoRoute       = errors.New("no route from entrance to exit")
	ErrRoundOver     = errors.New("round is over")
	ErrInvalidStep   = errors.New("a step moves along one axis by at most half a tile")
)

const (
	baseSpeed      = 60 // Frames per second at the start of a round.
	speedPerFood   = 10 // Speed gained for every food eaten.
	foodInset      = 5  // Gap between a food item and its cell border.
	maxGenerations = 3  // Attempts at a maze with an entrance-to-exit route.
)

// RecordStore keeps the best score between rounds.
type RecordStore interface {
	Record(ctx context.Context) (int, error)
	SetRecord(ctx context.Context, score int) error
}

// Config holds the parameters of a round.
type Config struct {
	Cols                int // Number of maze columns
	Rows                int // Number of maze rows
	Tile                int // Side of a cell in pixels
	Thickness           int // Wall thickness in pixels
	ExtraPassagePercent int // Per cell chance of an extra passage
	RoundSeconds        int // Countdown at the start of a round
	FoodCount           int // Number of food items
}

func (c Config) validate() error {
	if c.Cols < 1 || c.Rows < 1 || c.Tile < 1 || c.Thickness < 0 || 2*c.Thickness >= c.Tile {
		return ErrInvalidConfig
	}
	if c.ExtraPassagePercent < 0 || c.ExtraPassagePercent > 100 || c.RoundSeconds < 0 || c.FoodCount < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Snapshot is an immutable generate+search result published to readers.
type Snapshot struct {
	Maze       *maze.Maze      // Generated maze; never mutated after publication
	Path       pathfinder.Path // Route from the entrance to the exit
	Walls      []maze.Rect     // Collision rectangles of every wall
	Generation int             // Number of the round this snapshot belongs to
}

// Round is the state of the game between two restarts.
type Round struct {
	cfg      Config
	rng      *rand.Rand
	records  RecordStore
	snapshot atomic.Pointer[Snapshot]

	player     maze.Rect   // Player position in pixels.
	food       []maze.Rect // Food items in pixels.
	timeLeft   int         // Seconds left in the round.
	score      int         // Food eaten this round.
	speed      int         // Frames per second.
	record     int         // Best score ever.
	generation int         // Rounds played so far.
	sync.Mutex             // Lock for every field above.
}

// New creates a round with a freshly generated maze.
// A nil rng is seeded from the clock.
func New(ctx context.Context, cfg Config, rng *rand.Rand, records RecordStore) (*Round, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, ErrNilRecords
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	record, err := records.Record(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading record: %w", err)
	}

	r := &Round{
		cfg:     cfg,
		rng:     rng,
		records: records,
		record:  record,
	}
	if err := r.reset(); err != nil {
		return nil, err
	}
	return r, nil
}

// Snapshot returns the maze, path and walls of the current round.
func (r *Round) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// reset regenerates the maze and returns every counter to its start value.
// The caller must hold the lock, or be the constructor.
func (r *Round) reset() error {
	snap, err := r.generate()
	if err != nil {
		return err
	}
	r.snapshot.Store(snap)

	size := r.cfg.Tile - 2*r.cfg.Thickness
	r.player = maze.Rect{X: r.cfg.Tile/2 - size/2, Y: r.cfg.Tile/2 - size/2, W: size, H: size}
	r.food = make([]maze.Rect, r.cfg.FoodCount)
	for idx := range r.food {
		r.food[idx] = r.randomFood()
	}
	r.timeLeft = r.cfg.RoundSeconds
	r.score = 0
	r.speed = baseSpeed
	return nil
}

// generate builds a maze, retrying when the exit cannot be reached.
func (r *Round) generate() (*Snapshot, error) {
	for attempt := 0; attempt < maxGenerations; attempt++ {
		m, err := maze.Generate(maze.Config{
			Cols:                r.cfg.Cols,
			Rows:                r.cfg.Rows,
			ExtraPassagePercent: r.cfg.ExtraPassagePercent,
			Rand:                r.rng,
		})
		if err != nil {
			return nil, err
		}

		path, err := pathfinder.FindPath(m, m.First().Pos(), m.Last().Pos())
		if err != nil {
			return nil, err
		}
		if path.Len() == 0 {
			continue
		}

		r.generation++
		return &Snapshot{
			Maze:       m,
			Path:       path,
			Walls:      m.WallRects(r.cfg.Tile, r.cfg.Thickness),
			Generation: r.generation,
		}, nil
	}
	return nil, ErrNoRoute
}

// randomFood places a food item inside a random cell.
func (r *Round) randomFood() maze.Rect {
	size := r.cfg.Tile - 2*foodInset
	return maze.Rect{
		X: r.rng.Intn(r.cfg.Cols)*r.cfg.Tile + foodInset,
		Y: r.rng.Intn(r.cfg.Rows)*r.cfg.Tile + foodInset,
		W: size,
		H: size,
	}
}

// Restart stores the record, then starts a new round on a new maze.
func (r *Round) Restart(ctx context.Context) error {
	r.Lock()
	defer r.Unlock()

	if err := r.saveRecord(ctx); err != nil {
		return err
	}
	return r.reset()
}

// Finish ends the round with the score earned so far and stores the record.
// The maze is left as it is.
func (r *Round) Finish(ctx context.Context) (int, error) {
	r.Lock()
	defer r.Unlock()
	r.timeLeft = min(r.timeLeft, -1)
	if err := r.saveRecord(ctx); err != nil {
		return 0, err
	}
	return r.score, nil
}

// saveRecord persists max(record, score) and reloads the record.
func (r *Round) saveRecord(ctx context.Context) error {
	best := max(r.record, r.score)
	if err := r.records.SetRecord(ctx, best); err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	record, err := r.records.Record(ctx)
	if err != nil {
		return fmt.Errorf("loading record: %w", err)
	}
	r.record = record
	return nil
}

// Tick removes one second from the round timer and returns what is left.
func (r *Round) Tick() int {
	r.Lock()
	defer r.Unlock()
	r.timeLeft--
	return r.timeLeft
}

// IsOver reports whether the timer ran out.
func (r *Round) IsOver() bool {
	r.Lock()
	defer r.Unlock()
	return r.timeLeft < 0
}

// Step moves the player by (dx, dy) unless a wall is in the way, then eats
// the food under the player. Steps longer than half a tile could jump a wall
// and are rejected, as are diagonal ones.
func (r *Round) Step(dx, dy int) (moved, ate bool, err error) {
	if (dx != 0 && dy != 0) || abs(dx) > r.cfg.Tile/2 || abs(dy) > r.cfg.Tile/2 {
		return false, false, ErrInvalidStep
	}

	r.Lock()
	defer r.Unlock()
	if r.timeLeft < 0 {
		return false, false, ErrRoundOver
	}

	if !r.collides(dx, dy) {
		r.player = r.player.Move(dx, dy)
		moved = true
	}
	return moved, r.eatFood(), nil
}

// collides reports whether the player would hit a wall after moving by (dx, dy).
func (r *Round) collides(dx, dy int) bool {
	return maze.CollideList(r.player.Move(dx, dy), r.Snapshot().Walls) != -1
}

// eatFood consumes the first food item whose center lies under the player.
// The item moves to a new random cell and the round speeds up.
func (r *Round) eatFood() bool {
	for idx, f := range r.food {
		if r.player.Contains(f.Center()) {
			r.food[idx] = r.randomFood()
			r.score++
			r.speed += speedPerFood
			return true
		}
	}
	return false
}

// Player returns the player rectangle.
func (r *Round) Player() maze.Rect {
	r.Lock()
	defer r.Unlock()
	return r.player
}

// Food returns a copy of the food rectangles.
func (r *Round) Food() []maze.Rect {
	r.Lock()
	defer r.Unlock()
	return append([]maze.Rect(nil), r.food...)
}

// Score returns the food eaten this round.
func (r *Round) Score() int {
	r.Lock()
	defer r.Unlock()
	return r.score
}

// Record returns the best score ever, as of the last restart.
func (r *Round) Record() int {
	r.Lock()
	defer r.Unlock()
	return r.record
}

// TimeLeft returns the seconds left in the round.
func (r *Round) TimeLeft() int {
	r.Lock()
	defer r.Unlock()
	return r.timeLeft
}

// Speed returns the frames per second the round should run at.
func (r *Round) Speed() int {
	r.Lock()
	defer r.Unlock()
	return r.speed
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
