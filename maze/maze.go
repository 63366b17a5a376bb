/*
Package maze provides tools for creating and managing rectangular grid mazes.

It defines the `Maze` structure, composed of `Cell` objects that carry a wall
flag for each side. Mazes are carved with a randomized depth-first traversal
that yields a spanning tree, after which an augmentation pass opens a few extra
walls so the maze contains cycles.

Utility functions cover neighbor detection, passage opening, reachability
checks, wall collision rectangles and ASCII visualization of the maze.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

const (
	// DefaultExtraPassagePercent is the chance, per cell, of opening one
	// extra wall after the spanning tree is carved.
	DefaultExtraPassagePercent = 25
)

var (
	ErrInvalidDimension = errors.New("maze dimensions must be positive")
	ErrInvalidPercent   = errors.New("extra passage percent must be within [0, 100]")
	ErrNotAdjacent      = errors.New("cells are not adjacent")
	ErrOutOfBound       = errors.New("position is out of the maze")
)

// Config holds the parameters of a maze generation run.
type Config struct {
	Cols                int        // Number of columns
	Rows                int        // Number of rows
	ExtraPassagePercent int        // Per cell chance (0 to 100) of opening one extra wall
	Rand                *rand.Rand // Random source; seeded from the clock when nil
}

// Maze represents a rectangular maze of cells stored in row-major order.
type Maze struct {
	Cols  int     // Width of the maze (number of columns)
	Rows  int     // Height of the maze (number of rows)
	Cells []*Cell // Cells indexed by y*Cols + x
}

// New generates a maze of the given dimensions using the default
// augmentation percentage.
func New(cols, rows int, rng *rand.Rand) (*Maze, error) {
	return Generate(Config{
		Cols:                cols,
		Rows:                rows,
		ExtraPassagePercent: DefaultExtraPassagePercent,
		Rand:                rng,
	})
}

// Generate carves a new maze according to cfg.
func Generate(cfg Config) (*Maze, error) {
	if cfg.ExtraPassagePercent < 0 || cfg.ExtraPassagePercent > 100 {
		return nil, ErrInvalidPercent
	}

	m, err := NewGrid(cfg.Cols, cfg.Rows)
	if err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m.carve(rng)
	m.augment(rng, cfg.ExtraPassagePercent)
	return m, nil
}

// NewGrid returns a maze whose cells all have four walls.
func NewGrid(cols, rows int) (*Maze, error) {
	if cols < 1 || rows < 1 {
		return nil, ErrInvalidDimension
	}

	cells := make([]*Cell, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cells = append(cells, newCell(x, y))
		}
	}

	return &Maze{
		Cols:  cols,
		Rows:  rows,
		Cells: cells,
	}, nil
}

// carve builds a spanning tree with an iterative depth-first traversal.
func (m *Maze) carve(rng *rand.Rand) {
	current := m.Cells[0]
	stack := make([]*Cell, 0, len(m.Cells))
	visitedCount := 1

	for visitedCount != len(m.Cells) {
		current.visited = true

		candidates := m.unvisitedDirections(current)
		if len(candidates) == 0 {
			if len(stack) == 0 {
				break
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		next := m.openPassage(current, candidates[rng.Intn(len(candidates))])
		stack = append(stack, current)
		next.visited = true
		visitedCount++
		current = next
	}

	for _, c := range m.Cells {
		c.visited = false
	}
}

// augment opens at most one extra wall per cell, toward the first in-bound
// neighbor (in North, East, South, West order) that is still walled off.
func (m *Maze) augment(rng *rand.Rand, percent int) {
	if percent == 0 {
		return
	}

	for _, c := range m.Cells {
		if rng.Intn(100) >= percent {
			continue
		}
		for _, d := range Directions {
			if m.neighbor(c, d) != nil && c.HasWall(d) {
				m.openPassage(c, d)
				break
			}
		}
	}
}

// unvisitedDirections returns, in scan order, the directions from c that
// lead to an in-bound, unvisited cell.
func (m *Maze) unvisitedDirections(c *Cell) []Direction {
	result := make([]Direction, 0, 4)
	for _, d := range Directions {
		if nbr := m.neighbor(c, d); nbr != nil && !nbr.visited {
			result = append(result, d)
		}
	}
	return result
}

// neighbor returns the cell next to c in direction d, or nil at the border.
func (m *Maze) neighbor(c *Cell, d Direction) *Cell {
	dx, dy := d.delta()
	x, y := c.X+dx, c.Y+dy
	if !m.InBound(x, y) {
		return nil
	}
	return m.Cells[m.Index(x, y)]
}

// InBound reports whether (x, y) lies inside the maze.
func (m *Maze) InBound(x, y int) bool {
	return x >= 0 && x < m.Cols && y >= 0 && y < m.Rows
}

// Index returns the row-major index of (x, y).
func (m *Maze) Index(x, y int) int {
	return y*m.Cols + x
}

// Size returns the number of cells.
func (m *Maze) Size() int {
	return m.Cols * m.Rows
}

// Cell returns the cell at (x, y).
func (m *Maze) Cell(x, y int) (*Cell, error) {
	if !m.InBound(x, y) {
		return nil, ErrOutOfBound
	}
	return m.Cells[m.Index(x, y)], nil
}

// CellAt returns the cell at position p.
func (m *Maze) CellAt(p Position) (*Cell, error) {
	return m.Cell(p.X, p.Y)
}

// First returns the entrance cell (0, 0).
func (m *Maze) First() *Cell {
	return m.Cells[0]
}

// Last returns the exit cell (Cols-1, Rows-1).
func (m *Maze) Last() *Cell {
	return m.Cells[len(m.Cells)-1]
}

// OpenPassage removes the wall between two adjacent cells on both sides.
func (m *Maze) OpenPassage(a, b *Cell) error {
	d, ok := directionBetween(a, b)
	if !ok {
		return ErrNotAdjacent
	}
	m.openPassage(a, d)
	return nil
}

// openPassage removes the wall of c facing d and the matching wall of its
// neighbor, then returns the neighbor. The neighbor must be in bound.
func (m *Maze) openPassage(c *Cell, d Direction) *Cell {
	nbr := m.neighbor(c, d)
	c.setWall(d, false)
	nbr.setWall(d.Opposite(), false)
	return nbr
}

// Neighbors returns the cells reachable from c through an open wall.
func (m *Maze) Neighbors(c *Cell) []*Cell {
	result := make([]*Cell, 0, 4)
	for _, d := range Directions {
		if c.HasWall(d) {
			continue
		}
		if nbr := m.neighbor(c, d); nbr != nil {
			result = append(result, nbr)
		}
	}
	return result
}

// OpenEdges counts the passages between adjacent cells.
func (m *Maze) OpenEdges() int {
	count := 0
	for _, c := range m.Cells {
		// East and South only, so each passage is counted once.
		if nbr := m.neighbor(c, East); nbr != nil && !c.EastWall {
			count++
		}
		if nbr := m.neighbor(c, South); nbr != nil && !c.SouthWall {
			count++
		}
	}
	return count
}

// Reachable returns how many cells can be reached from the given cell,
// itself included.
func (m *Maze) Reachable(from *Cell) int {
	seen := make([]bool, len(m.Cells))
	seen[m.Index(from.X, from.Y)] = true
	queue := []*Cell{from}
	count := 0

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		count++
		for _, nbr := range m.Neighbors(c) {
			idx := m.Index(nbr.X, nbr.Y)
			if !seen[idx] {
				seen[idx] = true
				queue = append(queue, nbr)
			}
		}
	}
	return count
}

// IsConnected reports whether every cell is reachable from the entrance.
func (m *Maze) IsConnected() bool {
	return m.Reachable(m.First()) == m.Size()
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for x := 0; x < m.Cols; x++ {
		if m.Cells[x].NorthWall {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for y := 0; y < m.Rows; y++ {
		// Cell rows
		if m.Cells[m.Index(0, y)].WestWall {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < m.Cols; x++ {
			if m.Cells[m.Index(x, y)].EastWall {
				output.WriteString("   |")
			} else {
				output.WriteString("    ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for x := 0; x < m.Cols; x++ {
			if m.Cells[m.Index(x, y)].SouthWall {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
