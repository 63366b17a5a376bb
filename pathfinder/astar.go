// Package pathfinder computes shortest routes through a maze with A* search
// over the open-wall adjacency graph.
package pathfinder

import (
	"container/heap"
	"errors"
	"math"

	"github.com/beka-birhanu/maze-runner/maze"
)

var (
	ErrInvalidMaze = errors.New("maze is nil or empty")
	ErrInvalidCell = errors.New("cell does not belong to the maze")
)

// Path is an ordered sequence of cells from start to end inclusive.
// An empty path means the end is unreachable.
type Path []*maze.Cell

// Len returns the number of cells on the path.
func (p Path) Len() int {
	return len(p)
}

// Positions returns the coordinates of every cell on the path.
func (p Path) Positions() []maze.Position {
	positions := make([]maze.Position, len(p))
	for i, c := range p {
		positions[i] = c.Pos()
	}
	return positions
}

// Manhattan returns |dx| + |dy| between two cells.
func Manhattan(a, b *maze.Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// FindPath returns a minimum-length path from start to end following open
// walls only. Unit edge costs and the Manhattan heuristic keep the first pop
// of end optimal. Ties on f-score are broken by the lower cell index.
func FindPath(m *maze.Maze, start, end maze.Position) (Path, error) {
	if m == nil || len(m.Cells) == 0 {
		return nil, ErrInvalidMaze
	}

	startCell, err := m.CellAt(start)
	if err != nil {
		return nil, ErrInvalidCell
	}
	endCell, err := m.CellAt(end)
	if err != nil {
		return nil, ErrInvalidCell
	}

	n := len(m.Cells)
	gScore := make([]int, n)
	fScore := make([]int, n)
	cameFrom := make([]int, n)
	for i := range gScore {
		gScore[i] = math.MaxInt
		fScore[i] = math.MaxInt
		cameFrom[i] = -1
	}

	startIdx := m.Index(startCell.X, startCell.Y)
	endIdx := m.Index(endCell.X, endCell.Y)
	gScore[startIdx] = 0
	fScore[startIdx] = Manhattan(startCell, endCell)

	open := &frontier{}
	heap.Push(open, item{index: startIdx, priority: fScore[startIdx]})

	for open.Len() > 0 {
		current := heap.Pop(open).(item)
		if current.priority > fScore[current.index] {
			// Stale entry; the cell was pushed again with a better score.
			continue
		}
		if current.index == endIdx {
			return reconstruct(m, cameFrom, endIdx), nil
		}

		cell := m.Cells[current.index]
		for _, nbr := range m.Neighbors(cell) {
			nbrIdx := m.Index(nbr.X, nbr.Y)
			tentative := gScore[current.index] + 1
			if tentative < gScore[nbrIdx] {
				cameFrom[nbrIdx] = current.index
				gScore[nbrIdx] = tentative
				fScore[nbrIdx] = tentative + Manhattan(nbr, endCell)
				heap.Push(open, item{index: nbrIdx, priority: fScore[nbrIdx]})
			}
		}
	}

	return Path{}, nil
}

// reconstruct follows predecessor links back from end and reverses them.
func reconstruct(m *maze.Maze, cameFrom []int, end int) Path {
	var path Path
	for idx := end; idx != -1; idx = cameFrom[idx] {
		path = append(path, m.Cells[idx])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
