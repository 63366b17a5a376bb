// Package pb encodes mazes and paths in the protobuf wire format.
//
// Maze message:
//
//	1: cols  (varint)
//	2: rows  (varint)
//	3: walls (bytes, one byte per cell in row-major order,
//	          bit 0 north, bit 1 east, bit 2 south, bit 3 west)
//
// Path message:
//
//	1: cols    (varint)
//	2: indices (packed varint, row-major cell indices from start to end)
package pb

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinder"
	"github.com/beka-birhanu/maze-runner/service/i"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldCols    protowire.Number = 1
	fieldRows    protowire.Number = 2
	fieldWalls   protowire.Number = 3
	fieldIndices protowire.Number = 2
)

var (
	ErrNilMaze          = errors.New("maze is nil")
	ErrLayoutMismatch   = errors.New("wall layout does not match maze dimensions")
	ErrAsymmetricWalls  = errors.New("wall layout is not symmetric")
	ErrPathOutOfMaze    = errors.New("path index is outside the maze")
	ErrColumnsMismatch  = errors.New("path was encoded for a different maze width")
	ErrDisconnectedPath = errors.New("path steps are not joined by open walls")
)

var _ i.Encoder = &Protobuf{}

type Protobuf struct{}

// MarshalMaze implements i.Encoder.
func (p *Protobuf) MarshalMaze(m *maze.Maze) ([]byte, error) {
	if m == nil {
		return nil, ErrNilMaze
	}

	walls := make([]byte, len(m.Cells))
	for idx, c := range m.Cells {
		walls[idx] = c.WallMask()
	}

	b := protowire.AppendTag(nil, fieldCols, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Cols))
	b = protowire.AppendTag(b, fieldRows, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Rows))
	b = protowire.AppendTag(b, fieldWalls, protowire.BytesType)
	b = protowire.AppendBytes(b, walls)
	return b, nil
}

// UnmarshalMaze implements i.Encoder.
func (p *Protobuf) UnmarshalMaze(b []byte) (*maze.Maze, error) {
	var cols, rows uint64
	var walls []byte

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == fieldCols && typ == protowire.VarintType:
			cols, n = protowire.ConsumeVarint(b)
		case num == fieldRows && typ == protowire.VarintType:
			rows, n = protowire.ConsumeVarint(b)
		case num == fieldWalls && typ == protowire.BytesType:
			walls, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
	}

	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("decoding maze: %w", maze.ErrInvalidDimension)
	}
	size := uint64(len(walls))
	if cols > size || rows > size || cols*rows != size {
		return nil, ErrLayoutMismatch
	}

	m, err := maze.NewGrid(int(cols), int(rows))
	if err != nil {
		return nil, fmt.Errorf("decoding maze: %w", err)
	}

	for idx, c := range m.Cells {
		c.SetWallMask(walls[idx])
	}
	for _, c := range m.Cells {
		if c.X+1 < m.Cols && c.EastWall != m.Cells[m.Index(c.X+1, c.Y)].WestWall {
			return nil, ErrAsymmetricWalls
		}
		if c.Y+1 < m.Rows && c.SouthWall != m.Cells[m.Index(c.X, c.Y+1)].NorthWall {
			return nil, ErrAsymmetricWalls
		}
	}

	return m, nil
}

// MarshalPath implements i.Encoder.
func (p *Protobuf) MarshalPath(m *maze.Maze, path pathfinder.Path) ([]byte, error) {
	if m == nil {
		return nil, ErrNilMaze
	}

	var packed []byte
	for _, c := range path {
		packed = protowire.AppendVarint(packed, uint64(m.Index(c.X, c.Y)))
	}

	b := protowire.AppendTag(nil, fieldCols, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Cols))
	b = protowire.AppendTag(b, fieldIndices, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b, nil
}

// UnmarshalPath implements i.Encoder. The path is resolved against m.
func (p *Protobuf) UnmarshalPath(m *maze.Maze, b []byte) (pathfinder.Path, error) {
	if m == nil {
		return nil, ErrNilMaze
	}

	var cols uint64
	var packed []byte

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == fieldCols && typ == protowire.VarintType:
			cols, n = protowire.ConsumeVarint(b)
		case num == fieldIndices && typ == protowire.BytesType:
			packed, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
	}

	if len(packed) > 0 && int(cols) != m.Cols {
		return nil, ErrColumnsMismatch
	}

	path := pathfinder.Path{}
	for len(packed) > 0 {
		idx, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		packed = packed[n:]

		if idx >= uint64(len(m.Cells)) {
			return nil, ErrPathOutOfMaze
		}
		c := m.Cells[idx]
		if len(path) > 0 && path[len(path)-1].WallToward(c) {
			return nil, ErrDisconnectedPath
		}
		path = append(path, c)
	}

	return path, nil
}
