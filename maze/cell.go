package maze

// Direction names one side of a cell.
type Direction int

// Directions in the fixed scan order used by generation, augmentation and
// neighbor enumeration.
const (
	North Direction = iota // top
	East                   // right
	South                  // bottom
	West                   // left
)

// Directions lists every direction in scan order.
var Directions = [4]Direction{North, East, South, West}

// delta returns the coordinate offset of the neighbor in direction d.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the direction facing d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Unknown"
}

// Position is a cell coordinate in the maze grid.
type Position struct {
	X int `json:"x"` // Column index of the cell
	Y int `json:"y"` // Row index of the cell
}

// Cell represents a single cell in a maze grid.
// It includes its coordinates and a flag for the wall on each side.
type Cell struct {
	X         int  // Column index of the cell
	Y         int  // Row index of the cell
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the cell.

	visited bool
}

func newCell(x, y int) *Cell {
	return &Cell{
		X:         x,
		Y:         y,
		NorthWall: true,
		EastWall:  true,
		SouthWall: true,
		WestWall:  true,
	}
}

// Pos returns the coordinates of the cell.
func (c *Cell) Pos() Position {
	return Position{X: c.X, Y: c.Y}
}

// HasWall reports whether the wall on side d is present.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.NorthWall
	case East:
		return c.EastWall
	case South:
		return c.SouthWall
	case West:
		return c.WestWall
	}
	return true
}

func (c *Cell) setWall(d Direction, present bool) {
	switch d {
	case North:
		c.NorthWall = present
	case East:
		c.EastWall = present
	case South:
		c.SouthWall = present
	case West:
		c.WestWall = present
	}
}

// WallToward reports whether c has a wall on the side shared with other.
// Cells that are not 4-adjacent are always separated.
func (c *Cell) WallToward(other *Cell) bool {
	d, ok := directionBetween(c, other)
	if !ok {
		return true
	}
	return c.HasWall(d)
}

// WallMask packs the wall flags into the low four bits: bit 0 north,
// bit 1 east, bit 2 south, bit 3 west.
func (c *Cell) WallMask() byte {
	var mask byte
	for _, d := range Directions {
		if c.HasWall(d) {
			mask |= 1 << d
		}
	}
	return mask
}

// SetWallMask sets the wall flags from a mask produced by WallMask.
func (c *Cell) SetWallMask(mask byte) {
	for _, d := range Directions {
		c.setWall(d, mask&(1<<d) != 0)
	}
}

// directionBetween returns the side of a that faces b.
func directionBetween(a, b *Cell) (Direction, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	for _, d := range Directions {
		ddx, ddy := d.delta()
		if dx == ddx && dy == ddy {
			return d, true
		}
	}
	return 0, false
}
