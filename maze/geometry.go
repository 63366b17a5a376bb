package maze

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Intersects reports whether r and o overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Move returns r translated by (dx, dy).
func (r Rect) Move(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether the point (px, py) lies inside r.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Center returns the center point of r.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CollideList returns the index of the first rect in rects that intersects r,
// or -1 when none does.
func CollideList(r Rect, rects []Rect) int {
	for i, o := range rects {
		if r.Intersects(o) {
			return i
		}
	}
	return -1
}

// WallRects returns one rectangle of the given thickness for every wall
// present on the cell, laid along that wall's edge.
func (c *Cell) WallRects(tile, thickness int) []Rect {
	x, y := c.X*tile, c.Y*tile
	rects := make([]Rect, 0, 4)
	if c.NorthWall {
		rects = append(rects, Rect{X: x, Y: y, W: tile, H: thickness})
	}
	if c.EastWall {
		rects = append(rects, Rect{X: x + tile, Y: y, W: thickness, H: tile})
	}
	if c.SouthWall {
		rects = append(rects, Rect{X: x, Y: y + tile, W: tile, H: thickness})
	}
	if c.WestWall {
		rects = append(rects, Rect{X: x, Y: y, W: thickness, H: tile})
	}
	return rects
}

// WallRects collects the wall rectangles of every cell in canonical order.
func (m *Maze) WallRects(tile, thickness int) []Rect {
	rects := make([]Rect, 0, len(m.Cells)*2)
	for _, c := range m.Cells {
		rects = append(rects, c.WallRects(tile, thickness)...)
	}
	return rects
}
