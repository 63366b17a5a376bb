package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallRects(t *testing.T) {
	t.Run("closed cell yields four edges", func(t *testing.T) {
		c := newCell(2, 1)
		rects := c.WallRects(100, 4)
		assert.Equal(t, []Rect{
			{X: 200, Y: 100, W: 100, H: 4},
			{X: 300, Y: 100, W: 4, H: 100},
			{X: 200, Y: 200, W: 100, H: 4},
			{X: 200, Y: 100, W: 4, H: 100},
		}, rects)
	})

	t.Run("open walls yield nothing", func(t *testing.T) {
		c := newCell(0, 0)
		c.SetWallMask(0)
		assert.Empty(t, c.WallRects(100, 4))
	})

	t.Run("maze collects one rect per present wall", func(t *testing.T) {
		m, err := New(8, 6, rand.New(rand.NewSource(5)))
		require.NoError(t, err)

		walls := 0
		for _, c := range m.Cells {
			for _, d := range Directions {
				if c.HasWall(d) {
					walls++
				}
			}
		}
		assert.Len(t, m.WallRects(50, 2), walls)
	})
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}

	assert.True(t, r.Intersects(Rect{X: 25, Y: 25, W: 10, H: 10}))
	assert.False(t, r.Intersects(Rect{X: 30, Y: 10, W: 5, H: 5}), "touching edges")
	assert.True(t, r.Contains(10, 10))
	assert.False(t, r.Contains(30, 30))

	x, y := r.Center()
	assert.Equal(t, 20, x)
	assert.Equal(t, 20, y)
	assert.Equal(t, Rect{X: 15, Y: 5, W: 20, H: 20}, r.Move(5, -5))

	walls := []Rect{{X: 0, Y: 0, W: 5, H: 5}, {X: 28, Y: 0, W: 4, H: 100}}
	assert.Equal(t, 1, CollideList(r, walls))
	assert.Equal(t, -1, CollideList(r.Move(100, 100), walls))
}
