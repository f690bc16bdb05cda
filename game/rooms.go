package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/event"
)

// GridRooms splits the arena into equal rooms numbered row-major from the origin corner
type GridRooms struct {
	Width, Depth float64
	Cols, Rows   int
}

// NewGridRooms creates a cols x rows grid over a width x depth arena
func NewGridRooms(width, depth float64, cols, rows int) GridRooms {
	return GridRooms{Width: width, Depth: depth, Cols: cols, Rows: rows}
}

// RoomAt returns the room containing pos, NoRoom outside the arena
func (g GridRooms) RoomAt(pos mgl64.Vec3) event.RoomID {
	if g.Cols <= 0 || g.Rows <= 0 || g.Width <= 0 || g.Depth <= 0 {
		return event.NoRoom
	}
	x, z := pos[0], pos[2]
	if x < 0 || x > g.Width || z < 0 || z > g.Depth {
		return event.NoRoom
	}

	col := int(math.Floor(x / g.Width * float64(g.Cols)))
	row := int(math.Floor(z / g.Depth * float64(g.Rows)))
	// Far walls belong to the last room
	col = min(col, g.Cols-1)
	row = min(row, g.Rows-1)
	return event.RoomID(row*g.Cols + col)
}

// Count returns the number of rooms
func (g GridRooms) Count() int {
	return g.Cols * g.Rows
}

// Center returns the center of room id on the ground plane
func (g GridRooms) Center(id event.RoomID) (mgl64.Vec3, bool) {
	if id < 0 || int(id) >= g.Count() {
		return mgl64.Vec3{}, false
	}
	col, row := int(id)%g.Cols, int(id)/g.Cols
	w, d := g.Width/float64(g.Cols), g.Depth/float64(g.Rows)
	return mgl64.Vec3{(float64(col) + 0.5) * w, 0, (float64(row) + 0.5) * d}, true
}
