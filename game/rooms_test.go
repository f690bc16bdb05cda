package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/event"
)

func TestGridRooms(t *testing.T) {
	rooms := NewGridRooms(60, 24, 3, 2)

	tests := []struct {
		pos  mgl64.Vec3
		want event.RoomID
	}{
		{mgl64.Vec3{0, 0, 0}, 0},
		{mgl64.Vec3{30, 0, 6}, 1},
		{mgl64.Vec3{10, 0, 12}, 3},
		{mgl64.Vec3{59, 5, 23}, 5},
		{mgl64.Vec3{60, 0, 24}, 5},
		{mgl64.Vec3{-1, 0, 0}, event.NoRoom},
		{mgl64.Vec3{0, 0, 25}, event.NoRoom},
	}
	for _, tt := range tests {
		if got := rooms.RoomAt(tt.pos); got != tt.want {
			t.Errorf("RoomAt(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}

	if rooms.Count() != 6 {
		t.Errorf("Count = %d", rooms.Count())
	}
	if c, ok := rooms.Center(4); !ok || c != (mgl64.Vec3{30, 0, 18}) {
		t.Errorf("Center(4) = %v %v", c, ok)
	}
	if _, ok := rooms.Center(6); ok {
		t.Error("Center out of range should fail")
	}
	if (GridRooms{}).RoomAt(mgl64.Vec3{}) != event.NoRoom {
		t.Error("empty grid should have no rooms")
	}
}
