package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-9

func TestPlanarZeroesVertical(t *testing.T) {
	v := Planar(mgl64.Vec3{1, 5, -2})
	if v[1] != 0 || v[0] != 1 || v[2] != -2 {
		t.Errorf("Planar = %v, want [1 0 -2]", v)
	}
}

func TestNormalizeZero(t *testing.T) {
	v := Normalize(mgl64.Vec3{})
	if v != (mgl64.Vec3{}) {
		t.Errorf("Normalize(0) = %v, want zero vector", v)
	}

	n := Normalize(mgl64.Vec3{3, 0, 4})
	if math.Abs(Mag(n)-1) > tolerance {
		t.Errorf("Normalize length = %v, want 1", Mag(n))
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotateTowards(t *testing.T) {
	forward := mgl64.Vec3{0, 0, 1}
	right := mgl64.Vec3{1, 0, 0}

	t.Run("bounded step", func(t *testing.T) {
		step := 0.1
		got := RotateTowards(forward, right, step)
		angle := AngleBetween(forward, got)
		if math.Abs(angle-step) > 1e-6 {
			t.Errorf("rotated by %v, want %v", angle, step)
		}
		if math.Abs(got[1]) > tolerance {
			t.Errorf("planar rotation left the plane: %v", got)
		}
	})

	t.Run("no overshoot", func(t *testing.T) {
		got := RotateTowards(forward, right, math.Pi)
		if !got.ApproxEqualThreshold(right, 1e-9) {
			t.Errorf("RotateTowards = %v, want %v", got, right)
		}
	})

	t.Run("anti parallel stays planar", func(t *testing.T) {
		got := RotateTowards(forward, mgl64.Vec3{0, 0, -1}, 0.5)
		if math.Abs(got[1]) > 1e-6 {
			t.Errorf("anti-parallel rotation left the plane: %v", got)
		}
		if math.Abs(AngleBetween(forward, got)-0.5) > 1e-6 {
			t.Errorf("anti-parallel step = %v, want 0.5", AngleBetween(forward, got))
		}
	})

	t.Run("zero target keeps heading", func(t *testing.T) {
		got := RotateTowards(forward, mgl64.Vec3{}, 1)
		if got != forward {
			t.Errorf("RotateTowards(zero) = %v, want %v", got, forward)
		}
	})
}
