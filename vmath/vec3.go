package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis; movement happens in the plane orthogonal to it
var Up = mgl64.Vec3{0, 1, 0}

// Epsilon below which a squared magnitude is treated as zero
const Epsilon = 1e-12

// MagSq returns the squared magnitude of v
func MagSq(v mgl64.Vec3) float64 {
	return v.Dot(v)
}

// Mag returns the magnitude of v
func Mag(v mgl64.Vec3) float64 {
	return math.Sqrt(MagSq(v))
}

// Planar zeroes the vertical component
func Planar(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// FromStick maps a two-axis stick reading onto the ground plane (stick Y is world Z)
func FromStick(x, y float64) mgl64.Vec3 {
	return mgl64.Vec3{x, 0, y}
}

// Normalize returns the unit vector of v, or the zero vector when v has no length
// mgl64 Normalize divides by the length unconditionally and yields NaN for zero input
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	magSq := MagSq(v)
	if magSq < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / math.Sqrt(magSq))
}

// Distance returns the euclidean distance between a and b
func Distance(a, b mgl64.Vec3) float64 {
	return Mag(a.Sub(b))
}

// Clamp01 limits f to [0, 1]
func Clamp01(f float64) float64 {
	return mgl64.Clamp(f, 0, 1)
}
