package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AngleBetween returns the unsigned angle in radians between a and b
// Returns 0 when either vector has no length
func AngleBetween(a, b mgl64.Vec3) float64 {
	na, nb := Normalize(a), Normalize(b)
	if MagSq(na) == 0 || MagSq(nb) == 0 {
		return 0
	}
	return math.Acos(mgl64.Clamp(na.Dot(nb), -1, 1))
}

// RotateTowards turns the direction of current toward target by at most maxRadians
// Result is a unit vector; it equals normalize(target) once within reach and never overshoots
// Anti-parallel inputs rotate about the world up axis so planar headings stay planar
func RotateTowards(current, target mgl64.Vec3, maxRadians float64) mgl64.Vec3 {
	from := Normalize(current)
	to := Normalize(target)
	if MagSq(to) == 0 {
		return from
	}
	if MagSq(from) == 0 {
		return to
	}
	if maxRadians <= 0 {
		return from
	}

	angle := math.Acos(mgl64.Clamp(from.Dot(to), -1, 1))
	if angle <= maxRadians {
		return to
	}

	axis := from.Cross(to)
	if MagSq(axis) < Epsilon {
		axis = Up
		// Heading parallel to up has no defined planar turn, pick any orthogonal axis
		if MagSq(from.Cross(axis)) < Epsilon {
			axis = mgl64.Vec3{1, 0, 0}
		}
	}
	axis = Normalize(axis)

	rotated := mgl64.QuatRotate(maxRadians, axis).Rotate(from)
	return Normalize(rotated)
}
