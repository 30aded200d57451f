package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Clip limits v to [low, high].
func Clip(v, low, high float64) float64 {
	return lo.Clamp(v, low, high)
}

// ClipUnit limits v to [-1, 1].
func ClipUnit(v float64) float64 {
	return Clip(v, -1, 1)
}

// RotateDeg rotates the point (x, y) counter-clockwise about the origin by degrees.
func RotateDeg(x, y, degrees float64) (float64, float64) {
	v := mgl64.Rotate2D(DegToRad(degrees)).Mul2x1(mgl64.Vec2{x, y})
	return v.X(), v.Y()
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
