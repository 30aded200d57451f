package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversion(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldEqual, math.Pi)
	test.That(t, DegToRad(-45), test.ShouldAlmostEqual, -math.Pi/4)
}

func TestClip(t *testing.T) {
	test.That(t, ClipUnit(1.7), test.ShouldEqual, 1.0)
	test.That(t, ClipUnit(-3), test.ShouldEqual, -1.0)
	test.That(t, ClipUnit(0.25), test.ShouldEqual, 0.25)
	test.That(t, Clip(0.7, 0, 0.5), test.ShouldEqual, 0.5)
}

func TestRotateDeg(t *testing.T) {
	x, y := RotateDeg(1, 0, 90)
	test.That(t, x, test.ShouldAlmostEqual, 0.0)
	test.That(t, y, test.ShouldAlmostEqual, 1.0)

	x, y = RotateDeg(0, -1, -90)
	test.That(t, x, test.ShouldAlmostEqual, -1.0)
	test.That(t, y, test.ShouldAlmostEqual, 0.0)

	x, y = RotateDeg(0.3, -0.4, 0)
	test.That(t, x, test.ShouldAlmostEqual, 0.3)
	test.That(t, y, test.ShouldAlmostEqual, -0.4)
}

func TestSign(t *testing.T) {
	test.That(t, Sign(-0.01), test.ShouldEqual, -1.0)
	test.That(t, Sign(0), test.ShouldEqual, 0.0)
	test.That(t, Sign(4), test.ShouldEqual, 1.0)
}
