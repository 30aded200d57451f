package holonomic

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/input"
	inputfake "github.com/fieldbot/teleop/components/input/fake"
	"github.com/fieldbot/teleop/components/motor/fake"
)

func powersAlmostEqual(t *testing.T, got, expected Powers) {
	t.Helper()
	test.That(t, got.X1, test.ShouldAlmostEqual, expected.X1)
	test.That(t, got.X2, test.ShouldAlmostEqual, expected.X2)
	test.That(t, got.Y1, test.ShouldAlmostEqual, expected.Y1)
	test.That(t, got.Y2, test.ShouldAlmostEqual, expected.Y2)
}

func TestSpinPriority(t *testing.T) {
	t.Run("spin ignores translation", func(t *testing.T) {
		for _, left := range [][2]float64{{0, 0}, {1, -1}, {-0.4, 0.9}, {0.2, 0.2}} {
			p := SpinPriority(Sticks{LeftX: left[0], LeftY: left[1], RightX: 0.5})
			powersAlmostEqual(t, p, Powers{-0.3, -0.3, -0.3, -0.3})
		}
	})

	t.Run("forward without alignment", func(t *testing.T) {
		p := SpinPriority(Sticks{LeftY: -1, RightTrigger: 0.9})
		powersAlmostEqual(t, p, Powers{0, 0, 1, -1})
	})

	t.Run("forward with alignment", func(t *testing.T) {
		p := SpinPriority(Sticks{LeftY: -1})
		powersAlmostEqual(t, p, Powers{0.5, -0.5, 0.5, -0.5})
	})

	t.Run("trigger exactly at threshold disables alignment", func(t *testing.T) {
		p := SpinPriority(Sticks{LeftY: -1, RightTrigger: DefaultAlignDisableTrigger})
		powersAlmostEqual(t, p, Powers{0, 0, 1, -1})
	})

	t.Run("orientation shift composes with alignment", func(t *testing.T) {
		p := SpinPriority(Sticks{LeftY: -1, ShiftDeg: -90})
		powersAlmostEqual(t, p, Powers{0.5, -0.5, -0.5, 0.5})
	})
}

func TestSimultaneousIgnoresSpin(t *testing.T) {
	in := Sticks{LeftY: -1, RightTrigger: 1}
	withSpin := in
	withSpin.RightX = 1
	test.That(t, Simultaneous(withSpin), test.ShouldResemble, Simultaneous(in))
	powersAlmostEqual(t, Simultaneous(in), Powers{0, 0, 1, -1})
}

func TestOrientationShiftDegrees(t *testing.T) {
	g := inputfake.NewGamepad()
	test.That(t, OrientationShiftDegrees(g), test.ShouldEqual, 0.0)

	for _, tc := range []struct {
		button   input.Control
		expected float64
	}{
		{input.ButtonY, 0},
		{input.ButtonB, -90},
		{input.ButtonA, -180},
		{input.ButtonX, -270},
	} {
		g.Reset()
		g.Press(tc.button)
		test.That(t, OrientationShiftDegrees(g), test.ShouldEqual, tc.expected)
	}

	g.Reset()
	g.Press(input.ButtonY)
	g.Press(input.ButtonA)
	test.That(t, OrientationShiftDegrees(g), test.ShouldEqual, 0.0)

	g.Release(input.ButtonY)
	test.That(t, SticksFrom(g).ShiftDeg, test.ShouldEqual, -180.0)
}

func TestDrive(t *testing.T) {
	ctx := context.Background()
	x1, y2 := fake.NewMotor("x1", nil), fake.NewMotor("y2", nil)
	d := NewDrive(x1, nil, nil, y2)
	test.That(t, len(d.Motors()), test.ShouldEqual, 2)

	test.That(t, d.SetPowers(ctx, Powers{X1: 0.4, X2: -0.4, Y1: 2, Y2: -2}), test.ShouldBeNil)
	test.That(t, x1.CommandedPower(), test.ShouldEqual, 0.4)
	test.That(t, y2.CommandedPower(), test.ShouldEqual, -1.0)

	test.That(t, d.StopAllDriveMotors(ctx), test.ShouldBeNil)
	test.That(t, x1.IsPowered(), test.ShouldBeFalse)
	test.That(t, d.LastPowers(), test.ShouldResemble, Powers{})
}
