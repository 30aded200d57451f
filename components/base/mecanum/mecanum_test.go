package mecanum

import (
	"context"
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/motor/fake"
	"github.com/fieldbot/teleop/logging"
)

func powersAlmostEqual(t *testing.T, got, expected Powers) {
	t.Helper()
	test.That(t, got.LeftFront, test.ShouldAlmostEqual, expected.LeftFront)
	test.That(t, got.RightFront, test.ShouldAlmostEqual, expected.RightFront)
	test.That(t, got.LeftRear, test.ShouldAlmostEqual, expected.LeftRear)
	test.That(t, got.RightRear, test.ShouldAlmostEqual, expected.RightRear)
}

func TestCartesian(t *testing.T) {
	t.Run("strafe right", func(t *testing.T) {
		powersAlmostEqual(t, Cartesian(base.DriveCommand{X: 1}, 0), Powers{1, -1, -1, 1})
	})

	t.Run("strafe ignores heading unless field oriented", func(t *testing.T) {
		powersAlmostEqual(t, Cartesian(base.DriveCommand{X: 1}, 37), Powers{1, -1, -1, 1})
	})

	t.Run("field oriented at 90 degrees", func(t *testing.T) {
		cmd := base.DriveCommand{Y: -1, FieldOriented: true}
		powersAlmostEqual(t, Cartesian(cmd, 90), Powers{-1, 1, 1, -1})
	})

	t.Run("heading offset composes with heading", func(t *testing.T) {
		cmd := base.DriveCommand{Y: -1, FieldOriented: true, HeadingOffsetDeg: 45}
		powersAlmostEqual(t, Cartesian(cmd, 45), Powers{-1, 1, 1, -1})
	})

	t.Run("spin", func(t *testing.T) {
		powersAlmostEqual(t, Cartesian(base.DriveCommand{Rotation: -1}, 0), Powers{-1, 1, -1, 1})
	})
}

func TestCartesianNormalization(t *testing.T) {
	for _, cmd := range []base.DriveCommand{
		{X: 1, Y: 1, Rotation: 1},
		{X: -0.7, Y: 1, Rotation: 0.4},
		{X: 0.2, Y: -0.9, Rotation: -0.8},
		{X: 1, Y: -1, Rotation: 1, FieldOriented: true},
	} {
		p := Cartesian(cmd, 33)
		test.That(t, p.Max(), test.ShouldBeLessThanOrEqualTo, 1.0)
	}

	t.Run("saturated keeps ratios", func(t *testing.T) {
		p := Cartesian(base.DriveCommand{X: 1, Y: 1, Rotation: 1}, 0)
		// raw (3, -1, 1, 1) scaled by 1/3
		powersAlmostEqual(t, p, Powers{1, -1.0 / 3, 1.0 / 3, 1.0 / 3})
	})

	t.Run("unsaturated is untouched", func(t *testing.T) {
		p := Cartesian(base.DriveCommand{X: 0.2, Y: 0.3, Rotation: 0.1}, 0)
		powersAlmostEqual(t, p, Powers{0.6, 0, 0.2, 0.4})
	})
}

func newFakeMotors(logger logging.Logger) []*fake.Motor {
	ms := make([]*fake.Motor, 4)
	for i, name := range []string{"leftFrontDriveMotor", "rightFrontDriveMotor", "leftRearDriveMotor", "rightRearDriveMotor"} {
		ms[i] = fake.NewMotor(name, logger)
		ms[i].Strict = true
	}
	return ms
}

func TestDrive(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)
	ms := newFakeMotors(logger)

	d, err := NewDrive(ctx, ms[0], ms[1], ms[2], ms[3], logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ms[0].Direction(), test.ShouldEqual, motor.Reverse)
	test.That(t, ms[2].Direction(), test.ShouldEqual, motor.Reverse)
	test.That(t, ms[1].Direction(), test.ShouldEqual, motor.Forward)

	p, err := d.DriveCartesian(ctx, base.DriveCommand{X: 1, Y: 1, Rotation: 1}, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.LastPowers(), test.ShouldResemble, p)
	test.That(t, ms[0].CommandedPower(), test.ShouldAlmostEqual, 1.0)
	test.That(t, ms[1].CommandedPower(), test.ShouldAlmostEqual, -1.0/3)

	test.That(t, d.SetRunMode(ctx, motor.RunWithEncoder), test.ShouldBeNil)
	test.That(t, d.SetZeroPowerBehavior(ctx, motor.Brake), test.ShouldBeNil)
	for _, m := range ms {
		test.That(t, m.RunMode(), test.ShouldEqual, motor.RunWithEncoder)
		test.That(t, m.ZeroPowerBehavior(), test.ShouldEqual, motor.Brake)
	}

	test.That(t, d.StopAllDriveMotors(ctx), test.ShouldBeNil)
	for _, m := range ms {
		test.That(t, m.IsPowered(), test.ShouldBeFalse)
	}
}

func TestDriveMissingMotors(t *testing.T) {
	ctx := context.Background()
	ms := newFakeMotors(nil)

	d, err := NewDrive(ctx, nil, ms[1], ms[2], nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(d.Motors()), test.ShouldEqual, 2)

	_, err = d.DriveCartesian(ctx, base.DriveCommand{Y: 0.5}, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ms[1].CommandedPower(), test.ShouldEqual, 0.5)
	test.That(t, ms[2].CommandedPower(), test.ShouldEqual, 0.5)
	test.That(t, math.Abs(ms[0].CommandedPower()), test.ShouldEqual, 0.0)
}
