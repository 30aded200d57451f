package tank

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/motor/fake"
	"github.com/fieldbot/teleop/control"
)

func TestCartesian(t *testing.T) {
	t.Run("straight", func(t *testing.T) {
		x := control.ScaleMotorPower(0)
		y := -control.ScaleMotorPower(-1)
		test.That(t, Cartesian(x, y), test.ShouldResemble, Powers{Left: 1, Right: 1})
	})
	t.Run("pivot", func(t *testing.T) {
		x := control.ScaleMotorPower(1)
		y := -control.ScaleMotorPower(0)
		test.That(t, Cartesian(x, y), test.ShouldResemble, Powers{Left: 1, Right: -1})
	})
	t.Run("clipped", func(t *testing.T) {
		test.That(t, Cartesian(0.8, 0.8), test.ShouldResemble, Powers{Left: 1, Right: 0})
	})
}

func TestDrive(t *testing.T) {
	ctx := context.Background()
	l1, l2 := fake.NewMotor("leftDrive1", nil), fake.NewMotor("leftDrive2", nil)
	r1 := fake.NewMotor("rightDrive1", nil)

	d, err := NewDrive(ctx, []motor.Motor{l1, l2}, []motor.Motor{r1, nil})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(d.Motors()), test.ShouldEqual, 3)
	test.That(t, r1.Direction(), test.ShouldEqual, motor.Reverse)

	test.That(t, d.DrivePower(ctx, Powers{Left: 0.5, Right: -0.25}), test.ShouldBeNil)
	test.That(t, l1.CommandedPower(), test.ShouldEqual, 0.5)
	test.That(t, l2.CommandedPower(), test.ShouldEqual, 0.5)
	test.That(t, r1.CommandedPower(), test.ShouldEqual, -0.25)
	test.That(t, d.LastPowers(), test.ShouldResemble, Powers{Left: 0.5, Right: -0.25})

	test.That(t, d.SetRunMode(ctx, motor.RunWithEncoder), test.ShouldBeNil)
	test.That(t, l2.RunMode(), test.ShouldEqual, motor.RunWithEncoder)

	test.That(t, d.StopAllDriveMotors(ctx), test.ShouldBeNil)
	test.That(t, l1.IsPowered(), test.ShouldBeFalse)
	test.That(t, r1.IsPowered(), test.ShouldBeFalse)
}
