package motor_test

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/motor/fake"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/resource"
)

func TestClampPower(t *testing.T) {
	test.That(t, motor.ClampPower(1.5), test.ShouldEqual, 1.0)
	test.That(t, motor.ClampPower(-1.5), test.ShouldEqual, -1.0)
	test.That(t, motor.ClampPower(0.3), test.ShouldEqual, 0.3)
}

func TestGetSign(t *testing.T) {
	test.That(t, motor.GetSign(0), test.ShouldEqual, 0.0)
	test.That(t, motor.GetSign(-0.2), test.ShouldEqual, -1.0)
	test.That(t, motor.GetSign(7), test.ShouldEqual, 1.0)
}

func TestSetPowerIfPresent(t *testing.T) {
	ctx := context.Background()
	test.That(t, motor.SetPowerIfPresent(ctx, nil, 0.5), test.ShouldBeNil)

	m := fake.NewMotor("lift", logging.NewTestLogger(t))
	m.Strict = true
	test.That(t, motor.SetPowerIfPresent(ctx, m, 4), test.ShouldBeNil)
	test.That(t, m.CommandedPower(), test.ShouldEqual, 1.0)

	err := m.SetPower(ctx, -2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outside [-1, 1]")
}

func TestFromHardwareMap(t *testing.T) {
	devices := resource.NewDevices()
	m := fake.NewMotor("liftMotor", nil)
	devices.Add(resource.KindMotor, "liftMotor", m)

	got, err := motor.FromHardwareMap(devices, "liftMotor")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldEqual, m)

	_, err = motor.FromHardwareMap(devices, "collectorMotor")
	test.That(t, resource.IsNotFoundError(err), test.ShouldBeTrue)
}

func TestFakeDirection(t *testing.T) {
	ctx := context.Background()
	m := fake.NewMotor("leftFront", nil)
	test.That(t, m.SetDirection(ctx, motor.Reverse), test.ShouldBeNil)
	test.That(t, m.SetPower(ctx, 0.25), test.ShouldBeNil)
	test.That(t, m.PowerPct(), test.ShouldEqual, -0.25)
	test.That(t, m.CommandedPower(), test.ShouldEqual, 0.25)
	test.That(t, m.Direction().String(), test.ShouldEqual, "REVERSE")
	test.That(t, motor.RunWithEncoder.String(), test.ShouldEqual, "RUN_WITH_ENCODER")
	test.That(t, motor.Brake.String(), test.ShouldEqual, "BRAKE")
}

func TestFakeWithoutEncoder(t *testing.T) {
	ctx := context.Background()
	m := fake.NewMotor("leftDrive1", nil)
	m.NoEncoder = true
	err := m.SetRunMode(ctx, motor.RunWithEncoder)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldEqual, "motor named leftDrive1 does not support run mode RUN_WITH_ENCODER")
	test.That(t, m.RunMode(), test.ShouldEqual, motor.RunWithoutEncoder)
	test.That(t, m.SetRunMode(ctx, motor.RunWithoutEncoder), test.ShouldBeNil)
}
