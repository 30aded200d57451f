package jewel

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/sensor"
	sensorfake "github.com/fieldbot/teleop/components/sensor/fake"
	servofake "github.com/fieldbot/teleop/components/servo/fake"
	"github.com/fieldbot/teleop/config"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/telemetry"
)

func setup(t *testing.T) (*Arm, *servofake.Servo, *sensorfake.ColorRangeSensor, *clock.Mock) {
	t.Helper()
	s := servofake.NewServo(ServoName(RedAlliance), 0.5)
	c := sensorfake.NewColorRangeSensor(sensor.ColorReading{Red: 40, Blue: 10, Distance: 3})
	devices := resource.NewDevices()
	devices.Add(resource.KindServo, ServoName(RedAlliance), s)
	devices.Add(resource.KindColorRangeSensor, ColorSensorName(RedAlliance), c)
	clk := clock.NewMock()
	rc := robot.NewContext(robot.Dependencies{Hardware: devices, Clock: clk, Logger: logging.NewTestLogger(t)})
	arm := NewArm(rc, RedAlliance)
	test.That(t, arm.Init(context.Background()), test.ShouldBeNil)
	return arm, s, c, clk
}

func step(t *testing.T, a *Arm) {
	t.Helper()
	test.That(t, a.Machine().Step(context.Background()), test.ShouldBeNil)
	test.That(t, a.TakeError(), test.ShouldBeNil)
}

func TestDeploySettleClassifyStow(t *testing.T) {
	arm, s, c, clk := setup(t)
	settle := config.Default().Jewel.Settle()
	test.That(t, s.Position(), test.ShouldEqual, 1.0)

	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateStowed)

	arm.RequestDeploy()
	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateSettling)
	test.That(t, s.Position(), test.ShouldEqual, 0.0)

	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateSettling)
	clk.Add(settle - time.Millisecond)
	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateSettling)
	test.That(t, c.Reads(), test.ShouldEqual, 0)

	clk.Add(time.Millisecond)
	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateReading)
	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateDeployed)
	test.That(t, c.Reads(), test.ShouldEqual, 1)

	color, ok := arm.Color()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, color, test.ShouldEqual, sensor.Red)

	// reading happens once per deploy
	step(t, arm)
	test.That(t, c.Reads(), test.ShouldEqual, 1)

	buf := telemetry.NewBuffer()
	arm.AddTelemetry(buf)
	v, _ := buf.Get("jewel redAlliance")
	test.That(t, v, test.ShouldEqual, "deployed red (r=40 g=0 b=10 d=3.0cm)")

	arm.RequestStow()
	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateStowed)
	test.That(t, s.Position(), test.ShouldEqual, 1.0)
}

func TestStaleRequestsAreDropped(t *testing.T) {
	arm, s, _, _ := setup(t)

	arm.RequestStow()
	step(t, arm)
	test.That(t, arm.StateName(), test.ShouldEqual, StateStowed)

	arm.RequestDeploy()
	step(t, arm)
	arm.RequestStow()
	test.That(t, arm.StateName(), test.ShouldEqual, StateSettling)
	test.That(t, s.Position(), test.ShouldEqual, 0.0)
}

func TestMissingColorSensor(t *testing.T) {
	devices := resource.NewDevices()
	devices.Add(resource.KindServo, ServoName(BlueAlliance), servofake.NewServo(ServoName(BlueAlliance), 0))
	rc := robot.NewContext(robot.Dependencies{Hardware: devices, Clock: clock.NewMock(), Logger: logging.NewTestLogger(t)})
	rc.Config.Jewel.SettleMs = 0
	arm := NewArm(rc, BlueAlliance)
	test.That(t, rc.WarningMessage(), test.ShouldEqual, ColorSensorName(BlueAlliance))

	arm.RequestDeploy()
	for i := 0; i < 3; i++ {
		step(t, arm)
	}
	test.That(t, arm.StateName(), test.ShouldEqual, StateDeployed)
	color, ok := arm.Color()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, color, test.ShouldEqual, sensor.Unknown)
}
