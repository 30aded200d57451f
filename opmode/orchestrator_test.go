package opmode

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/movementsensor/fake"
	sensorfake "github.com/fieldbot/teleop/components/sensor/fake"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/statemachine"
	"github.com/fieldbot/teleop/telemetry"
	"github.com/fieldbot/teleop/testutils/inject"
)

func newContext(t *testing.T) (*robot.Context, *clock.Mock, *telemetry.Buffer) {
	t.Helper()
	clk := clock.NewMock()
	buf := telemetry.NewBuffer()
	rc := robot.NewContext(robot.Dependencies{Clock: clk, Telemetry: buf, Logger: logging.NewTestLogger(t)})
	return rc, clk, buf
}

func TestTickOrder(t *testing.T) {
	rc, clk, buf := newContext(t)
	imu := fake.NewIMU(30)
	o := NewOrchestrator(rc, imu)

	var order []string
	o.Configure = func(ctx context.Context, heading float64) error {
		test.That(t, heading, test.ShouldEqual, 30.0)
		order = append(order, "configure")
		return nil
	}
	for _, name := range []string{"collector", "conveyor"} {
		name := name
		s := statemachine.NewFuncState(name, func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
			order = append(order, name)
			return self
		})
		o.Machines = append(o.Machines, statemachine.NewMachine(name, s, nil))
	}
	o.Drive = func(ctx context.Context, heading float64) error {
		order = append(order, "drive")
		return nil
	}
	o.Interlocks = func(ctx context.Context) error {
		order = append(order, "interlocks")
		return nil
	}
	o.Telemetry = func(ctx context.Context, tm telemetry.Telemetry) {
		order = append(order, "telemetry")
		tm.AddData("heading", o.Heading.Heading())
	}

	test.That(t, o.Tick(context.Background()), test.ShouldBeNil)
	test.That(t, order, test.ShouldResemble,
		[]string{"configure", "collector", "conveyor", "drive", "interlocks", "telemetry"})
	test.That(t, imu.Reads(), test.ShouldEqual, 1)
	_, ok := buf.Get(CycleTimeKey)
	test.That(t, ok, test.ShouldBeFalse)

	clk.Add(20 * time.Millisecond)
	test.That(t, o.Tick(context.Background()), test.ShouldBeNil)
	cycle, ok := buf.Get(CycleTimeKey)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cycle, test.ShouldEqual, "20.0")
	test.That(t, o.Ticks(), test.ShouldEqual, 2)
	_, ok = buf.Get(WarningKey)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestTickContinuesPastErrors(t *testing.T) {
	rc, _, buf := newContext(t)
	rc.AppendWarning("liftMotor")
	o := NewOrchestrator(rc, nil)

	errDrive := errors.New("drive bus fault")
	drove, interlocked := false, false
	o.Machines = []*statemachine.Machine{
		statemachine.NewMachine("broken", statemachine.NewFuncState("broken",
			func(ctx context.Context, self *statemachine.FuncState) statemachine.State { return nil }), nil),
	}
	o.Drive = func(ctx context.Context, heading float64) error {
		drove = true
		return errDrive
	}
	o.Interlocks = func(ctx context.Context) error {
		interlocked = true
		return nil
	}

	err := o.Tick(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, statemachine.ErrNoNextState), test.ShouldBeTrue)
	test.That(t, errors.Is(err, errDrive), test.ShouldBeTrue)
	test.That(t, drove, test.ShouldBeTrue)
	test.That(t, interlocked, test.ShouldBeTrue)

	warning, ok := buf.Get(WarningKey)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, warning, test.ShouldEqual, "liftMotor")
}

func TestHeadingHoldsLastGoodValue(t *testing.T) {
	rc, _, _ := newContext(t)
	imu := fake.NewIMU(45)
	o := NewOrchestrator(rc, imu)

	var seen []float64
	o.Drive = func(ctx context.Context, heading float64) error {
		seen = append(seen, heading)
		return nil
	}
	ctx := context.Background()
	test.That(t, o.Tick(ctx), test.ShouldBeNil)

	imu.SetError(errors.New("imu timeout"))
	for i := 0; i < 4; i++ {
		test.That(t, o.Tick(ctx), test.ShouldBeNil)
	}
	test.That(t, seen, test.ShouldResemble, []float64{45, 45, 45, 45, 45})

	// the fifth failure in the window is reported, after which the window starts over
	test.That(t, o.Tick(ctx), test.ShouldNotBeNil)
	test.That(t, o.Tick(ctx), test.ShouldBeNil)
}

func TestVoltageTelemetry(t *testing.T) {
	devices := resource.NewDevices()
	devices.Add(resource.KindVoltageSensor, robot.DefaultVoltageSensorName, &sensorfake.VoltageSensor{Volts: 12.5})
	buf := telemetry.NewBuffer()
	rc := robot.NewContext(robot.Dependencies{Hardware: devices, Telemetry: buf, Clock: clock.NewMock()})
	o := NewOrchestrator(rc, nil)
	test.That(t, o.Tick(context.Background()), test.ShouldBeNil)
	v, ok := buf.Get(VoltageKey)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, "12.50")
	test.That(t, rc.WarningGenerated(), test.ShouldBeFalse)
}

func TestHeadingReadOncePerTick(t *testing.T) {
	rc, _, _ := newContext(t)
	var reads int
	imu := &inject.IMU{HeadingFunc: func(ctx context.Context) (float64, error) {
		reads++
		return float64(reads * 10), nil
	}}
	o := NewOrchestrator(rc, imu)

	var configured, driven []float64
	o.Configure = func(ctx context.Context, heading float64) error {
		configured = append(configured, heading)
		return nil
	}
	o.Drive = func(ctx context.Context, heading float64) error {
		driven = append(driven, heading)
		return nil
	}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		test.That(t, o.Tick(ctx), test.ShouldBeNil)
	}
	test.That(t, reads, test.ShouldEqual, 3)
	test.That(t, configured, test.ShouldResemble, []float64{10, 20, 30})
	test.That(t, driven, test.ShouldResemble, configured)
}
