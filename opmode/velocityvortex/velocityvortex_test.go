package velocityvortex

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/input"
	inputfake "github.com/fieldbot/teleop/components/input/fake"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/config"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/mechanism/collector"
	"github.com/fieldbot/teleop/mechanism/shooter"
	"github.com/fieldbot/teleop/opmode"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/robot/fake"
	"github.com/fieldbot/teleop/telemetry"
)

type rig struct {
	prog     *Program
	hw       *fake.Hardware
	driver   *inputfake.Gamepad
	operator *inputfake.Gamepad
	buf      *telemetry.Buffer
	clk      *clock.Mock
	rc       *robot.Context
}

func setup(t *testing.T, conf *config.Config, missing ...string) *rig {
	t.Helper()
	reg, ok := opmode.Lookup(Name)
	test.That(t, ok, test.ShouldBeTrue)

	r := &rig{
		hw:       fake.NewHardware(reg.Devices, missing, nil),
		driver:   inputfake.NewGamepad(),
		operator: inputfake.NewGamepad(),
		buf:      telemetry.NewBuffer(),
		clk:      clock.NewMock(),
	}
	r.rc = robot.NewContext(robot.Dependencies{
		Hardware:  r.hw,
		Driver:    r.driver,
		Operator:  r.operator,
		Telemetry: r.buf,
		Clock:     r.clk,
		Config:    conf,
		Logger:    logging.NewTestLogger(t),
	})
	op, err := opmode.New(Name, r.rc)
	test.That(t, err, test.ShouldBeNil)
	r.prog = op.(*Program)
	test.That(t, op.Init(context.Background()), test.ShouldBeNil)
	return r
}

func (r *rig) loop() {
	r.clk.Add(20 * time.Millisecond)
	r.prog.Loop(context.Background())
}

func (r *rig) tap(g *inputfake.Gamepad, c input.Control) {
	g.Press(c)
	r.loop()
	g.Release(c)
	r.loop()
}

func TestTankDrive(t *testing.T) {
	r := setup(t, nil)
	test.That(t, r.hw.Motors[RightDrive1Name].Direction(), test.ShouldEqual, motor.Reverse)
	test.That(t, r.hw.Motors[LeftDrive1Name].RunMode(), test.ShouldEqual, motor.RunWithoutEncoder)

	r.driver.Set(input.AbsoluteY, -1)
	r.loop()
	for _, name := range []string{LeftDrive1Name, LeftDrive2Name, RightDrive1Name, RightDrive2Name} {
		test.That(t, r.hw.Motors[name].CommandedPower(), test.ShouldEqual, 1.0)
	}

	r.driver.Set(input.AbsoluteY, 0)
	r.driver.Set(input.AbsoluteX, 0.5)
	r.loop()
	test.That(t, r.hw.Motors[LeftDrive2Name].CommandedPower(), test.ShouldEqual, 0.30)
	test.That(t, r.hw.Motors[RightDrive2Name].CommandedPower(), test.ShouldEqual, -0.30)
	v, ok := r.buf.Get("drive")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, "left 0.30 right -0.30")
}

func TestEncoderRunMode(t *testing.T) {
	conf := config.Default()
	conf.Drive.UseEncoders = true
	r := setup(t, conf)
	test.That(t, r.hw.Motors[RightDrive2Name].RunMode(), test.ShouldEqual, motor.RunWithEncoder)
}

func TestCollector(t *testing.T) {
	r := setup(t, nil)
	m := r.hw.Motors[CollectorMotorName]
	r.tap(r.driver, input.ButtonA)
	test.That(t, m.CommandedPower(), test.ShouldEqual, 1.0)
	r.tap(r.driver, input.ButtonB)
	test.That(t, m.CommandedPower(), test.ShouldEqual, -1.0)
	test.That(t, r.prog.Collector().Direction(), test.ShouldEqual, collector.Reverse)
	r.tap(r.driver, input.ButtonB)
	test.That(t, m.CommandedPower(), test.ShouldEqual, 0.0)
}

func TestConveyorFeedsWithoutShooter(t *testing.T) {
	r := setup(t, nil)
	conveyor := r.hw.Servos[ConveyorServoName]

	r.tap(r.operator, input.ButtonDpadUp)
	test.That(t, r.prog.Conveyor().Direction(), test.ShouldEqual, collector.Forward)
	test.That(t, conveyor.Position(), test.ShouldEqual, servo.ContinuousFullReverse)
	test.That(t, r.prog.Shooter().Ready(), test.ShouldBeFalse)
	v, _ := r.buf.Get("conveyor")
	test.That(t, v, test.ShouldEqual, collector.Forward.String())
}

func TestConveyorWaitsForShooter(t *testing.T) {
	conf := config.Default()
	conf.Shooter.GateConveyor = true
	r := setup(t, conf)
	conveyor := r.hw.Servos[ConveyorServoName]
	test.That(t, conveyor.Position(), test.ShouldEqual, servo.ContinuousStop)

	r.tap(r.operator, input.ButtonDpadUp)
	test.That(t, r.prog.Conveyor().Requested(), test.ShouldEqual, collector.Forward)
	test.That(t, conveyor.Position(), test.ShouldEqual, servo.ContinuousStop)
	v, _ := r.buf.Get("conveyor")
	test.That(t, v, test.ShouldEqual, "stopped (waiting for shooter)")

	r.operator.Press(input.ButtonRT)
	r.loop()
	test.That(t, r.prog.Shooter().Machine().Current().Name(), test.ShouldEqual, shooter.StateSpinningUp)
	test.That(t, r.hw.Motors[shooter.TopMotorName].CommandedPower(), test.ShouldEqual, 1.0)
	test.That(t, r.hw.Motors[shooter.BottomMotorName].CommandedPower(), test.ShouldEqual, 1.0)

	r.loop()
	test.That(t, r.prog.Shooter().Ready(), test.ShouldBeFalse)
	r.loop()
	v, ok := r.buf.Get("spin up")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, "0.02s")
	r.clk.Add(config.Default().Shooter.SpinUp())
	r.loop()
	test.That(t, r.prog.Shooter().Ready(), test.ShouldBeTrue)
	test.That(t, conveyor.Position(), test.ShouldEqual, servo.ContinuousFullReverse)

	r.operator.Release(input.ButtonRT)
	r.loop()
	test.That(t, r.prog.Shooter().Ready(), test.ShouldBeFalse)
	test.That(t, r.hw.Motors[shooter.TopMotorName].CommandedPower(), test.ShouldEqual, 0.0)
	r.loop()
	test.That(t, conveyor.Position(), test.ShouldEqual, servo.ContinuousStop)

	// Reverse never waits.
	r.tap(r.operator, input.ButtonDpadDown)
	test.That(t, conveyor.Position(), test.ShouldEqual, servo.ContinuousFullForward)
}

func TestMissingConveyor(t *testing.T) {
	r := setup(t, nil, ConveyorServoName, shooter.BottomMotorName)
	test.That(t, r.rc.WarningMessage(), test.ShouldContainSubstring, ConveyorServoName)
	r.tap(r.operator, input.ButtonDpadDown)
	r.operator.Press(input.ButtonRT)
	r.loop()
	test.That(t, r.hw.Motors[shooter.TopMotorName].CommandedPower(), test.ShouldEqual, 1.0)
}
