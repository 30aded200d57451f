// Package velocityvortex is the driver-operated program for the tank robot with the particle
// collector, conveyor and shooter.
//
// Driver: left stick drives, A and B toggle the collector forward and in reverse.
// Operator: dpad up and down toggle the conveyor, holding the right bumper runs the shooter.
// The conveyor only feeds forward once the shooter has spun up.
package velocityvortex

import (
	"context"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base/tank"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/mechanism/collector"
	"github.com/fieldbot/teleop/mechanism/shooter"
	"github.com/fieldbot/teleop/opmode"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/telemetry"
)

// Name is the registered program name.
const Name = "velocity-vortex"

// Device names.
const (
	LeftDrive1Name     = "leftDrive1"
	LeftDrive2Name     = "leftDrive2"
	RightDrive1Name    = "rightDrive1"
	RightDrive2Name    = "rightDrive2"
	CollectorMotorName = "collectorMotor"
	ConveyorServoName  = "conveyorServo"
)

func init() {
	opmode.Register(Name, opmode.Registration{
		Constructor: func(rc *robot.Context) opmode.OpMode { return New(rc) },
		Description: "tank teleop with collector, conveyor and shooter",
		Devices: []resource.Name{
			motor.Named(LeftDrive1Name),
			motor.Named(LeftDrive2Name),
			motor.Named(RightDrive1Name),
			motor.Named(RightDrive2Name),
			motor.Named(CollectorMotorName),
			servo.Named(ConveyorServoName),
			motor.Named(shooter.TopMotorName),
			motor.Named(shooter.BottomMotorName),
		},
	})
}

// Program is the velocity vortex teleop.
type Program struct {
	opmode.Base

	logger    logging.Logger
	drive     *tank.Drive
	collector *collector.Reversible
	conveyor  *collector.Reversible
	shooter   *shooter.Shooter
}

// New returns the program. Hardware is looked up in Init.
func New(rc *robot.Context) *Program {
	return &Program{Base: opmode.Base{Robot: rc}, logger: rc.Logger.Sublogger(Name)}
}

// Init looks up the hardware and builds the mechanisms.
func (p *Program) Init(ctx context.Context) error {
	rc := p.Robot

	drive, err := tank.NewDrive(ctx,
		[]motor.Motor{rc.Motor(LeftDrive1Name), rc.Motor(LeftDrive2Name)},
		[]motor.Motor{rc.Motor(RightDrive1Name), rc.Motor(RightDrive2Name)})
	p.drive = drive
	mode := motor.RunWithoutEncoder
	if rc.Config.Drive.UseEncoders {
		mode = motor.RunWithEncoder
	}
	err = multierr.Append(err, p.drive.SetRunMode(ctx, mode))

	driver := input.NewDebouncedButtons(rc.Driver)
	operator := input.NewDebouncedButtons(rc.Operator)

	p.collector = collector.NewReversible("collector",
		collector.MotorOutput(rc.Motor(CollectorMotorName)), driver.A, driver.B, p.logger)
	p.conveyor = collector.NewReversible("conveyor",
		collector.ConveyorOutput(rc.Servo(ConveyorServoName)), operator.DpadUp, operator.DpadDown, p.logger)
	p.shooter = shooter.New(rc.Motor(shooter.TopMotorName), rc.Motor(shooter.BottomMotorName),
		input.ButtonOf(rc.Operator, input.ButtonRT), rc.Config.Shooter.SpinUp(), rc.Clock, p.logger)
	if rc.Config.Shooter.GateConveyor {
		p.conveyor.SetForwardGate(p.shooter.Ready)
	}

	err = multierr.Combine(err, p.collector.Init(ctx), p.conveyor.Init(ctx), p.shooter.Init(ctx))

	o := opmode.NewOrchestrator(rc, nil)
	o.Machines = append(o.Machines, p.shooter.Machine())
	o.Machines = append(o.Machines, p.collector.Machines()...)
	o.Machines = append(o.Machines, p.conveyor.Machines()...)
	o.Drive = p.driveHook
	o.Interlocks = p.collectErrors
	o.Telemetry = p.addTelemetry
	p.Orchestrator = o

	rc.LogBatteryState(ctx, o.Voltage, "init")
	return err
}

func (p *Program) driveHook(ctx context.Context, heading float64) error {
	g := p.Robot.Driver
	x := control.ScaleMotorPower(input.AxisOf(g, input.AbsoluteX))
	y := -control.ScaleMotorPower(input.AxisOf(g, input.AbsoluteY))
	return p.drive.DrivePower(ctx, tank.Cartesian(x, y))
}

func (p *Program) collectErrors(ctx context.Context) error {
	return multierr.Combine(p.collector.TakeError(), p.conveyor.TakeError(), p.shooter.TakeError())
}

func (p *Program) addTelemetry(ctx context.Context, t telemetry.Telemetry) {
	powers := p.drive.LastPowers()
	telemetry.AddDataf(t, "drive", "left %.2f right %.2f", powers.Left, powers.Right)
	t.AddData("collector", p.collector.Direction().String())
	conveyor := p.conveyor.Direction().String()
	if p.conveyor.Requested() != p.conveyor.Direction() {
		conveyor += " (waiting for shooter)"
	}
	t.AddData("conveyor", conveyor)
	t.AddData("shooter", p.shooter.Machine().Current().Name())
	if elapsed := p.shooter.SpinUpElapsed(); elapsed > 0 {
		telemetry.AddDataf(t, "spin up", "%.2fs", elapsed.Seconds())
	}
}

// Stop stops every motor and the conveyor.
func (p *Program) Stop(ctx context.Context) {
	if p.drive == nil {
		return
	}
	err := multierr.Combine(p.drive.StopAllDriveMotors(ctx), p.collector.Init(ctx), p.conveyor.Init(ctx), p.shooter.Init(ctx))
	if err != nil {
		p.logger.Errorw("failed to stop", "error", err)
	}
}

// Collector returns the collector.
func (p *Program) Collector() *collector.Reversible { return p.collector }

// Conveyor returns the conveyor.
func (p *Program) Conveyor() *collector.Reversible { return p.conveyor }

// Shooter returns the shooter.
func (p *Program) Shooter() *shooter.Shooter { return p.shooter }
