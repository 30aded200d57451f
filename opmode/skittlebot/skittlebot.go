// Package skittlebot is the driver-operated program for the X-drive robot with the climbing
// winch and climber dump.
package skittlebot

import (
	"context"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base/holonomic"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/sensor"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/opmode"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/telemetry"
)

// Name is the registered program name.
const Name = "skittle-bot"

// Device names.
const (
	X1DriveName          = "x1Drive"
	X2DriveName          = "x2Drive"
	Y1DriveName          = "y1Drive"
	Y2DriveName          = "y2Drive"
	WinchMotorName       = "winchDrive"
	WinchAimServoName    = "winchAimServo"
	ClimberDumpServoName = "climberDumpServo"
	ColorSensorName      = "colorSensor"
)

// ReconTrigger is the operator left trigger value above which the colour sensor is read.
const ReconTrigger = 0.5

// ColorKey is the telemetry key of the last colour reading.
const ColorKey = "color"

func init() {
	opmode.Register(Name, opmode.Registration{
		Constructor: func(rc *robot.Context) opmode.OpMode { return New(rc) },
		Description: "X-drive teleop with winch, winch aim and climber dump",
		Devices: []resource.Name{
			motor.Named(X1DriveName),
			motor.Named(X2DriveName),
			motor.Named(Y1DriveName),
			motor.Named(Y2DriveName),
			motor.Named(WinchMotorName),
			servo.Named(WinchAimServoName),
			servo.Named(ClimberDumpServoName),
			sensor.NamedColorRange(ColorSensorName),
		},
	})
}

// Program is the skittle bot teleop.
type Program struct {
	opmode.Base

	logger       logging.Logger
	drive        *holonomic.Drive
	simultaneous bool
	alignTrigger float64

	winch       motor.Motor
	winchAim    servo.Servo
	climberDump servo.Servo
	color       sensor.ColorRangeSensor
	lastReading *sensor.ColorReading
}

// New returns the program. Hardware is looked up in Init.
func New(rc *robot.Context) *Program {
	return &Program{Base: opmode.Base{Robot: rc}, logger: rc.Logger.Sublogger(Name)}
}

// Init looks up the hardware, sets the drive run mode and stops both CR servos.
func (p *Program) Init(ctx context.Context) error {
	rc := p.Robot
	p.drive = holonomic.NewDrive(rc.Motor(X1DriveName), rc.Motor(X2DriveName), rc.Motor(Y1DriveName), rc.Motor(Y2DriveName))
	p.simultaneous = rc.Config.Drive.SimultaneousSteer
	p.alignTrigger = rc.Config.Drive.XDriveAlignDisableTrigger
	p.winch = rc.Motor(WinchMotorName)
	p.winchAim = rc.Servo(WinchAimServoName)
	p.climberDump = rc.Servo(ClimberDumpServoName)
	p.color = rc.ColorRangeSensor(ColorSensorName)

	mode := motor.RunWithoutEncoder
	if rc.Config.Drive.UseEncoders {
		mode = motor.RunWithEncoder
	}
	err := multierr.Combine(
		p.drive.SetRunMode(ctx, mode),
		servo.SetPositionIfPresent(ctx, p.climberDump, servo.ContinuousStop),
		servo.SetPositionIfPresent(ctx, p.winchAim, servo.ContinuousStop),
	)

	o := opmode.NewOrchestrator(rc, nil)
	o.Drive = p.driveHook
	o.Interlocks = p.operate
	o.Telemetry = p.addTelemetry
	p.Orchestrator = o

	rc.LogBatteryState(ctx, o.Voltage, "init")
	return err
}

func (p *Program) driveHook(ctx context.Context, heading float64) error {
	sticks := holonomic.SticksFrom(p.Robot.Driver)
	sticks.AlignThreshold = p.alignTrigger
	if p.simultaneous {
		return p.drive.SetPowers(ctx, holonomic.Simultaneous(sticks))
	}
	return p.drive.SetPowers(ctx, holonomic.SpinPriority(sticks))
}

// operate runs the operator's winch, aim and dump controls and the colour recon.
func (p *Program) operate(ctx context.Context) error {
	g := p.Robot.Operator

	dump := servo.ContinuousStop
	if input.IsPressed(g, input.ButtonDpadDown) {
		dump = servo.ContinuousFullForward
	} else if input.IsPressed(g, input.ButtonDpadUp) {
		dump = servo.ContinuousFullReverse
	}

	aim := servo.ContinuousStop
	switch v := input.AxisOf(g, input.AbsoluteRY); {
	case v > 0:
		aim = servo.ContinuousFullForward
	case v < 0:
		aim = servo.ContinuousFullReverse
	}

	err := multierr.Combine(
		servo.SetPositionIfPresent(ctx, p.climberDump, dump),
		motor.SetPowerIfPresent(ctx, p.winch, -control.ScaleMotorPower(input.AxisOf(g, input.AbsoluteY))),
		servo.SetPositionIfPresent(ctx, p.winchAim, aim),
	)

	if input.AxisOf(g, input.AbsoluteZ) > ReconTrigger || input.IsPressed(g, input.ButtonLT) {
		err = multierr.Append(err, p.recon(ctx))
	}
	return err
}

func (p *Program) recon(ctx context.Context) error {
	if p.color == nil {
		return nil
	}
	reading, err := p.color.Read(ctx)
	if err != nil {
		return err
	}
	p.logger.Debugw("color sensor reading", "reading", reading.String())
	p.lastReading = &reading
	return nil
}

func (p *Program) addTelemetry(ctx context.Context, t telemetry.Telemetry) {
	powers := p.drive.LastPowers()
	telemetry.AddDataf(t, "drive", "x1 %.2f x2 %.2f y1 %.2f y2 %.2f", powers.X1, powers.X2, powers.Y1, powers.Y2)
	if p.simultaneous {
		t.AddData("steer", "simultaneous")
	} else {
		t.AddData("steer", "spin priority")
	}
	if p.lastReading != nil {
		t.AddData(ColorKey, p.lastReading.String())
	}
}

// Stop stops the drive and winch and parks both CR servos.
func (p *Program) Stop(ctx context.Context) {
	if p.drive == nil {
		return
	}
	err := multierr.Combine(
		p.drive.StopAllDriveMotors(ctx),
		motor.SetPowerIfPresent(ctx, p.winch, 0),
		servo.SetPositionIfPresent(ctx, p.climberDump, servo.ContinuousStop),
		servo.SetPositionIfPresent(ctx, p.winchAim, servo.ContinuousStop),
	)
	if err != nil {
		p.logger.Errorw("failed to stop", "error", err)
	}
}

// LastColorReading returns the most recent recon reading.
func (p *Program) LastColorReading() (sensor.ColorReading, bool) {
	if p.lastReading == nil {
		return sensor.ColorReading{}, false
	}
	return *p.lastReading, true
}

// DrivePowers returns the last wheel powers.
func (p *Program) DrivePowers() holonomic.Powers {
	return p.drive.LastPowers()
}
