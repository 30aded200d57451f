// Package relicrecovery is the driver-operated program for the mecanum robot with the glyph
// mechanism, lift and jewel arms.
//
// Driver: left stick translates, right stick X rotates, left stick click locks field
// orientation to the current heading and right stick click unlocks it. Dpad left and right
// snap-turn 90 degrees using the IMU; B or any rotation input cancels a snap turn.
//
// Operator: Y and A toggle the top and bottom grippers, B flips the carriage, X stops the
// flip, the left stick drives the lift, dpad down deploys both jewel arms and dpad up stows
// them.
package relicrecovery

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/base/mecanum"
	"github.com/fieldbot/teleop/components/board"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/sensor"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/mechanism/glyph"
	"github.com/fieldbot/teleop/mechanism/jewel"
	"github.com/fieldbot/teleop/opmode"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/statemachine"
	"github.com/fieldbot/teleop/telemetry"
)

// Name is the registered program name.
const Name = "relic-recovery"

// SnapTurnDegrees is the size of one snap turn.
const SnapTurnDegrees = 90

// Turn state names.
const (
	StateDriving  = "driving"
	StateSnapTurn = "snap-turn"
	StateTurnDone = "snap-turn-done"
)

var alliances = []string{jewel.RedAlliance, jewel.BlueAlliance}

// Devices lists the hardware the program looks up.
func Devices() []resource.Name {
	names := []resource.Name{resource.NewName(resource.KindIMU, robot.DefaultIMUName)}
	for _, name := range mecanum.MotorNames {
		names = append(names, motor.Named(name))
	}
	names = append(names,
		servo.Named(glyph.TopGripperServoName),
		servo.Named(glyph.BottomGripperServoName),
		servo.Named(glyph.RotateServoName),
		board.Named(glyph.InvertedLimitName),
		board.Named(glyph.UprightLimitName),
		board.Named(glyph.LiftBottomLimitName),
		board.Named(glyph.LiftTopLimitName),
		motor.Named(glyph.LiftMotorName),
	)
	for _, alliance := range alliances {
		names = append(names, servo.Named(jewel.ServoName(alliance)), sensor.NamedColorRange(jewel.ColorSensorName(alliance)))
	}
	return names
}

func init() {
	opmode.Register(Name, opmode.Registration{
		Constructor: func(rc *robot.Context) opmode.OpMode { return New(rc) },
		Description: "mecanum teleop with glyph mechanism, lift and jewel arms",
		Devices:     Devices(),
	})
}

// Program is the relic recovery teleop.
type Program struct {
	opmode.Base

	logger   logging.Logger
	drive    *mecanum.Drive
	driver   *input.DebouncedButtons
	operator *input.DebouncedButtons
	glyph    *glyph.Mechanism
	jewels   []*jewel.Arm
	heading  *control.HeadingController

	turnMachine *statemachine.Machine
	driving     *statemachine.FuncState
	snapTurn    *statemachine.FuncState
	turnDone    *statemachine.DoneState

	fieldOriented bool
	headingOffset float64
	current       float64
	turnTarget    float64
	turnRotation  *float64
}

// New returns the program. Hardware is looked up in Init.
func New(rc *robot.Context) *Program {
	return &Program{Base: opmode.Base{Robot: rc}, logger: rc.Logger.Sublogger(Name)}
}

// Init looks up the hardware and builds the mechanisms.
func (p *Program) Init(ctx context.Context) error {
	rc := p.Robot
	conf := rc.Config

	drive, err := mecanum.FromRobot(ctx, rc)
	p.drive = drive
	if conf.Drive.UseEncoders {
		err = multierr.Append(err, p.drive.SetRunMode(ctx, motor.RunWithEncoder))
	}
	if conf.Drive.UseBraking {
		err = multierr.Append(err, p.drive.SetZeroPowerBehavior(ctx, motor.Brake))
	}
	p.fieldOriented = conf.Drive.FieldOriented
	p.heading = control.NewHeadingController(conf.Turn.PCoeff, conf.Turn.ThresholdDeg, conf.Turn.PowerCutOff, p.logger)

	p.driver = input.NewDebouncedButtons(rc.Driver)
	p.operator = input.NewDebouncedButtons(rc.Operator)

	p.glyph = glyph.New(rc, glyph.OperatorControls(p.operator, rc.Operator))
	err = multierr.Append(err, p.glyph.Init(ctx))
	for _, alliance := range alliances {
		arm := jewel.NewArm(rc, alliance)
		err = multierr.Append(err, arm.Init(ctx))
		p.jewels = append(p.jewels, arm)
	}

	p.driving = statemachine.NewFuncState(StateDriving, func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		return self
	})
	p.snapTurn = statemachine.NewFuncState(StateSnapTurn, p.turn)
	p.turnDone = statemachine.NewDoneState(StateTurnDone, p.drive, p.logger)
	p.snapTurn.SetNext(p.turnDone)
	p.turnDone.SetNext(p.driving)
	p.turnMachine = statemachine.NewMachine("snap-turn", p.driving, p.logger)

	o := opmode.NewOrchestrator(rc, rc.IMU(robot.DefaultIMUName))
	o.Configure = p.configure
	o.Machines = append(o.Machines, p.glyph.Machines()...)
	for _, arm := range p.jewels {
		o.Machines = append(o.Machines, arm.Machine())
	}
	o.Machines = append(o.Machines, p.turnMachine)
	o.Drive = p.driveHook
	o.Interlocks = p.interlocks
	o.Telemetry = p.addTelemetry
	p.Orchestrator = o

	rc.LogBatteryState(ctx, o.Voltage, "init")
	return err
}

func (p *Program) configure(ctx context.Context, heading float64) error {
	p.current = heading

	if p.driver.LeftStickButton.Rise() {
		p.fieldOriented = true
		p.headingOffset = -heading
		p.logger.Debugw("field orientation locked", "heading", heading)
	} else if p.driver.RightStickButton.Rise() {
		p.fieldOriented = false
		p.logger.Debug("field orientation unlocked")
	}

	if p.operator.DpadDown.Rise() {
		for _, arm := range p.jewels {
			arm.RequestDeploy()
		}
	} else if p.operator.DpadUp.Rise() {
		for _, arm := range p.jewels {
			arm.RequestStow()
		}
	}

	switch p.turnMachine.Current() {
	case p.driving:
		relative := 0
		if p.driver.DpadLeft.Rise() {
			relative = SnapTurnDegrees
		} else if p.driver.DpadRight.Rise() {
			relative = -SnapTurnDegrees
		}
		if relative != 0 {
			p.turnTarget = control.WrapDegrees(heading + float64(relative))
			p.logger.Debugw("snap turn", "current", heading, "target", p.turnTarget)
			p.turnMachine.Jump(p.snapTurn)
		}
	case p.snapTurn:
		if p.driver.B.Rise() || input.AxisOf(p.Robot.Driver, input.AbsoluteRX) != 0 {
			p.logger.Debug("snap turn cancelled")
			p.turnRotation = nil
			p.turnMachine.Jump(p.driving)
		}
	case p.turnDone:
		if p.turnDone.Issued() {
			p.turnMachine.Jump(p.turnDone.Next())
		}
	}
	return nil
}

func (p *Program) turn(ctx context.Context, self *statemachine.FuncState) statemachine.State {
	cmd, onTarget := p.heading.Step(p.turnTarget, p.current)
	rotation := cmd.Rotation
	p.turnRotation = &rotation
	if onTarget {
		p.turnRotation = nil
		p.turnDone.Reset()
		return self.Next()
	}
	return self
}

// command returns this tick's drive command from the table-scaled sticks. A running snap
// turn replaces the whole command with the controller's pure rotation.
func (p *Program) command() base.DriveCommand {
	if p.turnRotation != nil {
		rotation := *p.turnRotation
		p.turnRotation = nil
		return base.DriveCommand{Rotation: rotation}
	}
	g := p.Robot.Driver
	return base.DriveCommand{
		X:                control.ScaleMotorPower(input.AxisOf(g, input.AbsoluteX)),
		Y:                -control.ScaleMotorPower(input.AxisOf(g, input.AbsoluteY)),
		Rotation:         control.ScaleMotorPower(input.AxisOf(g, input.AbsoluteRX)),
		FieldOriented:    p.fieldOriented,
		HeadingOffsetDeg: p.headingOffset,
	}
}

func (p *Program) driveHook(ctx context.Context, heading float64) error {
	if p.turnMachine.Current() == p.turnDone {
		return nil
	}
	_, err := p.drive.DriveCartesian(ctx, p.command(), heading)
	return err
}

func (p *Program) interlocks(ctx context.Context) error {
	err := multierr.Combine(p.glyph.EnforceInterlocks(ctx), p.glyph.TakeErrors())
	for _, arm := range p.jewels {
		err = multierr.Append(err, arm.TakeError())
	}
	return err
}

func (p *Program) addTelemetry(ctx context.Context, t telemetry.Telemetry) {
	p.glyph.AddTelemetry(ctx, t)
	for _, arm := range p.jewels {
		arm.AddTelemetry(t)
	}
	t.AddData("Heading", fmt.Sprintf("%.1f", p.current))
	t.AddData("field oriented", p.fieldOriented)
	if p.turnMachine.Current() == p.snapTurn {
		telemetry.AddDataf(t, "snap turn", "target %.1f err %.1f", p.turnTarget, p.heading.LastError())
	}
	powers := p.drive.LastPowers()
	telemetry.AddDataf(t, "drive", "lf %.2f rf %.2f lr %.2f rr %.2f",
		powers.LeftFront, powers.RightFront, powers.LeftRear, powers.RightRear)
}

// Stop stops the drive, the lift and the carriage.
func (p *Program) Stop(ctx context.Context) {
	var err error
	if p.drive != nil {
		err = p.drive.StopAllDriveMotors(ctx)
	}
	if p.glyph != nil {
		err = multierr.Combine(err, p.glyph.Lift.Stop(ctx), p.glyph.StopRotating(ctx))
	}
	if err != nil {
		p.logger.Errorw("failed to stop", "error", err)
	}
}

// FieldOriented returns whether field orientation is on and its heading offset.
func (p *Program) FieldOriented() (bool, float64) {
	return p.fieldOriented, p.headingOffset
}

// TurnState returns the snap turn state's name.
func (p *Program) TurnState() string {
	return p.turnMachine.Current().Name()
}

// Glyph returns the glyph mechanism.
func (p *Program) Glyph() *glyph.Mechanism {
	return p.glyph
}

// Jewels returns the jewel arms, red alliance first.
func (p *Program) Jewels() []*jewel.Arm {
	return p.jewels
}
