// Package autoturn is a tuning program for the IMU turn on the mecanum robot. While idle the
// driver edits the turn parameters; A runs a turn and B aborts it.
package autoturn

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/base/mecanum"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/opmode"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/statemachine"
	"github.com/fieldbot/teleop/telemetry"
)

// Name is the registered program name.
const Name = "mecanum-auto-turn"

// Live tuning steps.
const (
	KpStep          = 0.01
	DegreesStep     = 5
	PowerCutOffStep = 0.005
)

// State names.
const (
	StateIdle    = "configure"
	StateTurning = "turning"
	StateDone    = "turn-done"
)

func init() {
	devices := []resource.Name{resource.NewName(resource.KindIMU, robot.DefaultIMUName)}
	for _, name := range mecanum.MotorNames {
		devices = append(devices, motor.Named(name))
	}
	opmode.Register(Name, opmode.Registration{
		Constructor: func(rc *robot.Context) opmode.OpMode { return New(rc) },
		Description: "live-tuned IMU turn on the mecanum base",
		Devices:     devices,
	})
}

// Program is the auto-turn program.
type Program struct {
	opmode.Base

	logger  logging.Logger
	drive   *mecanum.Drive
	buttons *input.DebouncedButtons
	heading *control.HeadingController
	machine *statemachine.Machine

	idle    *statemachine.FuncState
	turning *statemachine.FuncState
	done    *statemachine.DoneState

	useEncoders   bool
	useBraking    bool
	degreesToTurn int

	current float64
	latched bool
	target  float64
	pending *base.DriveCommand
	errs    error
}

// New returns the program. Hardware is looked up in Init.
func New(rc *robot.Context) *Program {
	return &Program{Base: opmode.Base{Robot: rc}, logger: rc.Logger.Sublogger(Name)}
}

// Init looks up the drive and IMU and builds the turn state machine.
func (p *Program) Init(ctx context.Context) error {
	rc := p.Robot
	drive, err := mecanum.FromRobot(ctx, rc)
	p.drive = drive

	conf := rc.Config
	p.useEncoders = conf.Drive.UseEncoders
	p.useBraking = conf.Drive.UseBraking
	p.degreesToTurn = conf.Turn.DegreesToTurn
	p.heading = control.NewHeadingController(conf.Turn.PCoeff, conf.Turn.ThresholdDeg, conf.Turn.PowerCutOff, p.logger)
	p.buttons = input.NewDebouncedButtons(rc.Driver)

	p.idle = statemachine.NewFuncState(StateIdle, func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		if p.buttons.A.Rise() {
			p.turning.Reset()
			return p.turning
		}
		self.LiveConfigure(p.buttons)
		return self
	})
	p.idle.LiveConfigureFunc = p.liveConfigure
	p.turning = statemachine.NewFuncState(StateTurning, p.turn)
	p.turning.ResetFunc = func() {
		p.latched = false
	}
	p.done = statemachine.NewDoneState(StateDone, p.drive, p.logger)
	p.turning.SetNext(p.done)
	p.done.SetNext(p.idle)
	p.machine = statemachine.NewMachine("auto-turn", p.idle, p.logger)

	o := opmode.NewOrchestrator(rc, rc.IMU(robot.DefaultIMUName))
	o.Configure = p.configure
	o.Machines = []*statemachine.Machine{p.machine}
	o.Drive = p.driveHook
	o.Telemetry = p.addTelemetry
	p.Orchestrator = o

	rc.LogBatteryState(ctx, rc.VoltageSensor(), "init")
	return err
}

// configure handles the stop button, which wins over everything else, and returns a finished
// turn to idle.
func (p *Program) configure(ctx context.Context, heading float64) error {
	p.current = heading
	err := p.errs
	p.errs = nil
	if p.buttons.B.Rise() {
		p.logger.Debug("turn aborted")
		p.pending = nil
		p.machine.Jump(p.idle)
		return multierr.Append(err, p.drive.StopAllDriveMotors(ctx))
	}
	if p.machine.Current() == p.done && p.done.Issued() {
		p.machine.Jump(p.done.Next())
	}
	return err
}

func (p *Program) liveConfigure(buttons *input.DebouncedButtons) {
	if buttons.Y.Rise() {
		p.useBraking = !p.useBraking
	}
	if buttons.X.Rise() {
		p.useEncoders = !p.useEncoders
	}
	if buttons.DpadUp.Rise() {
		p.heading.Kp += KpStep
	}
	if buttons.DpadDown.Rise() {
		p.heading.Kp -= KpStep
	}
	if buttons.DpadRight.Rise() {
		p.degreesToTurn += DegreesStep
	}
	if buttons.DpadLeft.Rise() {
		p.degreesToTurn -= DegreesStep
	}
	if buttons.RightBumper.Rise() {
		p.heading.PowerCutOff += PowerCutOffStep
	}
	if buttons.LeftBumper.Rise() {
		p.heading.PowerCutOff -= PowerCutOffStep
	}
}

// turn latches the target on its first tick, then steers toward it until on target.
func (p *Program) turn(ctx context.Context, self *statemachine.FuncState) statemachine.State {
	if !p.latched {
		// counter-clockwise turns are positive
		p.target = p.current + float64(p.degreesToTurn)
		p.errs = multierr.Append(p.errs, p.configureMotors(ctx))
		p.logger.Debugw("turn initialized", "current", p.current, "relative", p.degreesToTurn, "target", p.target)
		p.latched = true
	}
	cmd, onTarget := p.heading.Step(p.target, p.current)
	p.pending = &cmd
	if onTarget {
		p.logger.Debug("turn heading reached, stopping drive")
		p.done.Reset()
		return self.Next()
	}
	return self
}

func (p *Program) configureMotors(ctx context.Context) error {
	mode := motor.RunWithoutEncoder
	if p.useEncoders {
		mode = motor.RunWithEncoder
	}
	behavior := motor.Coast
	if p.useBraking {
		behavior = motor.Brake
	}
	return multierr.Combine(p.drive.SetRunMode(ctx, mode), p.drive.SetZeroPowerBehavior(ctx, behavior))
}

func (p *Program) driveHook(ctx context.Context, heading float64) error {
	if p.pending == nil {
		return nil
	}
	cmd := *p.pending
	p.pending = nil
	_, err := p.drive.DriveCartesian(ctx, cmd, heading)
	return err
}

func (p *Program) addTelemetry(ctx context.Context, t telemetry.Telemetry) {
	if p.machine.Current() == p.turning {
		telemetry.AddDataf(t, "turn", "target %.1f err %.1f steer %.3f",
			p.target, p.heading.LastError(), p.heading.LastSteer())
	} else {
		t.AddData("brake / enc", fmt.Sprintf("%t / %t", p.useBraking, p.useEncoders))
		t.AddData("P_COEFF", p.heading.Kp)
		t.AddData("DEGREES_TO_TURN", p.degreesToTurn)
		t.AddData("POWER_CUT_OFF", p.heading.PowerCutOff)
	}
	t.AddData("Heading", p.current)
	t.AddData("state", p.machine.Current().Name())
}

// Stop stops the drive.
func (p *Program) Stop(ctx context.Context) {
	if p.drive == nil {
		return
	}
	if err := p.drive.StopAllDriveMotors(ctx); err != nil {
		p.logger.Errorw("failed to stop drive motors", "error", err)
	}
}

// State returns the current state's name.
func (p *Program) State() string {
	return p.machine.Current().Name()
}

// Target returns the latched target heading.
func (p *Program) Target() float64 {
	return p.target
}

// Parameters returns the live-tuned turn parameters.
func (p *Program) Parameters() (kp float64, degrees int, powerCutOff float64, useEncoders, useBraking bool) {
	return p.heading.Kp, p.degreesToTurn, p.heading.PowerCutOff, p.useEncoders, p.useBraking
}
