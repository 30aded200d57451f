// Package glyph controls the glyph mechanism: two grippers on a rotating carriage, carried by
// a lift.
package glyph

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/board"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/statemachine"
	"github.com/fieldbot/teleop/telemetry"
)

// Device names.
const (
	TopGripperServoName    = "naturalTopGlyphServo"
	BottomGripperServoName = "naturalBottomGlyphServo"
	RotateServoName        = "glyphRotateServo"
	InvertedLimitName      = "invertedGlyphLimit"
	UprightLimitName       = "uprightGlyphLimit"
	LiftBottomLimitName    = "glyphLiftBottomLimit"
	LiftTopLimitName       = "glyphLiftTopLimit"
	LiftMotorName          = "liftMotor"
)

// Controls are the operator inputs that drive the mechanism.
type Controls struct {
	ToggleTop    *input.DebouncedButton
	ToggleBottom *input.DebouncedButton
	Flip         *input.DebouncedButton
	StopRotating *input.DebouncedButton
	Lift         input.RangeInput
}

// OperatorControls returns the standard operator mapping: Y top gripper, A bottom gripper,
// B flip, X stop rotating and the left stick for the lift.
func OperatorControls(operator *input.DebouncedButtons, g input.Gamepad) Controls {
	return Controls{
		ToggleTop:    operator.Y,
		ToggleBottom: operator.A,
		Flip:         operator.B,
		StopRotating: operator.X,
		Lift:         input.NewRangeInput(g, input.AbsoluteY),
	}
}

// A Mechanism is the glyph mechanism with its controllers.
type Mechanism struct {
	Top    *Gripper
	Bottom *Gripper
	Lift   *Lift

	rotate        servo.Servo
	invertedLimit board.DigitalInput
	uprightLimit  board.DigitalInput

	controls Controls
	throttle control.ThrottleScaler
	logger   logging.Logger

	topToggle    *statemachine.ToggleState
	bottomToggle *statemachine.ToggleState
	flipToggle   *statemachine.ToggleState
	machines     []*statemachine.Machine

	rotating bool
	errs     error
}

// New looks up the mechanism's devices and builds its controllers. Missing devices are
// recorded as warnings and the mechanism runs without them.
func New(rc *robot.Context, controls Controls) *Mechanism {
	m := &Mechanism{
		Top:           NewGripper(rc.Servo(TopGripperServoName), TopOpenPosition, TopClosedPosition),
		Bottom:        NewGripper(rc.Servo(BottomGripperServoName), BottomOpenPosition, BottomClosedPosition),
		rotate:        rc.Servo(RotateServoName),
		invertedLimit: rc.DigitalInput(InvertedLimitName),
		uprightLimit:  rc.DigitalInput(UprightLimitName),
		controls:      controls,
		throttle:      rc.Config.Throttle,
		logger:        rc.Logger.Sublogger("glyph"),
	}
	m.Lift = NewLift(rc.Motor(LiftMotorName), rc.DigitalInput(LiftBottomLimitName), rc.DigitalInput(LiftTopLimitName))

	m.topToggle = statemachine.NewToggleState("gripper-top", controls.ToggleTop,
		m.record(m.Top.Close), m.record(m.Top.Open))
	m.bottomToggle = statemachine.NewToggleState("gripper-bottom", controls.ToggleBottom,
		m.record(m.Bottom.Close), m.record(m.Bottom.Open))
	m.flipToggle = statemachine.NewToggleState("flip", controls.Flip,
		func(ctx context.Context) { m.requestFlip(ctx, true) },
		func(ctx context.Context) { m.requestFlip(ctx, false) })
	flipState := statemachine.NewFuncState("flip-control", func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		m.flipToggle.Tick(ctx)
		if m.controls.StopRotating != nil && m.controls.StopRotating.Rise() {
			m.logger.Debug("stopping rotation requested")
			m.errs = multierr.Append(m.errs, m.StopRotating(ctx))
		}
		return self
	})
	liftState := statemachine.NewFuncState("lift", func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		m.errs = multierr.Append(m.errs, m.driveLift(ctx))
		return self
	})

	m.machines = []*statemachine.Machine{
		statemachine.NewMachine("gripper-top", m.topToggle, m.logger),
		statemachine.NewMachine("gripper-bottom", m.bottomToggle, m.logger),
		statemachine.NewMachine("flip", flipState, m.logger),
		statemachine.NewMachine("lift", liftState, m.logger),
	}
	return m
}

func (m *Mechanism) record(f func(ctx context.Context) error) func(ctx context.Context) {
	return func(ctx context.Context) {
		m.errs = multierr.Append(m.errs, f(ctx))
	}
}

// Init opens both grippers and stops the carriage and lift.
func (m *Mechanism) Init(ctx context.Context) error {
	return multierr.Combine(
		m.Top.Open(ctx),
		m.Bottom.Open(ctx),
		m.StopRotating(ctx),
		m.Lift.Stop(ctx),
	)
}

// Machines returns the mechanism's state machines in tick order.
func (m *Mechanism) Machines() []*statemachine.Machine {
	return m.machines
}

// TakeErrors returns and clears the device errors raised by hooks since the last call.
func (m *Mechanism) TakeErrors() error {
	err := m.errs
	m.errs = nil
	return err
}

// IsInverted returns whether the carriage was last flipped toward inverted.
func (m *Mechanism) IsInverted() bool {
	return m.flipToggle.IsOn()
}

// IsRotating returns whether the carriage is being driven.
func (m *Mechanism) IsRotating() bool {
	return m.rotating
}

// requestFlip closes both grippers so nothing drops, then rotates.
func (m *Mechanism) requestFlip(ctx context.Context, inverted bool) {
	m.topToggle.Set(ctx, true)
	m.bottomToggle.Set(ctx, true)
	m.logger.Debugw("flip requested", "inverted", inverted)
	m.errs = multierr.Append(m.errs, m.Flip(ctx, inverted))
}

// Flip rotates the carriage toward inverted or upright.
func (m *Mechanism) Flip(ctx context.Context, inverted bool) error {
	pos := servo.ContinuousFullReverse
	if inverted {
		pos = servo.ContinuousFullForward
	}
	m.rotating = true
	return servo.SetPositionIfPresent(ctx, m.rotate, pos)
}

// StopRotating stops the carriage.
func (m *Mechanism) StopRotating(ctx context.Context) error {
	m.rotating = false
	return servo.SetPositionIfPresent(ctx, m.rotate, servo.ContinuousStop)
}

// IsInvertedLimitReached returns whether the inverted end-of-travel switch is asserted. An
// unreadable switch reads as asserted.
func (m *Mechanism) IsInvertedLimitReached(ctx context.Context) (bool, error) {
	return limitReached(ctx, m.invertedLimit)
}

// IsUprightLimitReached returns whether the upright end-of-travel switch is asserted. An
// unreadable switch reads as asserted.
func (m *Mechanism) IsUprightLimitReached(ctx context.Context) (bool, error) {
	return limitReached(ctx, m.uprightLimit)
}

func limitReached(ctx context.Context, limit board.DigitalInput) (bool, error) {
	asserted, err := board.IsAssertedIfPresent(ctx, limit)
	if err != nil {
		return true, err
	}
	return asserted, nil
}

func (m *Mechanism) driveLift(ctx context.Context) error {
	throttle := m.throttle.Scale(m.controls.Lift.Position())
	switch {
	case throttle < 0:
		return m.Lift.MoveUp(ctx, throttle)
	case throttle > 0:
		return m.Lift.MoveDown(ctx, throttle)
	default:
		return m.Lift.Stop(ctx)
	}
}

// EnforceInterlocks stops the carriage at end of travel and stops the lift when it is driving
// into an asserted limit. A flip toward inverted ends on the upright switch and a flip back
// ends on the inverted switch.
func (m *Mechanism) EnforceInterlocks(ctx context.Context) error {
	var err error
	if m.rotating {
		inverted := m.IsInverted()
		var reached bool
		if inverted {
			reached, err = m.IsUprightLimitReached(ctx)
		} else {
			reached, err = m.IsInvertedLimitReached(ctx)
		}
		if reached {
			m.logger.Debugw("end of travel reached", "inverted", inverted, "error", err)
			err = multierr.Append(err, m.StopRotating(ctx))
		}
	}
	return multierr.Combine(err, m.Lift.EnforceLimits(ctx))
}

// AddTelemetry reports the gripper, carriage and lift state.
func (m *Mechanism) AddTelemetry(ctx context.Context, t telemetry.Telemetry) {
	t.AddData("gl", fmt.Sprintf("top: %t, bot: %t", m.Top.IsClosed(), m.Bottom.IsClosed()))
	t.AddData("flip", fmt.Sprintf("inverted: %t, rotating: %t", m.IsInverted(), m.rotating))
	t.AddData("lift", fmt.Sprintf("%.2f", m.Lift.Power()))
	t.AddData("lift limits", fmt.Sprintf("top: %t, bot: %t", m.Lift.AtTop(ctx), m.Lift.AtBottom(ctx)))
}
