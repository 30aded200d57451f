// Package holonomic implements the X-drive base, whose four wheels sit on the diagonals and
// drive in opposed pairs.
package holonomic

import (
	"context"
	"math"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/utils"
)

// DefaultAlignDisableTrigger is the right trigger value at or above which the 45 degree stick
// alignment is skipped.
const DefaultAlignDisableTrigger = 0.65

// xDriveAlignmentDeg rotates the stick so that stick forward drives between the wheel axes.
const xDriveAlignmentDeg = -45.0

// Sticks are the raw driver inputs for one tick, in gamepad convention.
type Sticks struct {
	LeftX, LeftY   float64
	RightX         float64
	RightTrigger   float64
	ShiftDeg       float64
	AlignThreshold float64
}

// SticksFrom reads the driver inputs from g.
func SticksFrom(g input.Gamepad) Sticks {
	return Sticks{
		LeftX:          input.AxisOf(g, input.AbsoluteX),
		LeftY:          input.AxisOf(g, input.AbsoluteY),
		RightX:         input.AxisOf(g, input.AbsoluteRX),
		RightTrigger:   input.AxisOf(g, input.AbsoluteRZ),
		ShiftDeg:       OrientationShiftDegrees(g),
		AlignThreshold: DefaultAlignDisableTrigger,
	}
}

// Powers are the wheel powers for the two axis pairs.
type Powers struct {
	X1, X2, Y1, Y2 float64
}

// OrientationShiftDegrees moves the robot's front to the side matching the held face button.
// The shift only lasts while the button is held.
//
//	     Y
//	X         B
//	     A
func OrientationShiftDegrees(g input.Gamepad) float64 {
	switch {
	case input.IsPressed(g, input.ButtonY):
		return 0
	case input.IsPressed(g, input.ButtonB):
		return -90
	case input.IsPressed(g, input.ButtonA):
		return -180
	case input.IsPressed(g, input.ButtonX):
		return -270
	default:
		return 0
	}
}

func (in Sticks) translation() (float64, float64) {
	x, y := -in.LeftX, -in.LeftY
	threshold := in.AlignThreshold
	if threshold == 0 {
		threshold = DefaultAlignDisableTrigger
	}
	if in.RightTrigger < threshold {
		x, y = utils.RotateDeg(x, y, xDriveAlignmentDeg+in.ShiftDeg)
	}
	return control.ScaleMotorPower(x), control.ScaleMotorPower(y)
}

// SpinPriority turns in place whenever the spin stick is off centre, ignoring translation for
// that tick, and otherwise translates without spinning.
func SpinPriority(in Sticks) Powers {
	spin := -in.RightX
	if math.Abs(spin) > 0 {
		s := control.ScaleMotorPower(spin)
		return Powers{X1: s, X2: s, Y1: s, Y2: s}
	}
	x, y := in.translation()
	return Powers{X1: x, X2: -x, Y1: y, Y2: -y}
}

// Simultaneous translates with the spin contribution held at zero, so the right stick has no
// effect.
func Simultaneous(in Sticks) Powers {
	const spin = 0.0
	x, y := in.translation()
	return Powers{
		X1: utils.ClipUnit(x + spin),
		X2: utils.ClipUnit(-x + spin),
		Y1: utils.ClipUnit(y + spin),
		Y2: utils.ClipUnit(-y + spin),
	}
}

// Drive is an X-drive base over four motors, any of which may be absent.
type Drive struct {
	x1, x2, y1, y2 motor.Motor
	last           Powers
}

var _ base.Stopper = &Drive{}

// NewDrive returns a drive over the two wheel pairs.
func NewDrive(x1, x2, y1, y2 motor.Motor) *Drive {
	return &Drive{x1: x1, x2: x2, y1: y1, y2: y2}
}

// SetPowers writes wheel powers, skipping absent motors.
func (d *Drive) SetPowers(ctx context.Context, p Powers) error {
	d.last = p
	return multierr.Combine(
		motor.SetPowerIfPresent(ctx, d.x1, p.X1),
		motor.SetPowerIfPresent(ctx, d.x2, p.X2),
		motor.SetPowerIfPresent(ctx, d.y1, p.Y1),
		motor.SetPowerIfPresent(ctx, d.y2, p.Y2),
	)
}

// LastPowers returns the most recently written wheel powers.
func (d *Drive) LastPowers() Powers {
	return d.last
}

// StopAllDriveMotors writes zero to every present motor.
func (d *Drive) StopAllDriveMotors(ctx context.Context) error {
	return d.SetPowers(ctx, Powers{})
}

// Motors returns the present motors.
func (d *Drive) Motors() []motor.Motor {
	return base.Present(d.x1, d.x2, d.y1, d.y2)
}

// SetRunMode sets mode on every present motor.
func (d *Drive) SetRunMode(ctx context.Context, mode motor.RunMode) error {
	return base.SetRunModeAll(ctx, d.Motors(), mode)
}
