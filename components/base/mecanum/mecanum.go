// Package mecanum implements the four-wheel mecanum drive base.
package mecanum

import (
	"context"
	"math"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/utils"
)

// Powers are the four wheel powers, each in [-1, 1].
type Powers struct {
	LeftFront, RightFront, LeftRear, RightRear float64
}

func (p Powers) slice() []float64 {
	return []float64{p.LeftFront, p.RightFront, p.LeftRear, p.RightRear}
}

// Max returns the largest wheel power magnitude.
func (p Powers) Max() float64 {
	return floats.Norm(p.slice(), math.Inf(1))
}

// Cartesian mixes cmd into wheel powers. currentHeadingDeg is only used when cmd is field oriented.
// When any wheel would exceed full power all four are scaled down together, preserving direction.
func Cartesian(cmd base.DriveCommand, currentHeadingDeg float64) Powers {
	x, y, rotation := cmd.X, cmd.Y, cmd.Rotation
	if cmd.FieldOriented {
		x, y = utils.RotateDeg(x, y, -(currentHeadingDeg + cmd.HeadingOffsetDeg))
	}

	wheels := []float64{
		y + x + rotation,
		y - x - rotation,
		y - x + rotation,
		y + x - rotation,
	}
	if m := floats.Norm(wheels, math.Inf(1)); m > 1 {
		floats.Scale(1/m, wheels)
	}
	for i, w := range wheels {
		wheels[i] = utils.ClipUnit(w)
	}
	return Powers{LeftFront: wheels[0], RightFront: wheels[1], LeftRear: wheels[2], RightRear: wheels[3]}
}

// Drive is a mecanum base over four motors, any of which may be absent.
type Drive struct {
	leftFront, rightFront, leftRear, rightRear motor.Motor
	logger                                     logging.Logger
	last                                       Powers
}

var _ base.Stopper = &Drive{}

// NewDrive returns a drive over the given motors. The left pair is reversed so that positive
// power drives every wheel forward.
func NewDrive(ctx context.Context, leftFront, rightFront, leftRear, rightRear motor.Motor, logger logging.Logger) (*Drive, error) {
	d := &Drive{
		leftFront:  leftFront,
		rightFront: rightFront,
		leftRear:   leftRear,
		rightRear:  rightRear,
		logger:     logger,
	}
	err := multierr.Combine(
		base.SetDirectionAll(ctx, []motor.Motor{leftFront, leftRear}, motor.Reverse),
		base.SetDirectionAll(ctx, []motor.Motor{rightFront, rightRear}, motor.Forward),
	)
	return d, err
}

// DriveCartesian mixes cmd and writes the result.
func (d *Drive) DriveCartesian(ctx context.Context, cmd base.DriveCommand, currentHeadingDeg float64) (Powers, error) {
	powers := Cartesian(cmd, currentHeadingDeg)
	return powers, d.SetPowers(ctx, powers)
}

// SetPowers writes wheel powers, skipping absent motors.
func (d *Drive) SetPowers(ctx context.Context, p Powers) error {
	d.last = p
	return multierr.Combine(
		motor.SetPowerIfPresent(ctx, d.leftFront, p.LeftFront),
		motor.SetPowerIfPresent(ctx, d.rightFront, p.RightFront),
		motor.SetPowerIfPresent(ctx, d.leftRear, p.LeftRear),
		motor.SetPowerIfPresent(ctx, d.rightRear, p.RightRear),
	)
}

// LastPowers returns the most recently written wheel powers.
func (d *Drive) LastPowers() Powers {
	return d.last
}

// StopAllDriveMotors writes zero to every present motor.
func (d *Drive) StopAllDriveMotors(ctx context.Context) error {
	if d.logger != nil {
		d.logger.Debug("stopping all drive motors")
	}
	return d.SetPowers(ctx, Powers{})
}

// Motors returns the present motors.
func (d *Drive) Motors() []motor.Motor {
	return base.Present(d.leftFront, d.rightFront, d.leftRear, d.rightRear)
}

// SetRunMode sets mode on every present motor.
func (d *Drive) SetRunMode(ctx context.Context, mode motor.RunMode) error {
	return base.SetRunModeAll(ctx, d.Motors(), mode)
}

// SetZeroPowerBehavior sets behavior on every present motor.
func (d *Drive) SetZeroPowerBehavior(ctx context.Context, behavior motor.ZeroPowerBehavior) error {
	return base.SetZeroPowerBehaviorAll(ctx, d.Motors(), behavior)
}
