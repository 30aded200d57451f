// Package tank implements a skid-steer drive base with one motor group per side.
package tank

import (
	"context"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/utils"
)

// Powers are the left and right side powers, each in [-1, 1].
type Powers struct {
	Left, Right float64
}

// Cartesian mixes forward y and turn x into side powers.
func Cartesian(x, y float64) Powers {
	return Powers{
		Left:  utils.ClipUnit(y + x),
		Right: utils.ClipUnit(y - x),
	}
}

// Drive is a tank base. Each side may have any number of motors, including none.
type Drive struct {
	left, right []motor.Motor
	last        Powers
}

var _ base.Stopper = &Drive{}

// NewDrive returns a drive over the two motor groups. The right side is reversed so that positive
// power drives both sides forward.
func NewDrive(ctx context.Context, left, right []motor.Motor) (*Drive, error) {
	d := &Drive{left: base.Present(left...), right: base.Present(right...)}
	err := multierr.Combine(
		base.SetDirectionAll(ctx, d.left, motor.Forward),
		base.SetDirectionAll(ctx, d.right, motor.Reverse),
	)
	return d, err
}

// DrivePower writes side powers.
func (d *Drive) DrivePower(ctx context.Context, p Powers) error {
	d.last = p
	return multierr.Combine(
		base.SetPowerAll(ctx, d.left, p.Left),
		base.SetPowerAll(ctx, d.right, p.Right),
	)
}

// LastPowers returns the most recently written side powers.
func (d *Drive) LastPowers() Powers {
	return d.last
}

// StopAllDriveMotors writes zero to both sides.
func (d *Drive) StopAllDriveMotors(ctx context.Context) error {
	return d.DrivePower(ctx, Powers{})
}

// Motors returns every motor of both sides.
func (d *Drive) Motors() []motor.Motor {
	return append(append([]motor.Motor{}, d.left...), d.right...)
}

// SetRunMode sets mode on every motor.
func (d *Drive) SetRunMode(ctx context.Context, mode motor.RunMode) error {
	return base.SetRunModeAll(ctx, d.Motors(), mode)
}
