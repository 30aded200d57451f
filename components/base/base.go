// Package base defines the drive command shared by the drive bases and helpers over motor groups.
package base

import (
	"context"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/motor"
)

// DriveCommand is a Cartesian drive request. X is strafe right, Y is forward and Rotation is
// clockwise spin, each in [-1, 1] before normalisation.
type DriveCommand struct {
	X, Y, Rotation float64
	// FieldOriented rotates (X, Y) by the negated robot heading so that forward is fixed on the field.
	FieldOriented    bool
	HeadingOffsetDeg float64
}

// Stopper stops every drive motor.
type Stopper interface {
	StopAllDriveMotors(ctx context.Context) error
}

// Present returns the non-nil motors of ms.
func Present(ms ...motor.Motor) []motor.Motor {
	present := make([]motor.Motor, 0, len(ms))
	for _, m := range ms {
		if m != nil {
			present = append(present, m)
		}
	}
	return present
}

// SetPowerAll writes the same clamped power to every motor, combining errors.
func SetPowerAll(ctx context.Context, ms []motor.Motor, powerPct float64) error {
	var err error
	for _, m := range ms {
		err = multierr.Combine(err, motor.SetPowerIfPresent(ctx, m, powerPct))
	}
	return err
}

// StopAll writes zero power to every motor.
func StopAll(ctx context.Context, ms []motor.Motor) error {
	return SetPowerAll(ctx, ms, 0)
}

// SetRunModeAll sets mode on every present motor.
func SetRunModeAll(ctx context.Context, ms []motor.Motor, mode motor.RunMode) error {
	var err error
	for _, m := range Present(ms...) {
		err = multierr.Combine(err, m.SetRunMode(ctx, mode))
	}
	return err
}

// SetZeroPowerBehaviorAll sets behavior on every present motor.
func SetZeroPowerBehaviorAll(ctx context.Context, ms []motor.Motor, behavior motor.ZeroPowerBehavior) error {
	var err error
	for _, m := range Present(ms...) {
		err = multierr.Combine(err, m.SetZeroPowerBehavior(ctx, behavior))
	}
	return err
}

// SetDirectionAll sets dir on every present motor.
func SetDirectionAll(ctx context.Context, ms []motor.Motor, dir motor.Direction) error {
	var err error
	for _, m := range Present(ms...) {
		err = multierr.Combine(err, m.SetDirection(ctx, dir))
	}
	return err
}
