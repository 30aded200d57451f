// Package motor defines the DC motor interface consumed from the hardware layer.
package motor

import (
	"context"
	"math"

	"github.com/fieldbot/teleop/resource"
)

// RunMode selects whether the motor controller closes a velocity loop on the encoder.
type RunMode int

// Run modes.
const (
	RunWithoutEncoder RunMode = iota
	RunWithEncoder
)

func (m RunMode) String() string {
	if m == RunWithEncoder {
		return "RUN_WITH_ENCODER"
	}
	return "RUN_WITHOUT_ENCODER"
}

// ZeroPowerBehavior is what the motor does when commanded to zero power.
type ZeroPowerBehavior int

// Zero power behaviors.
const (
	Coast ZeroPowerBehavior = iota
	Brake
)

func (b ZeroPowerBehavior) String() string {
	if b == Brake {
		return "BRAKE"
	}
	return "COAST"
}

// Direction is the logical direction of positive power.
type Direction int

// Directions.
const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "REVERSE"
	}
	return "FORWARD"
}

// A Motor represents a DC motor on a motor controller.
//
// SetPower example:
//
//	leftFront, err := motor.FromHardwareMap(hw, "leftFrontDriveMotor")
//	// Set the motor power to 40% forwards.
//	leftFront.SetPower(ctx, 0.4)
type Motor interface {
	// SetPower sets the percentage of power the motor should employ between -1 and 1.
	// Negative power corresponds to a backward direction of rotation.
	SetPower(ctx context.Context, powerPct float64) error

	// SetRunMode selects encoder or open-loop control.
	SetRunMode(ctx context.Context, mode RunMode) error

	// SetZeroPowerBehavior selects brake or coast at zero power.
	SetZeroPowerBehavior(ctx context.Context, behavior ZeroPowerBehavior) error

	// SetDirection flips the sign convention of SetPower.
	SetDirection(ctx context.Context, dir Direction) error
}

// Named is a helper for getting the named motor's typed name.
func Named(name string) resource.Name {
	return resource.NewName(resource.KindMotor, name)
}

// FromHardwareMap is a helper for getting the named motor from a hardware map.
func FromHardwareMap(hw resource.HardwareMap, name string) (Motor, error) {
	return resource.Lookup[Motor](hw, resource.KindMotor, name)
}

// GetSign returns the sign of the float as a helper for getting
// the intended direction of travel of a motor.
func GetSign(x float64) float64 {
	if x == 0 {
		return 0
	}
	if math.Signbit(x) {
		return -1.0
	}
	return 1.0
}

// ClampPower clamps a percentage power to 1.0 or -1.0.
func ClampPower(pwr float64) float64 {
	pwr = math.Min(pwr, 1.0)
	pwr = math.Max(pwr, -1.0)
	return pwr
}

// SetPowerIfPresent clamps and writes power to m, treating a nil motor as a no-op so that
// mechanisms degrade when their motor was absent at init.
func SetPowerIfPresent(ctx context.Context, m Motor, powerPct float64) error {
	if m == nil {
		return nil
	}
	return m.SetPower(ctx, ClampPower(powerPct))
}
