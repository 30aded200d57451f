// Package inject provides device implementations whose methods can be swapped out by tests.
package inject

import (
	"context"

	"github.com/fieldbot/teleop/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	SetPowerFunc             func(ctx context.Context, powerPct float64) error
	SetRunModeFunc           func(ctx context.Context, mode motor.RunMode) error
	SetZeroPowerBehaviorFunc func(ctx context.Context, behavior motor.ZeroPowerBehavior) error
	SetDirectionFunc         func(ctx context.Context, dir motor.Direction) error
}

// SetPower calls the injected SetPower or the real version.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	if m.SetPowerFunc == nil {
		return m.Motor.SetPower(ctx, powerPct)
	}
	return m.SetPowerFunc(ctx, powerPct)
}

// SetRunMode calls the injected SetRunMode or the real version.
func (m *Motor) SetRunMode(ctx context.Context, mode motor.RunMode) error {
	if m.SetRunModeFunc == nil {
		return m.Motor.SetRunMode(ctx, mode)
	}
	return m.SetRunModeFunc(ctx, mode)
}

// SetZeroPowerBehavior calls the injected SetZeroPowerBehavior or the real version.
func (m *Motor) SetZeroPowerBehavior(ctx context.Context, behavior motor.ZeroPowerBehavior) error {
	if m.SetZeroPowerBehaviorFunc == nil {
		return m.Motor.SetZeroPowerBehavior(ctx, behavior)
	}
	return m.SetZeroPowerBehaviorFunc(ctx, behavior)
}

// SetDirection calls the injected SetDirection or the real version.
func (m *Motor) SetDirection(ctx context.Context, dir motor.Direction) error {
	if m.SetDirectionFunc == nil {
		return m.Motor.SetDirection(ctx, dir)
	}
	return m.SetDirectionFunc(ctx, dir)
}
