package glyph

import (
	"context"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/board"
	"github.com/fieldbot/teleop/components/motor"
)

// A Lift raises and lowers the glyph mechanism between two limit switches. Positive motor
// power is up.
type Lift struct {
	motor       motor.Motor
	bottomLimit board.DigitalInput
	topLimit    board.DigitalInput
	power       float64
}

// NewLift returns a lift over m with optional limits.
func NewLift(m motor.Motor, bottomLimit, topLimit board.DigitalInput) *Lift {
	return &Lift{motor: m, bottomLimit: bottomLimit, topLimit: topLimit}
}

// MoveUp drives up at |power| unless the top limit is asserted.
func (l *Lift) MoveUp(ctx context.Context, power float64) error {
	if power < 0 {
		power = -power
	}
	return l.drive(ctx, power)
}

// MoveDown drives down at |power| unless the bottom limit is asserted.
func (l *Lift) MoveDown(ctx context.Context, power float64) error {
	if power < 0 {
		power = -power
	}
	return l.drive(ctx, -power)
}

// Stop stops the lift.
func (l *Lift) Stop(ctx context.Context) error {
	l.power = 0
	return motor.SetPowerIfPresent(ctx, l.motor, 0)
}

// Power returns the last power written.
func (l *Lift) Power() float64 {
	return l.power
}

func (l *Lift) drive(ctx context.Context, power float64) error {
	blocked, err := l.blocked(ctx, power)
	if blocked {
		return multierr.Combine(err, l.Stop(ctx))
	}
	l.power = motor.ClampPower(power)
	return multierr.Combine(err, motor.SetPowerIfPresent(ctx, l.motor, l.power))
}

// blocked returns whether moving at power would run into an asserted limit. An unreadable
// limit is treated as asserted.
func (l *Lift) blocked(ctx context.Context, power float64) (bool, error) {
	var limit board.DigitalInput
	switch {
	case power > 0:
		limit = l.topLimit
	case power < 0:
		limit = l.bottomLimit
	default:
		return false, nil
	}
	asserted, err := board.IsAssertedIfPresent(ctx, limit)
	if err != nil {
		return true, err
	}
	return asserted, nil
}

// EnforceLimits stops the lift if it is moving into an asserted limit.
func (l *Lift) EnforceLimits(ctx context.Context) error {
	blocked, err := l.blocked(ctx, l.power)
	if blocked {
		return multierr.Combine(err, l.Stop(ctx))
	}
	return err
}

// AtTop returns whether the top limit is asserted.
func (l *Lift) AtTop(ctx context.Context) bool {
	asserted, err := board.IsAssertedIfPresent(ctx, l.topLimit)
	return err == nil && asserted
}

// AtBottom returns whether the bottom limit is asserted.
func (l *Lift) AtBottom(ctx context.Context) bool {
	asserted, err := board.IsAssertedIfPresent(ctx, l.bottomLimit)
	return err == nil && asserted
}
