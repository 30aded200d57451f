package inject

import (
	"context"

	"github.com/fieldbot/teleop/components/servo"
)

// Servo is an injected servo.
type Servo struct {
	servo.Servo
	SetPositionFunc func(ctx context.Context, pos float64) error
}

// SetPosition calls the injected SetPosition or the real version.
func (s *Servo) SetPosition(ctx context.Context, pos float64) error {
	if s.SetPositionFunc == nil {
		return s.Servo.SetPosition(ctx, pos)
	}
	return s.SetPositionFunc(ctx, pos)
}
