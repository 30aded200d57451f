// Package servo defines the positional and continuous-rotation servo interface.
package servo

import (
	"context"

	"github.com/fieldbot/teleop/resource"
)

// Positions with special meaning for continuous-rotation servos: 0 and 1 are full speed
// in opposite directions and 0.5 is stop.
const (
	ContinuousFullReverse = 0.0
	ContinuousStop        = 0.5
	ContinuousFullForward = 1.0
)

// A Servo moves to a commanded position in [0, 1].
type Servo interface {
	// SetPosition commands the servo to pos, in [0, 1].
	SetPosition(ctx context.Context, pos float64) error
}

// Named is a helper for getting the named servo's typed name.
func Named(name string) resource.Name {
	return resource.NewName(resource.KindServo, name)
}

// FromHardwareMap is a helper for getting the named servo from a hardware map.
func FromHardwareMap(hw resource.HardwareMap, name string) (Servo, error) {
	return resource.Lookup[Servo](hw, resource.KindServo, name)
}

// SetPositionIfPresent clamps pos to [0, 1] and writes it, treating a nil servo as a no-op.
func SetPositionIfPresent(ctx context.Context, s Servo, pos float64) error {
	if s == nil {
		return nil
	}
	if pos < 0 {
		pos = 0
	} else if pos > 1 {
		pos = 1
	}
	return s.SetPosition(ctx, pos)
}
