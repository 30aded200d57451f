package glyph

import (
	"context"

	"github.com/fieldbot/teleop/components/servo"
)

// Gripper positions.
const (
	TopOpenPosition      = 0.65
	TopClosedPosition    = 0.20
	BottomOpenPosition   = 0.35
	BottomClosedPosition = 0.80
)

// A Gripper is one servo-driven glyph claw.
type Gripper struct {
	servo           servo.Servo
	open, closedPos float64
	closed          bool
}

// NewGripper returns a gripper over s, which may be nil.
func NewGripper(s servo.Servo, openPos, closedPos float64) *Gripper {
	return &Gripper{servo: s, open: openPos, closedPos: closedPos}
}

// Open opens the claw.
func (g *Gripper) Open(ctx context.Context) error {
	g.closed = false
	return servo.SetPositionIfPresent(ctx, g.servo, g.open)
}

// Close closes the claw.
func (g *Gripper) Close(ctx context.Context) error {
	g.closed = true
	return servo.SetPositionIfPresent(ctx, g.servo, g.closedPos)
}

// IsClosed returns whether the claw was last closed.
func (g *Gripper) IsClosed() bool {
	return g.closed
}
