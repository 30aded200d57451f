// Package opmode defines driver-operated programs, the per-tick orchestration they share and
// the registry hosts find them in.
package opmode

import (
	"context"

	"github.com/fieldbot/teleop/robot"
)

// An OpMode is a program the host runs: Init once, then Loop every tick until Stop.
type OpMode interface {
	// Init looks up hardware and builds the program's state. Missing hardware is reported
	// through the warning accessors, not as an error.
	Init(ctx context.Context) error

	// Loop runs one tick. It never blocks and never returns an error; tick failures are
	// logged.
	Loop(ctx context.Context)

	// Stop stops every actuator the program drives.
	Stop(ctx context.Context)

	WarningGenerated() bool
	WarningMessage() string
}

// Base is embedded by programs for the parts of OpMode every program shares.
type Base struct {
	Robot        *robot.Context
	Orchestrator *Orchestrator
}

// Loop ticks the orchestrator.
func (b *Base) Loop(ctx context.Context) {
	if b.Orchestrator == nil {
		return
	}
	_ = b.Orchestrator.Tick(ctx)
}

// WarningGenerated returns whether any warning was recorded.
func (b *Base) WarningGenerated() bool {
	return b.Robot.WarningGenerated()
}

// WarningMessage returns every recorded warning.
func (b *Base) WarningMessage() string {
	return b.Robot.WarningMessage()
}
