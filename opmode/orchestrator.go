package opmode

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/movementsensor"
	"github.com/fieldbot/teleop/components/sensor"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/statemachine"
	"github.com/fieldbot/teleop/telemetry"
)

// Telemetry keys written by every tick.
const (
	CycleTimeKey = "cycle ms"
	WarningKey   = "warning"
	VoltageKey   = "voltage"
)

// An Orchestrator runs a program's tick in a fixed order:
//
//  1. refresh the heading, reporting an error once reads keep failing
//  2. Configure
//  3. step every machine in Machines
//  4. Drive
//  5. Interlocks
//  6. Telemetry, then the battery voltage, the cycle time and any warning
//
// Any hook may be nil. A failing step does not skip later ones; errors are combined,
// logged and returned.
type Orchestrator struct {
	Robot   *robot.Context
	Heading *movementsensor.HeadingTracker
	// Voltage is reported every tick when present.
	Voltage sensor.VoltageSensor

	Configure  func(ctx context.Context, heading float64) error
	Machines   []*statemachine.Machine
	Drive      func(ctx context.Context, heading float64) error
	Interlocks func(ctx context.Context) error
	Telemetry  func(ctx context.Context, t telemetry.Telemetry)

	logger   logging.Logger
	lastTick time.Time
	ticks    int
}

// NewOrchestrator returns an orchestrator reading heading from imu, which may be nil.
func NewOrchestrator(rc *robot.Context, imu movementsensor.IMU) *Orchestrator {
	return &Orchestrator{
		Robot:   rc,
		Heading: movementsensor.NewHeadingTracker(imu),
		Voltage: rc.VoltageSensor(),
		logger:  rc.Logger.Sublogger("tick"),
	}
}

// Tick runs one tick.
func (o *Orchestrator) Tick(ctx context.Context) error {
	now := o.Robot.Clock.Now()
	heading := o.Heading.Update(ctx)

	err := o.Heading.Err()
	if o.Configure != nil {
		err = multierr.Append(err, o.Configure(ctx, heading))
	}
	for _, m := range o.Machines {
		err = multierr.Append(err, m.Step(ctx))
	}
	if o.Drive != nil {
		err = multierr.Append(err, o.Drive(ctx, heading))
	}
	if o.Interlocks != nil {
		err = multierr.Append(err, o.Interlocks(ctx))
	}

	t := o.Robot.Telemetry
	if o.Telemetry != nil {
		o.Telemetry(ctx, t)
	}
	if o.Voltage != nil {
		if volts, verr := o.Voltage.Voltage(ctx); verr == nil {
			t.AddData(VoltageKey, fmt.Sprintf("%5.2f", volts))
		}
	}
	if !o.lastTick.IsZero() {
		cycle := now.Sub(o.lastTick)
		t.AddData(CycleTimeKey, fmt.Sprintf("%.1f", float64(cycle)/float64(time.Millisecond)))
		o.logger.Debugw("tick", "n", o.ticks, "cycle", cycle)
	}
	if o.Robot.WarningGenerated() {
		t.AddData(WarningKey, o.Robot.WarningMessage())
	}
	o.lastTick = now
	o.ticks++

	if err != nil {
		o.logger.Errorw("tick failed", "n", o.ticks, "error", err)
	}
	return err
}

// Ticks returns how many ticks have run.
func (o *Orchestrator) Ticks() int {
	return o.ticks
}
