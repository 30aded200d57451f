// Package robot holds everything a teleop program needs from its host: the hardware map,
// gamepads, telemetry, logging, time and configuration, plus the init warnings.
package robot

import (
	"context"

	"github.com/benbjohnson/clock"

	"github.com/fieldbot/teleop/components/board"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/movementsensor"
	"github.com/fieldbot/teleop/components/sensor"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/config"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/telemetry"
)

// Default device names.
const (
	DefaultVoltageSensorName = "voltageSensor"
	DefaultIMUName           = "imu"
)

// Dependencies are the collaborators supplied by the host. Only Hardware is required.
type Dependencies struct {
	Hardware  resource.HardwareMap
	Driver    input.Gamepad
	Operator  input.Gamepad
	Telemetry telemetry.Telemetry
	Logger    logging.Logger
	Clock     clock.Clock
	Config    *config.Config
}

// Context is the shared state of one running program.
type Context struct {
	Hardware  resource.HardwareMap
	Driver    input.Gamepad
	Operator  input.Gamepad
	Telemetry telemetry.Telemetry
	Logger    logging.Logger
	Clock     clock.Clock
	Config    *config.Config

	warnings Warnings
}

// NewContext fills in defaults for any missing dependency.
func NewContext(deps Dependencies) *Context {
	c := &Context{
		Hardware:  deps.Hardware,
		Driver:    deps.Driver,
		Operator:  deps.Operator,
		Telemetry: deps.Telemetry,
		Logger:    deps.Logger,
		Clock:     deps.Clock,
		Config:    deps.Config,
	}
	if c.Hardware == nil {
		c.Hardware = resource.NewDevices()
	}
	if c.Driver == nil {
		c.Driver = input.Snapshot{}
	}
	if c.Operator == nil {
		c.Operator = input.Snapshot{}
	}
	if c.Telemetry == nil {
		c.Telemetry = telemetry.NewBuffer()
	}
	if c.Logger == nil {
		c.Logger = logging.NewLogger("teleop")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c
}

// AppendWarning records a problem for the driver station.
func (c *Context) AppendWarning(msg string) {
	c.warnings.Append(msg)
}

// WarningGenerated returns whether any warning was recorded.
func (c *Context) WarningGenerated() bool {
	return c.warnings.Generated()
}

// WarningMessage returns every recorded warning, comma separated.
func (c *Context) WarningMessage() string {
	return c.warnings.Message()
}

// lookup resolves a device, recording a warning and returning the zero value on failure.
func lookup[T any](c *Context, name string, get func(resource.HardwareMap, string) (T, error)) T {
	dev, err := get(c.Hardware, name)
	if err != nil {
		c.AppendWarning(name)
		c.Logger.Errorw("device lookup failed", "name", name, "error", err)
		var zero T
		return zero
	}
	return dev
}

// Motor returns the named motor or nil.
func (c *Context) Motor(name string) motor.Motor {
	return lookup(c, name, motor.FromHardwareMap)
}

// Servo returns the named servo or nil.
func (c *Context) Servo(name string) servo.Servo {
	return lookup(c, name, servo.FromHardwareMap)
}

// DigitalInput returns the named digital input or nil.
func (c *Context) DigitalInput(name string) board.DigitalInput {
	return lookup(c, name, board.FromHardwareMap)
}

// IMU returns the named IMU or nil.
func (c *Context) IMU(name string) movementsensor.IMU {
	return lookup(c, name, movementsensor.FromHardwareMap)
}

// ColorRangeSensor returns the named colour sensor or nil.
func (c *Context) ColorRangeSensor(name string) sensor.ColorRangeSensor {
	return lookup(c, name, sensor.ColorRangeFromHardwareMap)
}

// VoltageSensor returns the battery voltage sensor or nil. A missing voltage sensor is not a
// warning; it only disables voltage reporting.
func (c *Context) VoltageSensor() sensor.VoltageSensor {
	vs, err := sensor.VoltageFromHardwareMap(c.Hardware, DefaultVoltageSensorName)
	if err != nil {
		c.Logger.Debugw("no voltage sensor", "error", err)
		return nil
	}
	return vs
}

// LogBatteryState logs the battery voltage, tagged with the program phase.
func (c *Context) LogBatteryState(ctx context.Context, vs sensor.VoltageSensor, phase string) {
	if vs == nil {
		c.Logger.Errorf("no voltage sensor when logging voltage for %s", phase)
		return
	}
	volts, err := vs.Voltage(ctx)
	if err != nil {
		c.Logger.Errorw("could not read battery voltage", "phase", phase, "error", err)
		return
	}
	c.Logger.Debugf("robot battery voltage %5.2f at method %s()", volts, phase)
}
