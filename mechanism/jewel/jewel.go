// Package jewel controls the jewel arms: a servo that lowers a colour sensor next to a jewel.
package jewel

import (
	"context"
	"fmt"

	"github.com/fieldbot/teleop/components/sensor"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/config"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/statemachine"
	"github.com/fieldbot/teleop/telemetry"
)

// Alliances name which arm is which.
const (
	RedAlliance  = "redAlliance"
	BlueAlliance = "blueAlliance"
)

// ServoName returns the arm servo's device name for an alliance.
func ServoName(alliance string) string {
	return alliance + "JewelServo"
}

// ColorSensorName returns the arm colour sensor's device name for an alliance.
func ColorSensorName(alliance string) string {
	return alliance + "JewelColor"
}

// State names.
const (
	StateStowed   = "stowed"
	StateSettling = "settling"
	StateReading  = "reading"
	StateDeployed = "deployed"
)

// An Arm deploys, waits for the arm to settle, classifies the colour it sees once, and stows
// again on request.
type Arm struct {
	alliance string
	servo    servo.Servo
	color    sensor.ColorRangeSensor
	conf     config.JewelConfig

	machine *statemachine.Machine
	stowed  *statemachine.FuncState

	deployRequested bool
	stowRequested   bool

	reading sensor.ColorReading
	seen    sensor.Color
	hasRead bool
	lastErr error
}

// NewArm looks up the alliance's arm devices and builds its state machine.
func NewArm(rc *robot.Context, alliance string) *Arm {
	a := &Arm{
		alliance: alliance,
		servo:    rc.Servo(ServoName(alliance)),
		color:    rc.ColorRangeSensor(ColorSensorName(alliance)),
		conf:     rc.Config.Jewel,
	}

	a.stowed = statemachine.NewFuncState(StateStowed, nil)
	settling := statemachine.NewDelayState(StateSettling, a.conf.Settle(), rc.Clock)
	reading := statemachine.NewFuncState(StateReading, nil)
	deployed := statemachine.NewFuncState(StateDeployed, nil)

	a.stowed.TickFunc = func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		a.stowRequested = false
		if !a.deployRequested {
			return self
		}
		a.deployRequested = false
		a.lastErr = servo.SetPositionIfPresent(ctx, a.servo, a.conf.DeployedPosition)
		settling.Reset()
		return settling
	}
	settling.SetNext(reading)
	reading.TickFunc = func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		a.classify(ctx)
		return deployed
	}
	deployed.TickFunc = func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		a.deployRequested = false
		if !a.stowRequested {
			return self
		}
		a.stowRequested = false
		a.lastErr = servo.SetPositionIfPresent(ctx, a.servo, a.conf.StowedPosition)
		return a.stowed
	}

	a.machine = statemachine.NewMachine("jewel-"+alliance, a.stowed, rc.Logger.Sublogger("jewel"))
	return a
}

func (a *Arm) classify(ctx context.Context) {
	a.hasRead = true
	if a.color == nil {
		a.seen = sensor.Unknown
		return
	}
	reading, err := a.color.Read(ctx)
	if err != nil {
		a.lastErr = err
		a.seen = sensor.Unknown
		return
	}
	a.reading = reading
	a.seen = reading.Classify()
}

// Init stows the arm.
func (a *Arm) Init(ctx context.Context) error {
	return servo.SetPositionIfPresent(ctx, a.servo, a.conf.StowedPosition)
}

// Machine returns the arm's state machine.
func (a *Arm) Machine() *statemachine.Machine {
	return a.machine
}

// RequestDeploy asks a stowed arm to deploy. It is ignored while deployed.
func (a *Arm) RequestDeploy() {
	a.deployRequested = true
}

// RequestStow asks a deployed arm to stow. It is ignored while stowed.
func (a *Arm) RequestStow() {
	a.stowRequested = true
}

// StateName returns the arm's current state.
func (a *Arm) StateName() string {
	return a.machine.Current().Name()
}

// Color returns the colour seen on the last deploy and whether one was read.
func (a *Arm) Color() (sensor.Color, bool) {
	return a.seen, a.hasRead
}

// TakeError returns and clears the last device error.
func (a *Arm) TakeError() error {
	err := a.lastErr
	a.lastErr = nil
	return err
}

// AddTelemetry reports the arm state and the colour it saw.
func (a *Arm) AddTelemetry(t telemetry.Telemetry) {
	key := "jewel " + a.alliance
	if !a.hasRead {
		t.AddData(key, a.StateName())
		return
	}
	t.AddData(key, fmt.Sprintf("%s %s (%s)", a.StateName(), a.seen, a.reading))
}
