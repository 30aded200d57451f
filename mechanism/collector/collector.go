// Package collector controls reversible intakes: a motor-driven collector or a
// continuous-rotation servo conveyor, each with a forward and a reverse toggle.
package collector

import (
	"context"

	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/servo"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/statemachine"
)

// Direction is what a Reversible is currently asked to do.
type Direction int

// Directions.
const (
	Stopped Direction = iota
	Forward
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case Stopped:
		return "stopped"
	default:
		return "stopped"
	}
}

// Output writes one of three drive values.
type Output struct {
	Write   func(ctx context.Context, value float64) error
	Forward float64
	Reverse float64
	Stop    float64
}

// MotorOutput drives m at full power in either direction.
func MotorOutput(m motor.Motor) Output {
	return Output{
		Write: func(ctx context.Context, value float64) error {
			return motor.SetPowerIfPresent(ctx, m, value)
		},
		Forward: 1,
		Reverse: -1,
		Stop:    0,
	}
}

// ConveyorOutput drives a continuous-rotation servo. Position 0 moves game elements toward
// the shooter.
func ConveyorOutput(s servo.Servo) Output {
	return Output{
		Write: func(ctx context.Context, value float64) error {
			return servo.SetPositionIfPresent(ctx, s, value)
		},
		Forward: servo.ContinuousFullReverse,
		Reverse: servo.ContinuousFullForward,
		Stop:    servo.ContinuousStop,
	}
}

// A Reversible is an intake with a forward toggle and a reverse toggle. Turning one on turns
// the other off.
type Reversible struct {
	name    string
	out     Output
	logger  logging.Logger
	forward *statemachine.ToggleState
	reverse *statemachine.ToggleState
	gate    func() bool

	written  Direction
	hasWrite bool
	err      error
	machines []*statemachine.Machine
}

// NewReversible returns an intake bound to the two buttons.
func NewReversible(name string, out Output, forwardButton, reverseButton *input.DebouncedButton, logger logging.Logger) *Reversible {
	r := &Reversible{name: name, out: out, logger: logger}
	r.forward = statemachine.NewToggleState(name+"-forward", forwardButton,
		func(ctx context.Context) {
			r.reverse.Reset()
			r.apply(ctx)
		},
		r.apply)
	r.reverse = statemachine.NewToggleState(name+"-reverse", reverseButton,
		func(ctx context.Context) {
			r.forward.Reset()
			r.apply(ctx)
		},
		r.apply)
	output := statemachine.NewFuncState(name+"-output", func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		r.apply(ctx)
		return self
	})
	r.machines = []*statemachine.Machine{
		statemachine.NewMachine(name+"-forward", r.forward, logger),
		statemachine.NewMachine(name+"-reverse", r.reverse, logger),
		statemachine.NewMachine(name+"-output", output, logger),
	}
	return r
}

// SetForwardGate holds forward motion at stop while gate returns false.
func (r *Reversible) SetForwardGate(gate func() bool) {
	r.gate = gate
}

// Machines returns the toggles and the output stage in tick order.
func (r *Reversible) Machines() []*statemachine.Machine {
	return r.machines
}

// Requested returns the direction the toggles ask for.
func (r *Reversible) Requested() Direction {
	switch {
	case r.forward.IsOn():
		return Forward
	case r.reverse.IsOn():
		return Reverse
	default:
		return Stopped
	}
}

// Direction returns the direction last written to the device.
func (r *Reversible) Direction() Direction {
	return r.written
}

// Init stops the device.
func (r *Reversible) Init(ctx context.Context) error {
	r.forward.Reset()
	r.reverse.Reset()
	r.hasWrite = true
	r.written = Stopped
	return r.out.Write(ctx, r.out.Stop)
}

// TakeError returns and clears the last write error.
func (r *Reversible) TakeError() error {
	err := r.err
	r.err = nil
	return err
}

// apply writes the effective direction when it changed.
func (r *Reversible) apply(ctx context.Context) {
	want := r.Requested()
	if want == Forward && r.gate != nil && !r.gate() {
		want = Stopped
	}
	if r.hasWrite && want == r.written {
		return
	}
	value := r.out.Stop
	switch want {
	case Forward:
		value = r.out.Forward
	case Reverse:
		value = r.out.Reverse
	case Stopped:
	}
	if err := r.out.Write(ctx, value); err != nil {
		r.err = err
		return
	}
	if r.logger != nil {
		r.logger.Debugw("intake direction", "name", r.name, "direction", want.String())
	}
	r.written = want
	r.hasWrite = true
}
