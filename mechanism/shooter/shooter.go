// Package shooter controls the two-wheel particle shooter.
package shooter

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/statemachine"
)

// Device names.
const (
	TopMotorName    = "topParticleShooter"
	BottomMotorName = "bottomParticleShooter"
)

// State names.
const (
	StateIdle       = "shooter-idle"
	StateSpinningUp = "shooter-spinning-up"
	StateReady      = "shooter-ready"
)

// A Shooter runs both wheels while its trigger is held and reports ready once they have had
// the spin-up time.
type Shooter struct {
	motors  []motor.Motor
	trigger input.Button
	machine *statemachine.Machine
	spinUp  *statemachine.DelayState
	err     error
}

// New returns a shooter over the two wheel motors, either of which may be nil.
func New(top, bottom motor.Motor, trigger input.Button, spinUp time.Duration, clk clock.Clock, logger logging.Logger) *Shooter {
	s := &Shooter{motors: base.Present(top, bottom), trigger: trigger}

	idle := statemachine.NewFuncState(StateIdle, nil)
	spinningUp := statemachine.NewFuncState(StateSpinningUp, nil)
	ready := statemachine.NewFuncState(StateReady, nil)
	s.spinUp = statemachine.NewDelayState(StateSpinningUp, spinUp, clk)
	s.spinUp.SetNext(ready)

	idle.TickFunc = func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		if !s.pressed() {
			return self
		}
		s.setPower(ctx, 1)
		s.spinUp.Reset()
		return spinningUp
	}
	spinningUp.TickFunc = func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		if !s.pressed() {
			s.setPower(ctx, 0)
			return idle
		}
		if next := s.spinUp.Tick(ctx); next != s.spinUp {
			return next
		}
		return self
	}
	ready.TickFunc = func(ctx context.Context, self *statemachine.FuncState) statemachine.State {
		if !s.pressed() {
			s.setPower(ctx, 0)
			return idle
		}
		return self
	}

	s.machine = statemachine.NewMachine("shooter", idle, logger)
	return s
}

func (s *Shooter) pressed() bool {
	return s.trigger != nil && s.trigger()
}

func (s *Shooter) setPower(ctx context.Context, power float64) {
	s.err = multierr.Append(s.err, base.SetPowerAll(ctx, s.motors, power))
}

// Init stops both wheels.
func (s *Shooter) Init(ctx context.Context) error {
	return base.StopAll(ctx, s.motors)
}

// Machine returns the shooter's state machine.
func (s *Shooter) Machine() *statemachine.Machine {
	return s.machine
}

// Ready returns whether the wheels are up to speed.
func (s *Shooter) Ready() bool {
	return s.machine.Current().Name() == StateReady
}

// SpinUpElapsed returns how long the current spin-up has run.
func (s *Shooter) SpinUpElapsed() time.Duration {
	if s.machine.Current().Name() != StateSpinningUp {
		return 0
	}
	return s.spinUp.Elapsed()
}

// TakeError returns and clears the motor errors since the last call.
func (s *Shooter) TakeError() error {
	err := s.err
	s.err = nil
	return err
}
