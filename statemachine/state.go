// Package statemachine provides the states that mechanism controllers are built from and a
// Machine that advances one state per tick.
package statemachine

import (
	"context"

	"github.com/pkg/errors"

	"github.com/fieldbot/teleop/components/input"
	"github.com/fieldbot/teleop/logging"
)

// ErrNoNextState is returned when a state hands back no successor. It is a wiring bug.
var ErrNoNextState = errors.New("state returned no next state")

// A State is one node of a state graph.
type State interface {
	Name() string
	// Tick performs this tick's side effects and returns the state for the next tick,
	// which may be the receiver.
	Tick(ctx context.Context) State
	// Reset returns the state to its entry condition.
	Reset()
	// LiveConfigure lets the state adjust its parameters from button edges while idle.
	LiveConfigure(buttons *input.DebouncedButtons)
}

// Named is embedded by states for their name and successor.
type Named struct {
	name string
	next State
}

// Name returns the state's name.
func (n *Named) Name() string {
	return n.name
}

// SetNext wires the successor.
func (n *Named) SetNext(next State) {
	n.next = next
}

// Next returns the wired successor, which may be nil.
func (n *Named) Next() State {
	return n.next
}

// LiveConfigure does nothing.
func (n *Named) LiveConfigure(buttons *input.DebouncedButtons) {}

// A Machine holds the current state of one state graph.
type Machine struct {
	name    string
	current State
	logger  logging.Logger
}

// NewMachine returns a machine starting at initial.
func NewMachine(name string, initial State, logger logging.Logger) *Machine {
	return &Machine{name: name, current: initial, logger: logger}
}

// Step ticks the current state and advances to its result. A nil result leaves the current
// state in place and returns ErrNoNextState.
func (m *Machine) Step(ctx context.Context) error {
	if m.current == nil {
		return errors.Wrapf(ErrNoNextState, "machine %q has no current state", m.name)
	}
	next := m.current.Tick(ctx)
	if next == nil {
		err := errors.Wrapf(ErrNoNextState, "machine %q state %q", m.name, m.current.Name())
		if m.logger != nil {
			m.logger.Errorw("state machine stalled", "machine", m.name, "state", m.current.Name())
		}
		return err
	}
	if next != m.current && m.logger != nil {
		m.logger.Debugw("state transition", "machine", m.name, "from", m.current.Name(), "to", next.Name())
	}
	m.current = next
	return nil
}

// Name returns the machine's name.
func (m *Machine) Name() string {
	return m.name
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Jump resets s and makes it current.
func (m *Machine) Jump(s State) {
	if s != nil {
		s.Reset()
	}
	m.current = s
}
