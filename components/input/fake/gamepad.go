// Package fake implements a scriptable gamepad.
package fake

import (
	"sync"

	"github.com/fieldbot/teleop/components/input"
)

var _ input.Gamepad = &Gamepad{}

// A Gamepad holds control values set by a test or the simulator.
type Gamepad struct {
	mu     sync.Mutex
	values map[input.Control]float64
}

// NewGamepad returns a gamepad with every control at rest.
func NewGamepad() *Gamepad {
	return &Gamepad{values: map[input.Control]float64{}}
}

// Value implements input.Gamepad.
func (g *Gamepad) Value(control input.Control) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.values[control]
}

// Set sets a control to value.
func (g *Gamepad) Set(control input.Control, value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[control] = value
}

// Press holds a button down.
func (g *Gamepad) Press(control input.Control) {
	g.Set(control, 1)
}

// Release lets a button up.
func (g *Gamepad) Release(control input.Control) {
	g.Set(control, 0)
}

// Reset returns every control to rest.
func (g *Gamepad) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values = map[input.Control]float64{}
}
