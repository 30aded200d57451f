// Package fake implements a fake motor.
package fake

import (
	"context"
	"sync"

	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/logging"
)

var _ motor.Motor = &Motor{}

// A Motor records the last power, run mode, zero power behavior and direction it was given.
type Motor struct {
	Name   string
	Logger logging.Logger

	// Strict makes SetPower reject values outside [-1, 1].
	Strict bool

	// NoEncoder makes SetRunMode reject RunWithEncoder.
	NoEncoder bool

	mu                sync.Mutex
	powerPct          float64
	runMode           motor.RunMode
	zeroPowerBehavior motor.ZeroPowerBehavior
	direction         motor.Direction
	powerWrites       int
}

// NewMotor returns a fake motor with the given name.
func NewMotor(name string, logger logging.Logger) *Motor {
	return &Motor{Name: name, Logger: logger}
}

// SetPower sets the given power percentage.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Strict && (powerPct > 1 || powerPct < -1) {
		return motor.NewPowerOutOfRangeError(m.Name, powerPct)
	}
	if m.Logger != nil {
		m.Logger.Debugf("Motor %s SetPower %f", m.Name, powerPct)
	}
	m.powerPct = powerPct
	m.powerWrites++
	return nil
}

// SetRunMode records the run mode.
func (m *Motor) SetRunMode(ctx context.Context, mode motor.RunMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NoEncoder && mode == motor.RunWithEncoder {
		return motor.NewUnsupportedRunModeError(m.Name, mode)
	}
	m.runMode = mode
	return nil
}

// SetZeroPowerBehavior records the zero power behavior.
func (m *Motor) SetZeroPowerBehavior(ctx context.Context, behavior motor.ZeroPowerBehavior) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zeroPowerBehavior = behavior
	return nil
}

// SetDirection records the direction.
func (m *Motor) SetDirection(ctx context.Context, dir motor.Direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.direction = dir
	return nil
}

// PowerPct returns the last power written, as seen through the configured direction.
func (m *Motor) PowerPct() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.direction == motor.Reverse {
		return -m.powerPct
	}
	return m.powerPct
}

// CommandedPower returns the last power written, ignoring direction.
func (m *Motor) CommandedPower() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.powerPct
}

// PowerWrites returns how many times SetPower succeeded.
func (m *Motor) PowerWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.powerWrites
}

// RunMode returns the last run mode set.
func (m *Motor) RunMode() motor.RunMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runMode
}

// ZeroPowerBehavior returns the last zero power behavior set.
func (m *Motor) ZeroPowerBehavior() motor.ZeroPowerBehavior {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zeroPowerBehavior
}

// Direction returns the last direction set.
func (m *Motor) Direction() motor.Direction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.direction
}

// IsPowered returns whether the last power written was non-zero.
func (m *Motor) IsPowered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.powerPct != 0
}
