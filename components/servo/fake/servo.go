// Package fake implements a fake servo.
package fake

import (
	"context"
	"sync"

	"github.com/fieldbot/teleop/components/servo"
)

var _ servo.Servo = &Servo{}

// A Servo records the last position it was commanded to.
type Servo struct {
	Name string

	mu       sync.Mutex
	position float64
	writes   int
}

// NewServo returns a fake servo resting at pos.
func NewServo(name string, pos float64) *Servo {
	return &Servo{Name: name, position: pos}
}

// SetPosition records pos.
func (s *Servo) SetPosition(ctx context.Context, pos float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = pos
	s.writes++
	return nil
}

// Position returns the last commanded position.
func (s *Servo) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Writes returns how many positions were commanded.
func (s *Servo) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
