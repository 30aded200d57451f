// Package fake implements fake colour and voltage sensors.
package fake

import (
	"context"
	"sync"

	"github.com/fieldbot/teleop/components/sensor"
)

var (
	_ sensor.ColorRangeSensor = &ColorRangeSensor{}
	_ sensor.VoltageSensor    = &VoltageSensor{}
)

// ColorRangeSensor returns a settable reading.
type ColorRangeSensor struct {
	mu      sync.Mutex
	reading sensor.ColorReading
	reads   int
}

// NewColorRangeSensor returns a fake sensor with the given reading.
func NewColorRangeSensor(reading sensor.ColorReading) *ColorRangeSensor {
	return &ColorRangeSensor{reading: reading}
}

// Read returns the set reading.
func (s *ColorRangeSensor) Read(ctx context.Context) (sensor.ColorReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.reading, nil
}

// Set changes the reading.
func (s *ColorRangeSensor) Set(reading sensor.ColorReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading = reading
}

// Reads returns how many times Read was called.
func (s *ColorRangeSensor) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// VoltageSensor returns a fixed voltage.
type VoltageSensor struct {
	Volts float64
}

// Voltage returns Volts.
func (s *VoltageSensor) Voltage(ctx context.Context) (float64, error) {
	return s.Volts, nil
}
