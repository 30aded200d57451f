// Package fake implements a fake IMU.
package fake

import (
	"context"
	"sync"

	"github.com/fieldbot/teleop/components/movementsensor"
)

var _ movementsensor.IMU = &IMU{}

// An IMU reports a settable heading, optionally integrated from commanded rotation.
type IMU struct {
	mu      sync.Mutex
	heading float64
	err     error
	reads   int
}

// NewIMU returns a fake IMU at the given heading.
func NewIMU(heading float64) *IMU {
	return &IMU{heading: heading}
}

// Heading returns the current heading or the set error.
func (i *IMU) Heading(ctx context.Context) (float64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.reads++
	if i.err != nil {
		return 0, i.err
	}
	return i.heading, nil
}

// SetHeading sets the reported heading.
func (i *IMU) SetHeading(heading float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.heading = heading
}

// Rotate adds degrees to the reported heading.
func (i *IMU) Rotate(degrees float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.heading += degrees
}

// SetError makes subsequent reads fail with err; nil clears it.
func (i *IMU) SetError(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.err = err
}

// Reads returns how many times Heading was called.
func (i *IMU) Reads() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.reads
}
