// Package fake implements a fake digital input.
package fake

import (
	"context"
	"sync"

	"github.com/fieldbot/teleop/components/board"
)

var _ board.DigitalInput = &DigitalInput{}

// A DigitalInput reports whatever value it was last set to.
type DigitalInput struct {
	mu       sync.Mutex
	asserted bool
	err      error
}

// NewDigitalInput returns a fake input with the given initial value.
func NewDigitalInput(asserted bool) *DigitalInput {
	return &DigitalInput{asserted: asserted}
}

// IsAsserted returns the set value, or the set error.
func (d *DigitalInput) IsAsserted(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	return d.asserted, nil
}

// Set changes the reported value.
func (d *DigitalInput) Set(asserted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.asserted = asserted
}

// SetError makes subsequent reads fail with err; nil clears it.
func (d *DigitalInput) SetError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}
