// Package board defines the digital inputs read from a hub, such as limit switches.
package board

import (
	"context"

	"github.com/fieldbot/teleop/resource"
)

// A DigitalInput is a single digital channel configured as an input.
type DigitalInput interface {
	// IsAsserted returns whether the channel is active.
	IsAsserted(ctx context.Context) (bool, error)
}

// Named is a helper for getting the named digital input's typed name.
func Named(name string) resource.Name {
	return resource.NewName(resource.KindDigitalInput, name)
}

// FromHardwareMap is a helper for getting the named digital input from a hardware map.
func FromHardwareMap(hw resource.HardwareMap, name string) (DigitalInput, error) {
	return resource.Lookup[DigitalInput](hw, resource.KindDigitalInput, name)
}

// IsAssertedIfPresent reads d, reporting an absent input as not asserted.
func IsAssertedIfPresent(ctx context.Context, d DigitalInput) (bool, error) {
	if d == nil {
		return false, nil
	}
	return d.IsAsserted(ctx)
}
