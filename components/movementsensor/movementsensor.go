// Package movementsensor defines the inertial measurement unit used for heading.
package movementsensor

import (
	"context"

	"github.com/fieldbot/teleop/resource"
)

// An IMU reports the robot's heading.
type IMU interface {
	// Heading returns the signed heading in degrees relative to the last zero, counter-clockwise positive.
	Heading(ctx context.Context) (float64, error)
}

// Named is a helper for getting the named IMU's typed name.
func Named(name string) resource.Name {
	return resource.NewName(resource.KindIMU, name)
}

// FromHardwareMap is a helper for getting the named IMU from a hardware map.
func FromHardwareMap(hw resource.HardwareMap, name string) (IMU, error) {
	return resource.Lookup[IMU](hw, resource.KindIMU, name)
}
