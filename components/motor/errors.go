package motor

import "github.com/pkg/errors"

// NewPowerOutOfRangeError returns an error for a power command outside [-1, 1] that reached
// a device that refuses to clip.
func NewPowerOutOfRangeError(motorName string, powerPct float64) error {
	return errors.Errorf("motor named %s was commanded to power %.3f outside [-1, 1]", motorName, powerPct)
}

// NewUnsupportedRunModeError returns an error when a motor cannot run in the requested mode,
// typically RunWithEncoder on a motor with no encoder attached.
func NewUnsupportedRunModeError(motorName string, mode RunMode) error {
	return errors.Errorf("motor named %s does not support run mode %s", motorName, mode)
}
