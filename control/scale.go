package control

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fieldbot/teleop/utils"
)

// motorPowerScale is the drive stick response curve indexed by sixteenths of full deflection.
// The last two entries are both 1 so that only exactly full deflection reaches index 16.
var motorPowerScale = [17]float64{
	0.00, 0.05, 0.09, 0.10, 0.12,
	0.15, 0.18, 0.24, 0.30, 0.36,
	0.43, 0.50, 0.60, 0.72, 0.85,
	1.00, 1.00,
}

// ScaleMotorPower maps a stick value through the drive lookup table, preserving sign.
func ScaleMotorPower(unscaled float64) float64 {
	clipped := utils.ClipUnit(unscaled)
	index := int(clipped * 16)
	if index < 0 {
		index = -index
	}
	if index > 16 {
		index = 16
	}
	if clipped < 0 {
		return -motorPowerScale[index]
	}
	return motorPowerScale[index]
}

// Default throttle curve parameters.
const (
	DefaultThrottleGain     = 0.3
	DefaultThrottleExponent = 3
	DefaultThrottleDeadband = 0.0
)

// ThrottleScaler is the polynomial response curve used for the lift.
type ThrottleScaler struct {
	Gain     float64 `json:"gain"`
	Exponent int     `json:"exponent"`
	Deadband float64 `json:"deadband"`
}

// DefaultThrottleScaler returns the stock lift curve.
func DefaultThrottleScaler() ThrottleScaler {
	return ThrottleScaler{
		Gain:     DefaultThrottleGain,
		Exponent: DefaultThrottleExponent,
		Deadband: DefaultThrottleDeadband,
	}
}

// Scale returns (-D) + (1-D) * (G*x^E + (1-G)*x).
func (s ThrottleScaler) Scale(x float64) float64 {
	return -s.Deadband + (1-s.Deadband)*(s.Gain*math.Pow(x, float64(s.Exponent))+(1-s.Gain)*x)
}

// Validate returns an error when the curve would not preserve sign.
func (s ThrottleScaler) Validate(path string) error {
	if s.Exponent <= 0 || s.Exponent%2 == 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("exponent must be a positive odd integer, got %d", s.Exponent))
	}
	if s.Gain < 0 || s.Gain > 1 {
		return utils.NewConfigValidationError(path, errors.Errorf("gain must be in [0, 1], got %v", s.Gain))
	}
	if s.Deadband < 0 || s.Deadband >= 1 {
		return utils.NewConfigValidationError(path, errors.Errorf("deadband must be in [0, 1), got %v", s.Deadband))
	}
	return nil
}
