package control

import (
	"math"

	"github.com/felixge/pidctrl"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/utils"
)

// Default heading controller parameters.
const (
	DefaultHeadingKp        = 0.1
	DefaultHeadingThreshold = 1.0
	DefaultPowerCutOff      = 0.02
)

// WrapDegrees returns the equivalent angle in (-180, 180].
func WrapDegrees(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees > 180 {
		degrees -= 360
	} else if degrees <= -180 {
		degrees += 360
	}
	return degrees
}

// HeadingController steers toward an absolute heading with one proportional step per tick.
type HeadingController struct {
	Kp           float64
	ThresholdDeg float64
	// PowerCutOff is the smallest rotation command magnitude issued while off target.
	PowerCutOff float64

	logger logging.Logger
	pid    *pidctrl.PIDController

	lastError float64
	lastSteer float64
}

// NewHeadingController returns a controller with the given gain, on-target threshold and floor.
func NewHeadingController(kp, thresholdDeg, powerCutOff float64, logger logging.Logger) *HeadingController {
	return &HeadingController{
		Kp:           kp,
		ThresholdDeg: thresholdDeg,
		PowerCutOff:  powerCutOff,
		logger:       logger,
		pid:          pidctrl.NewPIDController(kp, 0, 0).SetOutputLimits(-1, 1),
	}
}

// Step computes the rotation toward target from current, both in degrees. The returned command
// is never field oriented and carries no translation.
func (h *HeadingController) Step(target, current float64) (base.DriveCommand, bool) {
	e := WrapDegrees(target - current)
	h.lastError = e

	if math.Abs(e) <= h.ThresholdDeg {
		h.lastSteer = 0
		h.debugf("target %5.2f, curr %5.2f, err %5.2f, on target", target, current, e)
		return base.DriveCommand{}, true
	}

	if h.pid == nil {
		h.pid = pidctrl.NewPIDController(h.Kp, 0, 0).SetOutputLimits(-1, 1)
	}
	h.pid.SetPID(h.Kp, 0, 0)
	h.pid.Set(e)
	steer := h.pid.UpdateDuration(0, 0)

	if math.Abs(steer) < h.PowerCutOff {
		steer = utils.Sign(steer) * h.PowerCutOff
	}
	h.lastSteer = steer
	h.debugf("target %5.2f, curr %5.2f, err %5.2f, steer %f", target, current, e, steer)

	return base.DriveCommand{Rotation: -steer}, false
}

// LastError returns the wrapped error from the most recent Step.
func (h *HeadingController) LastError() float64 {
	return h.lastError
}

// LastSteer returns the steer value from the most recent Step, before negation.
func (h *HeadingController) LastSteer() float64 {
	return h.lastSteer
}

func (h *HeadingController) debugf(template string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Debugf(template, args...)
	}
}
