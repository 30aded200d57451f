package statemachine

import (
	"context"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/logging"
)

// A DoneState is a terminal self-loop that stops the drive once per entry.
type DoneState struct {
	Named
	stopper    base.Stopper
	logger     logging.Logger
	issuedStop bool
}

// NewDoneState returns a done state over stopper, which may be nil.
func NewDoneState(name string, stopper base.Stopper, logger logging.Logger) *DoneState {
	return &DoneState{Named: Named{name: name}, stopper: stopper, logger: logger}
}

// Tick stops all drive motors the first time it runs after a reset.
func (s *DoneState) Tick(ctx context.Context) State {
	if !s.issuedStop {
		if s.stopper != nil {
			if err := s.stopper.StopAllDriveMotors(ctx); err != nil && s.logger != nil {
				s.logger.Errorw("failed to stop drive motors", "state", s.name, "error", err)
			}
		}
		s.issuedStop = true
	}
	return s
}

// Reset re-arms the stop.
func (s *DoneState) Reset() {
	s.issuedStop = false
}

// Issued returns whether the stop has been issued since the last reset.
func (s *DoneState) Issued() bool {
	return s.issuedStop
}
