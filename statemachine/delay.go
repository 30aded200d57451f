package statemachine

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// A DelayState waits for a duration measured from its first tick, then returns its successor.
type DelayState struct {
	Named
	clock    clock.Clock
	duration time.Duration
	start    time.Time
	started  bool
}

// NewDelayState returns a delay of d on clk.
func NewDelayState(name string, d time.Duration, clk clock.Clock) *DelayState {
	if clk == nil {
		clk = clock.New()
	}
	return &DelayState{Named: Named{name: name}, clock: clk, duration: d}
}

// Tick records the start on the first call and returns the successor once the duration has elapsed.
func (s *DelayState) Tick(ctx context.Context) State {
	now := s.clock.Now()
	if !s.started {
		s.start = now
		s.started = true
	}
	if !now.Before(s.start.Add(s.duration)) {
		return s.next
	}
	return s
}

// Elapsed returns the time since the first tick, zero before it.
func (s *DelayState) Elapsed() time.Duration {
	if !s.started {
		return 0
	}
	return s.clock.Since(s.start)
}

// Duration returns the configured delay.
func (s *DelayState) Duration() time.Duration {
	return s.duration
}

// Reset forgets the start so the next tick starts a fresh delay.
func (s *DelayState) Reset() {
	s.start = time.Time{}
	s.started = false
}
