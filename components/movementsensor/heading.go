package movementsensor

import "context"

const (
	headingErrorWindow    = 10
	headingErrorThreshold = 5
)

// HeadingTracker reads an IMU at most once per Update and keeps the last good heading,
// so a transient read failure never reaches the control loop.
type HeadingTracker struct {
	imu     IMU
	heading float64
	valid   bool
	lastErr *LastError
}

// NewHeadingTracker returns a tracker over imu, which may be nil.
func NewHeadingTracker(imu IMU) *HeadingTracker {
	return &HeadingTracker{
		imu:     imu,
		lastErr: NewLastError(headingErrorWindow, headingErrorThreshold),
	}
}

// Present returns whether an IMU is attached.
func (h *HeadingTracker) Present() bool {
	return h.imu != nil
}

// Update performs a single read and returns the heading to use this tick.
func (h *HeadingTracker) Update(ctx context.Context) float64 {
	if h.imu == nil {
		return h.heading
	}
	heading, err := h.imu.Heading(ctx)
	h.lastErr.Set(err)
	if err != nil {
		return h.heading
	}
	h.heading = heading
	h.valid = true
	return h.heading
}

// Heading returns the last good heading, zero before the first good read.
func (h *HeadingTracker) Heading() float64 {
	return h.heading
}

// Valid returns whether at least one read has succeeded.
func (h *HeadingTracker) Valid() bool {
	return h.valid
}

// Err returns the latest read error once enough recent reads have failed.
func (h *HeadingTracker) Err() error {
	return h.lastErr.Get()
}
