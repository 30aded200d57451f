package inject

import (
	"context"

	"github.com/fieldbot/teleop/components/movementsensor"
)

// IMU is an injected IMU.
type IMU struct {
	movementsensor.IMU
	HeadingFunc func(ctx context.Context) (float64, error)
}

// Heading calls the injected Heading or the real version.
func (i *IMU) Heading(ctx context.Context) (float64, error) {
	if i.HeadingFunc == nil {
		return i.IMU.Heading(ctx)
	}
	return i.HeadingFunc(ctx)
}
