package inject

import (
	"context"

	"github.com/fieldbot/teleop/components/board"
)

// DigitalInput is an injected digital input.
type DigitalInput struct {
	board.DigitalInput
	IsAssertedFunc func(ctx context.Context) (bool, error)
}

// IsAsserted calls the injected IsAsserted or the real version.
func (d *DigitalInput) IsAsserted(ctx context.Context) (bool, error) {
	if d.IsAssertedFunc == nil {
		return d.DigitalInput.IsAsserted(ctx)
	}
	return d.IsAssertedFunc(ctx)
}
