package statemachine

import (
	"context"

	"github.com/fieldbot/teleop/components/input"
)

// A ToggleState flips between off and on at each rise of its button, running the matching hook.
// It starts off and always returns itself.
type ToggleState struct {
	Named
	button       *input.DebouncedButton
	onToggledOn  func(ctx context.Context)
	onToggledOff func(ctx context.Context)
	on           bool
}

// NewToggleState returns a toggle bound to button. Either hook may be nil.
func NewToggleState(name string, button *input.DebouncedButton, onToggledOn, onToggledOff func(ctx context.Context)) *ToggleState {
	return &ToggleState{
		Named:        Named{name: name},
		button:       button,
		onToggledOn:  onToggledOn,
		onToggledOff: onToggledOff,
	}
}

// Tick samples the button once.
func (t *ToggleState) Tick(ctx context.Context) State {
	if t.button != nil && t.button.Rise() {
		t.Set(ctx, !t.on)
	}
	return t
}

// Set forces the toggle on or off, running the hook only when that changes it.
func (t *ToggleState) Set(ctx context.Context, on bool) {
	if on == t.on {
		return
	}
	t.on = on
	hook := t.onToggledOff
	if on {
		hook = t.onToggledOn
	}
	if hook != nil {
		hook(ctx)
	}
}

// IsOn returns whether the toggle is on.
func (t *ToggleState) IsOn() bool {
	return t.on
}

// Reset turns the toggle off without running a hook.
func (t *ToggleState) Reset() {
	t.on = false
}
