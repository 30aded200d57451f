package input

// A DebouncedButton exposes the edges of a boolean source. Each query samples the source once
// and updates the last-seen value, so no per-tick sweep is needed.
type DebouncedButton struct {
	source   Button
	lastSeen bool
}

// NewDebouncedButton wraps source. The initial last-seen value is released, so a button held at
// construction rises on its first query.
func NewDebouncedButton(source Button) *DebouncedButton {
	return &DebouncedButton{source: source}
}

// Rise returns true iff the button was last seen released and is now pressed.
func (b *DebouncedButton) Rise() bool {
	current := b.source()
	rise := !b.lastSeen && current
	b.lastSeen = current
	return rise
}

// Fall returns true iff the button was last seen pressed and is now released.
func (b *DebouncedButton) Fall() bool {
	current := b.source()
	fall := b.lastSeen && !current
	b.lastSeen = current
	return fall
}

// DebouncedButtons holds one DebouncedButton per button of a gamepad.
type DebouncedButtons struct {
	A, B, X, Y                            *DebouncedButton
	LeftBumper, RightBumper               *DebouncedButton
	DpadUp, DpadDown, DpadLeft, DpadRight *DebouncedButton
	LeftStickButton, RightStickButton     *DebouncedButton
}

// NewDebouncedButtons debounces every button of g.
func NewDebouncedButtons(g Gamepad) *DebouncedButtons {
	debounce := func(c Control) *DebouncedButton {
		return NewDebouncedButton(ButtonOf(g, c))
	}
	return &DebouncedButtons{
		A:                debounce(ButtonA),
		B:                debounce(ButtonB),
		X:                debounce(ButtonX),
		Y:                debounce(ButtonY),
		LeftBumper:       debounce(ButtonLT),
		RightBumper:      debounce(ButtonRT),
		DpadUp:           debounce(ButtonDpadUp),
		DpadDown:         debounce(ButtonDpadDown),
		DpadLeft:         debounce(ButtonDpadLeft),
		DpadRight:        debounce(ButtonDpadRight),
		LeftStickButton:  debounce(ButtonLThumb),
		RightStickButton: debounce(ButtonRThumb),
	}
}
