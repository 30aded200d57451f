// Package input provides the driver and operator gamepads and edge-detected buttons over them.
package input

// Control identifies the input (specific Axis or Button) of a gamepad.
type Control string

// Controls.
const (
	// Axes. Sticks are in [-1, 1] with forward push reading -1 on the Y axes and right push
	// reading +1 on the X axes. Triggers are in [0, 1].
	AbsoluteX  Control = "AbsoluteX"
	AbsoluteY  Control = "AbsoluteY"
	AbsoluteZ  Control = "AbsoluteZ"
	AbsoluteRX Control = "AbsoluteRX"
	AbsoluteRY Control = "AbsoluteRY"
	AbsoluteRZ Control = "AbsoluteRZ"

	// Buttons.
	ButtonSouth     Control = "ButtonSouth"
	ButtonEast      Control = "ButtonEast"
	ButtonWest      Control = "ButtonWest"
	ButtonNorth     Control = "ButtonNorth"
	ButtonLT        Control = "ButtonLT"
	ButtonRT        Control = "ButtonRT"
	ButtonLThumb    Control = "ButtonLThumb"
	ButtonRThumb    Control = "ButtonRThumb"
	ButtonDpadUp    Control = "ButtonDpadUp"
	ButtonDpadDown  Control = "ButtonDpadDown"
	ButtonDpadLeft  Control = "ButtonDpadLeft"
	ButtonDpadRight Control = "ButtonDpadRight"
)

// Face button aliases using the gamepad's printed letters.
const (
	ButtonA = ButtonSouth
	ButtonB = ButtonEast
	ButtonX = ButtonWest
	ButtonY = ButtonNorth
)

// Controls lists every known control, axes first.
var Controls = []Control{
	AbsoluteX, AbsoluteY, AbsoluteZ, AbsoluteRX, AbsoluteRY, AbsoluteRZ,
	ButtonSouth, ButtonEast, ButtonWest, ButtonNorth, ButtonLT, ButtonRT,
	ButtonLThumb, ButtonRThumb, ButtonDpadUp, ButtonDpadDown, ButtonDpadLeft, ButtonDpadRight,
}

// IsAxis returns whether c is an analog axis.
func (c Control) IsAxis() bool {
	switch c {
	case AbsoluteX, AbsoluteY, AbsoluteZ, AbsoluteRX, AbsoluteRY, AbsoluteRZ:
		return true
	case ButtonSouth, ButtonEast, ButtonWest, ButtonNorth, ButtonLT, ButtonRT,
		ButtonLThumb, ButtonRThumb, ButtonDpadUp, ButtonDpadDown, ButtonDpadLeft, ButtonDpadRight:
		return false
	default:
		return false
	}
}

// A Gamepad is the live state of one gamepad as maintained by the host.
type Gamepad interface {
	// Value returns the current value of control: the axis position, or 0/1 for buttons.
	Value(control Control) float64
}

// Snapshot is a frozen gamepad state.
type Snapshot map[Control]float64

// Value implements Gamepad. Unset controls read 0.
func (s Snapshot) Value(control Control) float64 {
	return s[control]
}

// Snap copies the current state of g.
func Snap(g Gamepad) Snapshot {
	s := make(Snapshot, len(Controls))
	for _, c := range Controls {
		if v := g.Value(c); v != 0 {
			s[c] = v
		}
	}
	return s
}

// AxisOf returns the raw value of an axis, unmodified.
func AxisOf(g Gamepad, control Control) float64 {
	return g.Value(control)
}

// RangeInput is a live handle on one axis.
type RangeInput struct {
	gamepad Gamepad
	control Control
}

// NewRangeInput returns a handle on control of g.
func NewRangeInput(g Gamepad, control Control) RangeInput {
	return RangeInput{gamepad: g, control: control}
}

// Position returns the current raw axis value.
func (r RangeInput) Position() float64 {
	return AxisOf(r.gamepad, r.control)
}

// ButtonPressedThreshold is the value at or above which a control reads as pressed.
const ButtonPressedThreshold = 0.5

// A Button is a live boolean source.
type Button func() bool

// ButtonOf returns a source that reads control of g as pressed or not.
func ButtonOf(g Gamepad, control Control) Button {
	return func() bool {
		return g.Value(control) >= ButtonPressedThreshold
	}
}

// IsPressed reads control of g once.
func IsPressed(g Gamepad, control Control) bool {
	return ButtonOf(g, control)()
}
