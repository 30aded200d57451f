package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fieldbot/teleop/components/input"
)

// Gamepad selectors accepted in front of a control name.
const (
	driverPad   = "driver"
	operatorPad = "operator"
)

var controlAliases = map[string]input.Control{
	"A":     input.ButtonA,
	"B":     input.ButtonB,
	"X":     input.ButtonX,
	"Y":     input.ButtonY,
	"LB":    input.ButtonLT,
	"RB":    input.ButtonRT,
	"LS":    input.ButtonLThumb,
	"RS":    input.ButtonRThumb,
	"UP":    input.ButtonDpadUp,
	"DOWN":  input.ButtonDpadDown,
	"LEFT":  input.ButtonDpadLeft,
	"RIGHT": input.ButtonDpadRight,
	"LX":    input.AbsoluteX,
	"LY":    input.AbsoluteY,
	"RX":    input.AbsoluteRX,
	"RY":    input.AbsoluteRY,
	"LT":    input.AbsoluteZ,
	"RT":    input.AbsoluteRZ,
}

// An event holds control at value on one gamepad for ticks [from, to].
type event struct {
	pad      string
	control  input.Control
	value    float64
	from, to int
}

func (e event) active(tick int) bool {
	return tick >= e.from && (e.to < 0 || tick <= e.to)
}

func parseControl(name string) (input.Control, error) {
	if c, ok := controlAliases[strings.ToUpper(name)]; ok {
		return c, nil
	}
	if lo.Contains(input.Controls, input.Control(name)) {
		return input.Control(name), nil
	}
	return "", errors.Errorf("unknown control %q", name)
}

func splitPad(arg string) (string, string) {
	if pad, rest, ok := strings.Cut(arg, ":"); ok {
		return strings.ToLower(pad), rest
	}
	return driverPad, arg
}

// parseTicks parses "N" or "N-M". An empty range is every tick.
func parseTicks(s string, single bool) (int, int, error) {
	if s == "" {
		return 0, -1, nil
	}
	fromStr, toStr, isRange := strings.Cut(s, "-")
	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "bad tick %q", s)
	}
	if !isRange {
		if single {
			return from, from, nil
		}
		return from, -1, nil
	}
	to, err := strconv.Atoi(toStr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "bad tick range %q", s)
	}
	if to < from {
		return 0, 0, errors.Errorf("tick range %q ends before it starts", s)
	}
	return from, to, nil
}

func parseEvent(arg string, press bool) (event, error) {
	pad, rest := splitPad(arg)
	if pad != driverPad && pad != operatorPad {
		return event{}, errors.Errorf("unknown gamepad %q in %q", pad, arg)
	}
	rest, ticks, _ := strings.Cut(rest, "@")
	e := event{pad: pad, value: 1}
	name := rest
	if !press {
		var valueStr string
		var ok bool
		name, valueStr, ok = strings.Cut(rest, "=")
		if !ok {
			return event{}, errors.Errorf("stick %q has no value", arg)
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return event{}, errors.Wrapf(err, "bad stick value in %q", arg)
		}
		e.value = value
	}
	control, err := parseControl(name)
	if err != nil {
		return event{}, err
	}
	if press == control.IsAxis() {
		if press {
			return event{}, errors.Errorf("%q is an axis, use --stick", name)
		}
		return event{}, errors.Errorf("%q is a button, use --press", name)
	}
	e.control = control
	if e.from, e.to, err = parseTicks(ticks, press); err != nil {
		return event{}, err
	}
	return e, nil
}

// parseEvents parses --press values ("[pad:]BUTTON@N[-M]") and --stick values
// ("[pad:]AXIS=VALUE[@N[-M]]").
func parseEvents(presses, sticks []string) ([]event, error) {
	events := make([]event, 0, len(presses)+len(sticks))
	for _, arg := range presses {
		e, err := parseEvent(arg, true)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	for _, arg := range sticks {
		e, err := parseEvent(arg, false)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
