// Package sensor defines the colour/range and battery voltage sensors.
package sensor

import (
	"context"
	"fmt"

	"github.com/fieldbot/teleop/resource"
)

// A ColorRangeSensor reads reflected colour and proximity.
type ColorRangeSensor interface {
	Read(ctx context.Context) (ColorReading, error)
}

// A VoltageSensor reads the main battery voltage.
type VoltageSensor interface {
	Voltage(ctx context.Context) (float64, error)
}

// ColorReading is one sample from a ColorRangeSensor.
type ColorReading struct {
	Red, Green, Blue int
	// Distance is the proximity in centimetres.
	Distance float64
}

func (r ColorReading) String() string {
	return fmt.Sprintf("r=%d g=%d b=%d d=%.1fcm", r.Red, r.Green, r.Blue, r.Distance)
}

// Color is a discrete classification of a ColorReading.
type Color int

// Colors.
const (
	Unknown Color = iota
	Red
	Blue
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Unknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// MinClassifiableChannel is the smallest dominant channel value that Classify trusts.
const MinClassifiableChannel = 8

// Classify returns Red or Blue when that channel dominates the other and is bright enough.
func (r ColorReading) Classify() Color {
	switch {
	case r.Red > r.Blue && r.Red >= MinClassifiableChannel:
		return Red
	case r.Blue > r.Red && r.Blue >= MinClassifiableChannel:
		return Blue
	default:
		return Unknown
	}
}

// NamedColorRange is a helper for getting the named colour sensor's typed name.
func NamedColorRange(name string) resource.Name {
	return resource.NewName(resource.KindColorRangeSensor, name)
}

// ColorRangeFromHardwareMap is a helper for getting the named colour sensor from a hardware map.
func ColorRangeFromHardwareMap(hw resource.HardwareMap, name string) (ColorRangeSensor, error) {
	return resource.Lookup[ColorRangeSensor](hw, resource.KindColorRangeSensor, name)
}

// VoltageFromHardwareMap is a helper for getting the named voltage sensor from a hardware map.
func VoltageFromHardwareMap(hw resource.HardwareMap, name string) (VoltageSensor, error) {
	return resource.Lookup[VoltageSensor](hw, resource.KindVoltageSensor, name)
}
