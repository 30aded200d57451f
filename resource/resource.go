// Package resource names the devices a program looks up in the host's hardware map.
package resource

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies a class of device in the hardware map.
type Kind string

// Known device kinds.
const (
	KindMotor            = Kind("motor")
	KindServo            = Kind("servo")
	KindDigitalInput     = Kind("digital_input")
	KindIMU              = Kind("imu")
	KindColorRangeSensor = Kind("color_range_sensor")
	KindVoltageSensor    = Kind("voltage_sensor")
)

// Name identifies one device by its kind and configured name.
type Name struct {
	Kind Kind
	Name string
}

// NewName returns a Name for the given kind and device name.
func NewName(kind Kind, name string) Name {
	return Name{Kind: kind, Name: name}
}

func (n Name) String() string {
	return fmt.Sprintf("%s/%s", n.Kind, n.Name)
}

// Validate ensures that important fields exist and are valid.
func (n Name) Validate() error {
	if n.Kind == "" {
		return errors.New("kind field for device missing or invalid")
	}
	if n.Name == "" {
		return errors.New("name field for device missing or invalid")
	}
	return nil
}

// NotFoundError is returned when a device is absent from the hardware map.
type NotFoundError struct {
	Name Name
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("device %q not found", e.Name.String())
}

// NewNotFoundError is used when a device is not found.
func NewNotFoundError(name Name) error {
	return &NotFoundError{Name: name}
}

// IsNotFoundError returns whether err is, or wraps, a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
