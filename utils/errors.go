package utils

import (
	"reflect"

	"github.com/pkg/errors"
)

// TypeStr returns a printable type name for v. A typed nil pointer to an interface
// (e.g. (*motor.Motor)(nil)) is reported as the interface type itself.
func TypeStr(v interface{}) string {
	if v == nil {
		return "<unknown (nil interface)>"
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		return t.Elem().String()
	}
	return t.String()
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected, actual interface{}) error {
	return errors.Errorf("expected %s but got %s", TypeStr(expected), TypeStr(actual))
}

// NewUnimplementedInterfaceError is used when there is a failed interface check.
func NewUnimplementedInterfaceError(expected, actual interface{}) error {
	return errors.Errorf("expected implementation of %s but got %s", TypeStr(expected), TypeStr(actual))
}

// DeviceTypeError is used when a hardware map entry exists but is the wrong kind of device.
func DeviceTypeError(name string, expected, actual interface{}) error {
	return errors.Errorf("device %q should be an implementation of %s but it was a %s",
		name, TypeStr(expected), TypeStr(actual))
}

// NewConfigValidationError returns an error specifying a config validation error at path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError returns an error specifying that a required field
// is missing from a config.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}
