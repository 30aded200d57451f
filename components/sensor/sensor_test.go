package sensor_test

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/sensor"
	"github.com/fieldbot/teleop/components/sensor/fake"
	"github.com/fieldbot/teleop/resource"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		reading  sensor.ColorReading
		expected sensor.Color
	}{
		{sensor.ColorReading{Red: 40, Blue: 10}, sensor.Red},
		{sensor.ColorReading{Red: 3, Blue: 60}, sensor.Blue},
		{sensor.ColorReading{Red: 5, Blue: 2}, sensor.Unknown},
		{sensor.ColorReading{Red: 20, Blue: 20}, sensor.Unknown},
	} {
		t.Run(tc.reading.String(), func(t *testing.T) {
			test.That(t, tc.reading.Classify(), test.ShouldEqual, tc.expected)
		})
	}
	test.That(t, sensor.Blue.String(), test.ShouldEqual, "blue")
}

func TestFromHardwareMap(t *testing.T) {
	ctx := context.Background()
	devices := resource.NewDevices()
	devices.Add(resource.KindColorRangeSensor, "redAllianceJewelColor",
		fake.NewColorRangeSensor(sensor.ColorReading{Red: 30}))
	devices.Add(resource.KindVoltageSensor, "battery", &fake.VoltageSensor{Volts: 12.8})

	color, err := sensor.ColorRangeFromHardwareMap(devices, "redAllianceJewelColor")
	test.That(t, err, test.ShouldBeNil)
	reading, err := color.Read(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reading.Classify(), test.ShouldEqual, sensor.Red)

	volts, err := sensor.VoltageFromHardwareMap(devices, "battery")
	test.That(t, err, test.ShouldBeNil)
	v, err := volts.Voltage(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, 12.8)

	_, err = sensor.VoltageFromHardwareMap(devices, "redAllianceJewelColor")
	test.That(t, resource.IsNotFoundError(err), test.ShouldBeTrue)
}
