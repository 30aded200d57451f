// Package fake builds an in-memory hardware map of fake devices for a program's device list.
package fake

import (
	"github.com/samber/lo"

	boardfake "github.com/fieldbot/teleop/components/board/fake"
	motorfake "github.com/fieldbot/teleop/components/motor/fake"
	imufake "github.com/fieldbot/teleop/components/movementsensor/fake"
	"github.com/fieldbot/teleop/components/sensor"
	sensorfake "github.com/fieldbot/teleop/components/sensor/fake"
	servofake "github.com/fieldbot/teleop/components/servo/fake"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
)

// DefaultVoltage is the battery voltage reported by the fake voltage sensor.
const DefaultVoltage = 13.2

// Hardware is a hardware map populated with fakes, indexed by name for inspection.
type Hardware struct {
	*resource.Devices

	Motors        map[string]*motorfake.Motor
	Servos        map[string]*servofake.Servo
	DigitalInputs map[string]*boardfake.DigitalInput
	IMUs          map[string]*imufake.IMU
	ColorSensors  map[string]*sensorfake.ColorRangeSensor
	Voltage       *sensorfake.VoltageSensor
}

// NewHardware returns fakes for every device in names except those whose name is in
// missing, plus a voltage sensor. Motors log through logger when it is not nil.
func NewHardware(names []resource.Name, missing []string, logger logging.Logger) *Hardware {
	hw := &Hardware{
		Devices:       resource.NewDevices(),
		Motors:        map[string]*motorfake.Motor{},
		Servos:        map[string]*servofake.Servo{},
		DigitalInputs: map[string]*boardfake.DigitalInput{},
		IMUs:          map[string]*imufake.IMU{},
		ColorSensors:  map[string]*sensorfake.ColorRangeSensor{},
	}
	for _, n := range names {
		if lo.Contains(missing, n.Name) {
			continue
		}
		switch n.Kind {
		case resource.KindMotor:
			m := motorfake.NewMotor(n.Name, logger)
			hw.Motors[n.Name] = m
			hw.Add(n.Kind, n.Name, m)
		case resource.KindServo:
			s := servofake.NewServo(n.Name, 0.5)
			hw.Servos[n.Name] = s
			hw.Add(n.Kind, n.Name, s)
		case resource.KindDigitalInput:
			d := boardfake.NewDigitalInput(false)
			hw.DigitalInputs[n.Name] = d
			hw.Add(n.Kind, n.Name, d)
		case resource.KindIMU:
			i := imufake.NewIMU(0)
			hw.IMUs[n.Name] = i
			hw.Add(n.Kind, n.Name, i)
		case resource.KindColorRangeSensor:
			c := sensorfake.NewColorRangeSensor(sensor.ColorReading{})
			hw.ColorSensors[n.Name] = c
			hw.Add(n.Kind, n.Name, c)
		case resource.KindVoltageSensor:
		}
	}
	if !lo.Contains(missing, robot.DefaultVoltageSensorName) {
		hw.Voltage = &sensorfake.VoltageSensor{Volts: DefaultVoltage}
		hw.Add(resource.KindVoltageSensor, robot.DefaultVoltageSensorName, hw.Voltage)
	}
	return hw
}

// IMU returns the fake behind the default IMU name, or nil.
func (hw *Hardware) IMU() *imufake.IMU {
	return hw.IMUs[robot.DefaultIMUName]
}
