package mecanum

import (
	"context"

	"github.com/fieldbot/teleop/robot"
)

// Drive motor names.
const (
	LeftFrontMotorName  = "leftFrontDriveMotor"
	RightFrontMotorName = "rightFrontDriveMotor"
	LeftRearMotorName   = "leftRearDriveMotor"
	RightRearMotorName  = "rightRearDriveMotor"
)

// MotorNames lists the drive motors in wheel order.
var MotorNames = []string{LeftFrontMotorName, RightFrontMotorName, LeftRearMotorName, RightRearMotorName}

// FromRobot looks up the four drive motors, recording a warning for each one that is missing.
func FromRobot(ctx context.Context, rc *robot.Context) (*Drive, error) {
	return NewDrive(ctx,
		rc.Motor(LeftFrontMotorName),
		rc.Motor(RightFrontMotorName),
		rc.Motor(LeftRearMotorName),
		rc.Motor(RightRearMotorName),
		rc.Logger.Sublogger("mecanum"))
}
