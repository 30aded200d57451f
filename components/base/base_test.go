package base_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/fieldbot/teleop/components/base"
	"github.com/fieldbot/teleop/components/motor"
	"github.com/fieldbot/teleop/components/motor/fake"
	"github.com/fieldbot/teleop/testutils/inject"
)

func TestPresent(t *testing.T) {
	m := fake.NewMotor("a", nil)
	test.That(t, base.Present(nil, m, nil), test.ShouldResemble, []motor.Motor{m})
	test.That(t, base.Present(), test.ShouldBeEmpty)
}

func TestSetPowerAllCombinesErrors(t *testing.T) {
	ctx := context.Background()
	good := fake.NewMotor("good", nil)
	bad := &inject.Motor{
		SetPowerFunc: func(ctx context.Context, powerPct float64) error {
			return errors.New("bus fault")
		},
	}
	worse := &inject.Motor{
		SetPowerFunc: func(ctx context.Context, powerPct float64) error {
			return errors.New("stall")
		},
	}

	err := base.SetPowerAll(ctx, []motor.Motor{bad, good, nil, worse}, 2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bus fault")
	test.That(t, err.Error(), test.ShouldContainSubstring, "stall")
	test.That(t, good.CommandedPower(), test.ShouldEqual, 1.0)

	test.That(t, base.StopAll(ctx, []motor.Motor{good}), test.ShouldBeNil)
	test.That(t, good.IsPowered(), test.ShouldBeFalse)
}

func TestGroupSettings(t *testing.T) {
	ctx := context.Background()
	a, b := fake.NewMotor("a", nil), fake.NewMotor("b", nil)
	ms := []motor.Motor{a, nil, b}

	test.That(t, base.SetRunModeAll(ctx, ms, motor.RunWithEncoder), test.ShouldBeNil)
	test.That(t, base.SetZeroPowerBehaviorAll(ctx, ms, motor.Brake), test.ShouldBeNil)
	test.That(t, base.SetDirectionAll(ctx, ms, motor.Reverse), test.ShouldBeNil)
	for _, m := range []*fake.Motor{a, b} {
		test.That(t, m.RunMode(), test.ShouldEqual, motor.RunWithEncoder)
		test.That(t, m.ZeroPowerBehavior(), test.ShouldEqual, motor.Brake)
		test.That(t, m.Direction(), test.ShouldEqual, motor.Reverse)
	}
}
