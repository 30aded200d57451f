package register

import (
	"testing"

	"go.viam.com/test"

	"github.com/fieldbot/teleop/opmode"
)

func TestAllProgramsRegistered(t *testing.T) {
	test.That(t, opmode.RegisteredNames(), test.ShouldResemble,
		[]string{"mecanum-auto-turn", "relic-recovery", "skittle-bot", "velocity-vortex"})
	for _, name := range opmode.RegisteredNames() {
		reg, ok := opmode.Lookup(name)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, reg.Description, test.ShouldNotBeEmpty)
		test.That(t, reg.Devices, test.ShouldNotBeEmpty)
	}
}
