package opmode

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/fieldbot/teleop/robot"
)

type nopProgram struct {
	Base
}

func (p *nopProgram) Init(ctx context.Context) error { return nil }

func (p *nopProgram) Stop(ctx context.Context) {}

func TestRegistry(t *testing.T) {
	const name = "registry-test"
	Register(name, Registration{Constructor: func(rc *robot.Context) OpMode {
		return &nopProgram{Base: Base{Robot: rc}}
	}})
	defer deregister(name)

	test.That(t, RegisteredNames(), test.ShouldContain, name)
	_, ok := Lookup(name)
	test.That(t, ok, test.ShouldBeTrue)

	op, err := New(name, robot.NewContext(robot.Dependencies{}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, op.Init(context.Background()), test.ShouldBeNil)
	op.Loop(context.Background())
	test.That(t, op.WarningGenerated(), test.ShouldBeFalse)

	_, err = New("no-such-program", robot.NewContext(robot.Dependencies{}))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown program")

	test.That(t, func() { Register(name, Registration{Constructor: nil}) }, test.ShouldPanic)
	test.That(t, func() {
		Register(name, Registration{Constructor: func(rc *robot.Context) OpMode { return nil }})
	}, test.ShouldPanic)
}
