package statemachine

import (
	"context"

	"github.com/fieldbot/teleop/components/input"
)

// A FuncState is a State whose behavior is supplied as functions. A nil TickFunc keeps the
// state current.
type FuncState struct {
	Named
	TickFunc          func(ctx context.Context, self *FuncState) State
	ResetFunc         func()
	LiveConfigureFunc func(buttons *input.DebouncedButtons)
}

// NewFuncState returns a FuncState with the given tick function.
func NewFuncState(name string, tick func(ctx context.Context, self *FuncState) State) *FuncState {
	return &FuncState{Named: Named{name: name}, TickFunc: tick}
}

// Tick calls TickFunc.
func (s *FuncState) Tick(ctx context.Context) State {
	if s.TickFunc == nil {
		return s
	}
	return s.TickFunc(ctx, s)
}

// Reset calls ResetFunc.
func (s *FuncState) Reset() {
	if s.ResetFunc != nil {
		s.ResetFunc()
	}
}

// LiveConfigure calls LiveConfigureFunc.
func (s *FuncState) LiveConfigure(buttons *input.DebouncedButtons) {
	if s.LiveConfigureFunc != nil {
		s.LiveConfigureFunc(buttons)
	}
}
