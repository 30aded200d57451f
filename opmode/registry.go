package opmode

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fieldbot/teleop/resource"
	"github.com/fieldbot/teleop/robot"
)

// A Registration describes how to build a program and what hardware it expects.
type Registration struct {
	Constructor func(rc *robot.Context) OpMode
	Description string
	// Devices lists the hardware the program looks up, so hosts can provide it.
	Devices []resource.Name
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Registration{}
)

// Register makes a program available by name. It panics on a duplicate name or a nil
// constructor, so misregistration fails at init.
func Register(name string, reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, old := registry[name]; old {
		panic(errors.Errorf("trying to register two programs named %q", name))
	}
	if reg.Constructor == nil {
		panic(errors.Errorf("cannot register a nil constructor for program %q", name))
	}
	registry[name] = reg
}

// Lookup returns the named registration.
func Lookup(name string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[name]
	return reg, ok
}

// RegisteredNames returns every registered program name, sorted.
func RegisteredNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// New builds the named program.
func New(name string, rc *robot.Context) (OpMode, error) {
	reg, ok := Lookup(name)
	if !ok {
		return nil, errors.Errorf("unknown program %q", name)
	}
	return reg.Constructor(rc), nil
}

// deregister removes a program; tests only.
func deregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}
