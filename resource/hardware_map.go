package resource

import (
	"sort"
	"sync"

	"github.com/fieldbot/teleop/utils"
)

// A HardwareMap resolves configured device names to device handles.
type HardwareMap interface {
	// Get returns the device registered under kind and name, or a NotFoundError.
	Get(kind Kind, name string) (interface{}, error)
}

// Lookup resolves a device and asserts its type.
func Lookup[T any](hw HardwareMap, kind Kind, name string) (T, error) {
	var zero T
	dev, err := hw.Get(kind, name)
	if err != nil {
		return zero, err
	}
	typed, ok := dev.(T)
	if !ok {
		return zero, utils.DeviceTypeError(name, (*T)(nil), dev)
	}
	return typed, nil
}

// Devices is an in-memory HardwareMap, used by the simulator and tests.
type Devices struct {
	mu      sync.RWMutex
	devices map[Name]interface{}
}

// NewDevices returns an empty device map.
func NewDevices() *Devices {
	return &Devices{devices: map[Name]interface{}{}}
}

// Add registers dev under kind and name, replacing any previous entry.
func (d *Devices) Add(kind Kind, name string, dev interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.devices[NewName(kind, name)] = dev
}

// Remove deletes a device; it returns whether it was present.
func (d *Devices) Remove(kind Kind, name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := NewName(kind, name)
	_, ok := d.devices[n]
	delete(d.devices, n)
	return ok
}

// Get implements HardwareMap.
func (d *Devices) Get(kind Kind, name string) (interface{}, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	dev, ok := d.devices[NewName(kind, name)]
	if !ok {
		return nil, NewNotFoundError(NewName(kind, name))
	}
	return dev, nil
}

// Names returns every registered name, sorted.
func (d *Devices) Names() []Name {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]Name, 0, len(d.devices))
	for n := range d.devices {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	return names
}
