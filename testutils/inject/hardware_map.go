package inject

import "github.com/fieldbot/teleop/resource"

// HardwareMap is an injected hardware map.
type HardwareMap struct {
	resource.HardwareMap
	GetFunc func(kind resource.Kind, name string) (interface{}, error)
}

// Get calls the injected Get or the real version.
func (hw *HardwareMap) Get(kind resource.Kind, name string) (interface{}, error) {
	if hw.GetFunc == nil {
		return hw.HardwareMap.Get(kind, name)
	}
	return hw.GetFunc(kind, name)
}
