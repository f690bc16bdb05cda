package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/vmath"
)

// Source is a polled input device
// A nil Source means no device is assigned and contributes nothing
type Source interface {
	// Stick returns the movement stick, each axis in [-1,1]
	Stick() (x, y float64)
	// IsPressed reports the button level for the current frame
	IsPressed(b Button) bool
	// WasPressed reports a rising edge in the current frame
	WasPressed(b Button) bool
}

// StickVector maps the source stick onto the ground plane, returns false for a nil source
func StickVector(src Source) (mgl64.Vec3, bool) {
	if src == nil {
		return mgl64.Vec3{}, false
	}
	return vmath.FromStick(src.Stick()), true
}

// VirtualSource is a programmable device for scripted runs and tests
// Edges are derived from level changes across Update calls
type VirtualSource struct {
	mu      sync.Mutex
	name    string
	x, y    float64
	level   [ButtonCount]bool
	current [ButtonCount]bool
	prev    [ButtonCount]bool
}

// NewVirtualSource creates an idle virtual device
func NewVirtualSource(name string) *VirtualSource {
	return &VirtualSource{name: name}
}

// Name returns the device name
func (v *VirtualSource) Name() string {
	return v.name
}

// SetStick sets the stick position, clamped per axis to [-1,1]
func (v *VirtualSource) SetStick(x, y float64) {
	v.mu.Lock()
	v.x, v.y = mgl64.Clamp(x, -1, 1), mgl64.Clamp(y, -1, 1)
	v.mu.Unlock()
}

// SetButton sets a button level, visible after the next Update
func (v *VirtualSource) SetButton(b Button, down bool) {
	if b >= ButtonCount {
		return
	}
	v.mu.Lock()
	v.level[b] = down
	v.mu.Unlock()
}

// Update samples button levels for a new frame
func (v *VirtualSource) Update() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prev = v.current
	v.current = v.level
}

// Stick implements Source
func (v *VirtualSource) Stick() (float64, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.x, v.y
}

// IsPressed implements Source
func (v *VirtualSource) IsPressed(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current[b]
}

// WasPressed implements Source
func (v *VirtualSource) WasPressed(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current[b] && !v.prev[b]
}

// AnyButton reports a rising edge on any button in the current frame
func (v *VirtualSource) AnyButton() bool {
	for b := Button(0); b < ButtonCount; b++ {
		if v.WasPressed(b) {
			return true
		}
	}
	return false
}
