package physics

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/vmath"
)

// Body is the physical body driven by the motor
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	// AddVelocityChange applies an instantaneous, mass-independent velocity change
	AddVelocityChange(dv mgl64.Vec3)
	Forward() mgl64.Vec3
	SetForward(f mgl64.Vec3)
}

// RigidBody is a kinematic point body with heading
// Velocity changes accumulate until the next Integrate
type RigidBody struct {
	mu       sync.RWMutex
	position mgl64.Vec3
	velocity mgl64.Vec3
	forward  mgl64.Vec3
}

// NewRigidBody creates a resting body at pos facing +Z
func NewRigidBody(pos mgl64.Vec3) *RigidBody {
	return &RigidBody{
		position: pos,
		forward:  mgl64.Vec3{0, 0, 1},
	}
}

// Position returns the world position
func (b *RigidBody) Position() mgl64.Vec3 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.position
}

// SetPosition teleports the body
func (b *RigidBody) SetPosition(p mgl64.Vec3) {
	b.mu.Lock()
	b.position = p
	b.mu.Unlock()
}

// Velocity returns the linear velocity
func (b *RigidBody) Velocity() mgl64.Vec3 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.velocity
}

// AddVelocityChange adds dv to the velocity
func (b *RigidBody) AddVelocityChange(dv mgl64.Vec3) {
	b.mu.Lock()
	b.velocity = b.velocity.Add(dv)
	b.mu.Unlock()
}

// Forward returns the unit heading
func (b *RigidBody) Forward() mgl64.Vec3 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.forward
}

// SetForward sets the heading, zero vectors are ignored
func (b *RigidBody) SetForward(f mgl64.Vec3) {
	n := vmath.Normalize(f)
	if vmath.MagSq(n) == 0 {
		return
	}
	b.mu.Lock()
	b.forward = n
	b.mu.Unlock()
}

// Integrate advances position by velocity over dt: p = p + v*dt
func (b *RigidBody) Integrate(dt time.Duration) mgl64.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.position = b.position.Add(b.velocity.Mul(dt.Seconds()))
	return b.position
}

// ClampBounds keeps the body inside [0,width) x [0,depth) on the ground plane
// Velocity along a blocked axis is zeroed; returns true if clamping occurred
func (b *RigidBody) ClampBounds(width, depth float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	clamped := false
	if b.position[0] < 0 || b.position[0] > width {
		b.position[0] = mgl64.Clamp(b.position[0], 0, width)
		b.velocity[0] = 0
		clamped = true
	}
	if b.position[2] < 0 || b.position[2] > depth {
		b.position[2] = mgl64.Clamp(b.position[2], 0, depth)
		b.velocity[2] = 0
		clamped = true
	}
	return clamped
}
