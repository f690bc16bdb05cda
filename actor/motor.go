package actor

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/animation"
	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/parameter"
	"github.com/lixenwraith/mad-mansion/vmath"
)

// Motor turns the arbitrated command into body velocity and heading
type Motor struct {
	a *Actor
}

func newMotor(a *Actor) *Motor {
	return &Motor{a: a}
}

// IsPossessed reports ghost control of the body
func (m *Motor) IsPossessed() bool { return m.a.possessed }

// IsHunter reports the Hunter role
func (m *Motor) IsHunter() bool { return m.a.IsHunter() }

func (m *Motor) timeScale() float64 {
	return m.a.deps.Scales.For(m.a.IsHunter())
}

// PhysicsStep applies delta = normalize(cmd) * speed * timeScale - velocity as a velocity change
// Nothing happens while paused
func (m *Motor) PhysicsStep() {
	cmd, ok := m.a.arbiter.Resolve(m.a.arbiterState())
	if !ok {
		return
	}
	body := m.a.deps.Body

	target := vmath.Normalize(cmd).Mul(m.a.cfg.MovementSpeed * m.timeScale())
	velocity := body.Velocity()

	m.updateAnimationRate(velocity)
	body.AddVelocityChange(target.Sub(velocity))
}

// updateAnimationRate scales the walk clip with body speed; other clips play at the neutral rate
func (m *Motor) updateAnimationRate(velocity mgl64.Vec3) {
	anim := m.a.deps.Animator
	speed := vmath.Mag(velocity)
	anim.SetFloat(animation.ParamSpeed, speed)

	if anim.State() == animation.StateWalking &&
		!anim.Bool(animation.ParamScared) &&
		!anim.Bool(animation.ParamConfused) {
		anim.SetSpeed(speed * m.a.cfg.AnimationScale)
		return
	}
	anim.SetSpeed(parameter.NeutralAnimationRate)
}

// FrameStep turns the heading toward the velocity by at most dt * rotationSpeed * timeScale radians
// Slow bodies below the rotation sensitivity keep their heading
func (m *Motor) FrameStep(dt time.Duration) {
	if m.a.paused {
		return
	}
	body := m.a.deps.Body
	velocity := body.Velocity()
	if vmath.MagSq(velocity) <= m.a.cfg.RotationSensitivity {
		return
	}
	maxRadians := dt.Seconds() * m.a.cfg.RotationSpeed * m.timeScale()
	body.SetForward(vmath.RotateTowards(body.Forward(), velocity, maxRadians))
}

// onCatch latches the first successful catch for the lifetime of the actor
func (m *Motor) onCatch(p event.CatchPayload) {
	if !p.Successful || m.a.caught {
		return
	}
	m.a.caught = true
	m.a.log.Info("catch latched")
	if m.a.possessed {
		m.a.deps.Animator.HandleEvent(event.EventCatch)
	}
}
