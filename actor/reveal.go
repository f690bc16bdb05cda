package actor

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/event"
)

// Marker is the role reveal marker attached to an actor
// Offset is local to the actor origin
type Marker struct {
	Offset  mgl64.Vec3
	Visible bool
}

// Reveal places and shows the role marker of the possessed body
// Active only while the body is possessed; disabling always hides the marker
type Reveal struct {
	a              *Actor
	scope          event.Scope
	marker         Marker
	revealed       bool
	alwaysRevealed bool
}

func newReveal(a *Actor) *Reveal {
	return &Reveal{a: a}
}

// Enable subscribes to EndGame
func (r *Reveal) Enable() error {
	if r.scope.Active() {
		return nil
	}
	return r.scope.Subscribe(r.a.deps.Bus,
		event.Listen(func(event.GameEvent) { r.SetRevealed(true) }, event.EventEndGame),
	)
}

// Disable unsubscribes and hides the marker
func (r *Reveal) Disable() {
	r.scope.Close()
	r.SetRevealed(false)
}

// SetAlwaysRevealed sets the debug flag, evaluated on the next Frame
func (r *Reveal) SetAlwaysRevealed(v bool) {
	r.alwaysRevealed = v
}

// Frame re-evaluates the always-revealed flag
func (r *Reveal) Frame() {
	if r.alwaysRevealed {
		r.SetRevealed(true)
	}
}

// SetRevealed shows the marker at its resting offset, pushed along the actor forward axis
// when the body plays the Hunter, or hides it
func (r *Reveal) SetRevealed(v bool) {
	r.revealed = v
	r.a.deps.Status.Bools.Get("actor." + r.a.name + ".revealed").Store(v)
	if !v {
		r.marker.Visible = false
		return
	}

	offset := mgl64.Vec3{0, r.a.cfg.RevealRestHeight, 0}
	if r.a.IsHunter() {
		offset = offset.Add(r.a.deps.Body.Forward().Mul(r.a.cfg.RevealForwardOffset))
	}
	r.marker = Marker{Offset: offset, Visible: true}
}

// IsRevealed reports the reveal state
func (r *Reveal) IsRevealed() bool {
	return r.revealed
}

// Marker returns the current marker
func (r *Reveal) Marker() Marker {
	return r.marker
}

// MarkerPosition returns the marker world position
func (r *Reveal) MarkerPosition() mgl64.Vec3 {
	return r.a.deps.Body.Position().Add(r.marker.Offset)
}
