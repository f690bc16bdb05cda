package actor

import (
	"github.com/lixenwraith/mad-mansion/input"
)

// GhostControl handles the ghost device on the possessed body
type GhostControl struct {
	a *Actor
}

func newGhostControl(a *Actor) *GhostControl {
	return &GhostControl{a: a}
}

// HandleInput submits the Ghost vector and forwards possession and haunt requests
func (g *GhostControl) HandleInput(src input.Source) {
	if g.a.paused {
		return
	}
	v, ok := input.StickVector(src)
	if !ok {
		return
	}
	g.a.arbiter.Submit(v, input.PriorityGhost)

	req := g.a.deps.Ghost
	if req == nil {
		return
	}
	if src.WasPressed(input.ButtonPossess) {
		req.RequestPossession(g.a, g.a.Room())
	}
	if src.WasPressed(input.ButtonHaunt) {
		req.RequestHaunt(g.a.Room())
	}
}

// Record stores the body position in the ghost tracker
func (g *GhostControl) Record() {
	if g.a.paused || g.a.deps.Tracker == nil {
		return
	}
	g.a.deps.Tracker.Record(g.a.deps.Clock.GameTime(), g.a.Position(), g.a.Room())
}

// HunterControl handles the hunter device: movement, smell and catch
type HunterControl struct {
	a         *Actor
	proximity *Proximity
}

func newHunterControl(a *Actor, p *Proximity) *HunterControl {
	return &HunterControl{a: a, proximity: p}
}

// HandleInput submits the Hunter vector, drives the smell signal and forwards catch attempts
func (h *HunterControl) HandleInput(src input.Source) {
	v, ok := input.StickVector(src)
	if !ok {
		return
	}
	h.a.arbiter.Submit(v, input.PriorityHunter)

	h.proximity.Update(h.a.Position(), src.IsPressed(input.ButtonSmell))

	if src.WasPressed(input.ButtonCatch) {
		h.TryCatch()
	}
}

// TryCatch is the catch extension point; suppressed once a catch has happened
func (h *HunterControl) TryCatch() {
	if h.a.caught || h.a.deps.Catcher == nil {
		return
	}
	h.a.deps.Catcher.TryCatch(h.a)
}
