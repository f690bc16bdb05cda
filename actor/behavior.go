package actor

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/animation"
	"github.com/lixenwraith/mad-mansion/engine"
	"github.com/lixenwraith/mad-mansion/event"
)

// Flag is a transient behavior state
type Flag uint8

const (
	FlagScared Flag = iota
	FlagConfused
)

// String returns the animator parameter name of the flag
func (f Flag) String() string {
	if f == FlagConfused {
		return animation.ParamConfused
	}
	return animation.ParamScared
}

// transition is a delayed flag write, optionally followed by another write
// scheduled relative to the moment this one applies
type transition struct {
	flag  Flag
	value bool
	then  *followUp
}

type followUp struct {
	delay time.Duration
	flag  Flag
	value bool
}

// Behavior drives IsScared and IsConfused through delayed transitions
// Every trigger spawns an independent chain; overlapping chains are kept and the last write wins
type Behavior struct {
	a        *Actor
	pending  engine.Timeline[transition]
	scared   bool
	confused bool
}

func newBehavior(a *Actor) *Behavior {
	return &Behavior{a: a}
}

// IsScared returns the scared flag
func (b *Behavior) IsScared() bool { return b.scared }

// IsConfused returns the confused flag
func (b *Behavior) IsConfused() bool { return b.confused }

// Pending returns the number of scheduled transitions
func (b *Behavior) Pending() int { return b.pending.Len() }

// Clear drops every scheduled transition
func (b *Behavior) Clear() { b.pending.Clear() }

func (b *Behavior) schedule(delay time.Duration, t transition) {
	b.pending.Schedule(b.a.deps.Clock.Now().Add(delay), t)
}

func (b *Behavior) onHaunt(p event.HauntPayload) {
	if !p.Succeeded {
		return
	}
	room := b.a.Room()
	b.a.log.WithFields(logrus.Fields{
		"start":     p.IsStart,
		"room":      p.Room,
		"same_room": room != event.NoRoom && room == p.Room,
	}).Debug("haunt observed")

	b.schedule(b.a.cfg.ReactionDelay, transition{flag: FlagScared, value: p.IsStart})
}

func (b *Behavior) onPossession(p event.PossessionPayload) {
	if !p.Succeeded {
		return
	}
	room := b.a.Room()
	b.a.log.WithFields(logrus.Fields{
		"room":      p.Room,
		"same_room": room != event.NoRoom && room == p.Room,
	}).Debug("possession observed")

	b.schedule(b.a.cfg.ReactionDelay, transition{
		flag:  FlagConfused,
		value: true,
		then:  &followUp{delay: b.a.cfg.ConfusionDuration, flag: FlagConfused, value: false},
	})
}

// Update applies every transition due at now, in due order
func (b *Behavior) Update(now time.Time) {
	for {
		t, ok := b.pending.PopDue(now)
		if !ok {
			return
		}
		b.apply(t.flag, t.value)
		if t.then != nil {
			b.pending.Schedule(now.Add(t.then.delay), transition{flag: t.then.flag, value: t.then.value})
		}
	}
}

func (b *Behavior) apply(f Flag, v bool) {
	switch f {
	case FlagScared:
		b.scared = v
	case FlagConfused:
		b.confused = v
	}
	b.a.deps.Animator.SetBool(f.String(), v)
	b.a.deps.Status.Bools.Get("actor." + b.a.name + "." + f.String()).Store(v)
	b.a.log.WithFields(logrus.Fields{"flag": f.String(), "value": v}).Info("behavior transition")
}
