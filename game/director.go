package game

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/actor"
	"github.com/lixenwraith/mad-mansion/config"
	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/logger"
	"github.com/lixenwraith/mad-mansion/status"
	"github.com/lixenwraith/mad-mansion/vmath"
)

// Cast lists the actors the director arbitrates between
type Cast interface {
	Actors() []*actor.Actor
}

// Director runs the round: haunts, possession jumps and catch attempts
// It is the only publisher of Haunt, Possession, Catch and EndGame outside scripted runs
type Director struct {
	cfg   config.DirectorConfig
	bus   *event.Bus
	clock actor.Clock
	cast  Cast

	scope event.Scope

	started bool
	ended   bool

	haunting      bool
	hauntRoom     event.RoomID
	hauntEnds     time.Time
	hauntCooldown time.Time

	possessionReady time.Time
	revealed        float64

	statHaunting *atomic.Bool
	statEnded    *atomic.Bool
	statRevealed *status.AtomicFloat

	log logrus.FieldLogger
}

// NewDirector creates a director; reg and log may be nil
func NewDirector(cfg config.DirectorConfig, bus *event.Bus, clock actor.Clock, cast Cast, reg *status.Registry, log logrus.FieldLogger) *Director {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Director{
		cfg:          cfg,
		bus:          bus,
		clock:        clock,
		cast:         cast,
		hauntRoom:    event.NoRoom,
		statHaunting: reg.Bools.Get("director.haunting"),
		statEnded:    reg.Bools.Get("director.ended"),
		statRevealed: reg.Floats.Get("director.revealed"),
		log:          log.WithField("component", "director"),
	}
}

// Enable subscribes to StartGame and EndGame
func (d *Director) Enable() error {
	if d.scope.Active() {
		return nil
	}
	return d.scope.Subscribe(d.bus,
		event.Listen(func(event.GameEvent) {
			d.started = true
			d.log.Info("round started")
		}, event.EventStartGame),
		event.Listen(func(event.GameEvent) {
			d.ended = true
			d.statEnded.Store(true)
			d.log.Info("round ended")
		}, event.EventEndGame),
	)
}

// Disable unsubscribes
func (d *Director) Disable() {
	d.scope.Close()
}

// Started reports whether StartGame has been observed
func (d *Director) Started() bool { return d.started }

// Ended reports whether the round is over
func (d *Director) Ended() bool { return d.ended }

// Haunting reports an active haunt and its room
func (d *Director) Haunting() (bool, event.RoomID) { return d.haunting, d.hauntRoom }

// RevealedPercentage is how exposed the ghost is, in [0,1]; every successful possession raises it
func (d *Director) RevealedPercentage() float64 { return d.revealed }

// RequestHaunt starts a haunt in room unless one is active or cooling down
// The result is published either way
func (d *Director) RequestHaunt(room event.RoomID) {
	if d.ended {
		return
	}
	now := d.clock.GameTime()
	ok := !d.haunting && !now.Before(d.hauntCooldown) && room != event.NoRoom

	d.log.WithFields(logrus.Fields{"room": room, "succeeded": ok}).Info("haunt requested")
	if ok {
		d.haunting = true
		d.hauntRoom = room
		d.hauntEnds = now.Add(d.cfg.HauntDuration)
		d.statHaunting.Store(true)
	}
	d.bus.Publish(event.EventHaunt, event.HauntPayload{IsStart: true, Succeeded: ok, Room: room})
}

// RequestPossession moves ghost control from the requesting body to the nearest other actor
// within the possession radius
func (d *Director) RequestPossession(from *actor.Actor, room event.RoomID) {
	if d.ended || from == nil {
		return
	}
	now := d.clock.GameTime()

	var target *actor.Actor
	if !now.Before(d.possessionReady) {
		target = d.nearest(from, d.cfg.PossessionRadius, func(a *actor.Actor) bool { return a != from })
	}

	if target == nil {
		d.log.WithField("from", from.Name()).Debug("possession failed")
		d.bus.Publish(event.EventPossession, event.PossessionPayload{Succeeded: false, Room: room})
		return
	}

	if err := from.SetPossessed(false); err != nil {
		d.log.WithError(err).Warn("release possession")
	}
	if err := target.SetPossessed(true); err != nil {
		d.log.WithError(err).Warn("possess target")
	}
	d.possessionReady = now.Add(d.cfg.PossessionCost)
	d.revealed = vmath.Clamp01(d.revealed + d.cfg.RevealStep)
	d.statRevealed.Set(d.revealed)

	d.log.WithFields(logrus.Fields{
		"from":     from.Name(),
		"to":       target.Name(),
		"revealed": d.revealed,
	}).Info("possession moved")
	d.bus.Publish(event.EventPossession, event.PossessionPayload{Succeeded: true, Room: room})
}

// TryCatch succeeds when the ghost body is within the catch radius of the hunter
// A success publishes Catch then EndGame
func (d *Director) TryCatch(hunter *actor.Actor) {
	if d.ended || hunter == nil {
		return
	}
	ghost := d.nearest(hunter, d.cfg.CatchRadius, func(a *actor.Actor) bool {
		return a != hunter && a.IsPossessed()
	})

	ok := ghost != nil
	d.log.WithFields(logrus.Fields{"hunter": hunter.Name(), "successful": ok}).Info("catch attempted")
	d.bus.Publish(event.EventCatch, event.CatchPayload{Successful: ok})
	if ok {
		d.bus.Publish(event.EventEndGame, nil)
	}
}

// Update expires the active haunt; now is game time, so haunts and cooldowns hold still while paused
func (d *Director) Update(now time.Time) {
	if !d.haunting || now.Before(d.hauntEnds) {
		return
	}
	d.haunting = false
	d.hauntCooldown = now.Add(d.cfg.HauntCooldown)
	d.statHaunting.Store(false)

	room := d.hauntRoom
	d.hauntRoom = event.NoRoom
	d.log.WithField("room", room).Info("haunt ended")
	d.bus.Publish(event.EventHaunt, event.HauntPayload{IsStart: false, Succeeded: true, Room: room})
}

func (d *Director) nearest(from *actor.Actor, radius float64, keep func(*actor.Actor) bool) *actor.Actor {
	var best *actor.Actor
	bestDist := math.Inf(1)
	origin := from.Position()
	for _, a := range d.cast.Actors() {
		if !keep(a) {
			continue
		}
		dist := vmath.Distance(origin, a.Position())
		if dist <= radius && dist < bestDist {
			best, bestDist = a, dist
		}
	}
	return best
}
