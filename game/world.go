package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/actor"
	"github.com/lixenwraith/mad-mansion/animation"
	"github.com/lixenwraith/mad-mansion/audio"
	"github.com/lixenwraith/mad-mansion/config"
	"github.com/lixenwraith/mad-mansion/engine"
	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/input"
	"github.com/lixenwraith/mad-mansion/logger"
	"github.com/lixenwraith/mad-mansion/physics"
	"github.com/lixenwraith/mad-mansion/status"
	"github.com/lixenwraith/mad-mansion/tracker"
)

// Deps are optional collaborators; zero values are replaced with working defaults
type Deps struct {
	Audio  *audio.SoundManager
	Status *status.Registry
	Log    logrus.FieldLogger
	Epoch  time.Time
	Cast   []Spawn
	// AnimatorGraph overrides the animator state graph YAML
	AnimatorGraph string
}

// entity binds an actor to the concrete body and animator the world steps
type entity struct {
	actor *actor.Actor
	body  *physics.RigidBody
	anim  *animation.Animator
}

// World owns every runtime collaborator and implements engine.Stepper
type World struct {
	cfg *config.Config

	bus      *event.Bus
	clock    *engine.SimClock
	scales   *engine.TimeScales
	reg      *status.Registry
	tracker  *tracker.GhostTracker
	rooms    GridRooms
	audio    *audio.SoundManager
	director *Director
	assigner *input.Assigner

	entities []entity
	actors   []*actor.Actor

	devices []input.Device
	// Fixed sources bypass device assignment for scripted runs
	fixed               bool
	ghostSrc, hunterSrc input.Source

	scope   event.Scope
	started bool

	log logrus.FieldLogger
}

// New validates cfg and the cast and assembles the world; call Start before stepping
func New(cfg *config.Config, deps Deps) (*World, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world config: %w", err)
	}
	if deps.Cast == nil {
		deps.Cast = DefaultCast()
	}
	if err := validateCast(deps.Cast); err != nil {
		return nil, err
	}
	if deps.Status == nil {
		deps.Status = status.NewRegistry()
	}
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}
	if deps.Epoch.IsZero() {
		deps.Epoch = time.Now()
	}
	if deps.Audio == nil {
		deps.Audio = audio.NewSoundManager(cfg.AudioConfig(), deps.Log)
	}

	w := &World{
		cfg:   cfg,
		reg:   deps.Status,
		audio: deps.Audio,
		rooms: NewGridRooms(cfg.Sim.ArenaWidth, cfg.Sim.ArenaDepth, cfg.Sim.RoomColumns, cfg.Sim.RoomRows),
		log:   deps.Log.WithField("component", "world"),
	}
	w.bus = event.NewBus(deps.Log)
	w.clock = engine.NewSimClock(deps.Epoch)
	// Game time only runs once assignment resumes the game
	w.clock.Pause()

	w.scales = engine.NewTimeScales(w.reg)
	w.scales.SetTimeScale(cfg.Sim.TimeScale)
	w.scales.SetHunterTimeScale(cfg.Sim.HunterTimeScale)

	var err error
	w.tracker, err = tracker.New(w.clock, cfg.Tracker.HistoryDelay, cfg.Tracker.MaxSamples)
	if err != nil {
		return nil, err
	}
	w.director = NewDirector(cfg.Director, w.bus, w.clock, w, w.reg, deps.Log)
	w.assigner, err = input.NewAssigner(w.bus, cfg.Sim.AssignmentDelay, deps.Log)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, s := range deps.Cast {
		if err := w.spawn(s, deps); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) spawn(s Spawn, deps Deps) error {
	body := physics.NewRigidBody(s.Pos)
	anim, err := animation.New(deps.AnimatorGraph)
	if err != nil {
		return fmt.Errorf("actor %q animator: %w", s.Name, err)
	}

	a, err := actor.New(s.Name, w.cfg.ActorConfig(), actor.Deps{
		Body:     body,
		Animator: anim,
		Bus:      w.bus,
		Clock:    w.clock,
		Scales:   w.scales,
		Audio:    w.audio,
		History:  w.tracker,
		Tracker:  w.tracker,
		Rooms:    w.rooms,
		Ghost:    w.director,
		Catcher:  w.director,
		Status:   w.reg,
		Log:      deps.Log,
	})
	if err != nil {
		return err
	}
	if s.Hunter {
		a.SetRole(actor.RoleHunter)
	}
	if err := a.SetPossessed(s.Possessed); err != nil {
		return err
	}

	w.entities = append(w.entities, entity{actor: a, body: body, anim: anim})
	w.actors = append(w.actors, a)
	return nil
}

// Start enables the director, the haunt sting and every actor
func (w *World) Start() error {
	if w.started {
		return nil
	}
	err := w.scope.Subscribe(w.bus,
		event.Listen(func(event.GameEvent) { w.clock.Pause() }, event.EventPauseGame),
		event.Listen(func(event.GameEvent) { w.clock.Resume() }, event.EventResumeGame),
		event.Listen(func(event.GameEvent) { w.resetAnimators() }, event.EventStartGame),
		audio.NewHauntStingPlayer(w.audio),
	)
	if err != nil {
		return fmt.Errorf("world start: %w", err)
	}
	if err := w.director.Enable(); err != nil {
		w.scope.Close()
		return fmt.Errorf("world start: %w", err)
	}
	for _, a := range w.actors {
		if err := a.Enable(); err != nil {
			w.Stop()
			return fmt.Errorf("world start: %w", err)
		}
	}
	w.started = true
	w.log.WithField("actors", len(w.actors)).Info("world started")
	return nil
}

// resetAnimators rewinds every clip graph for a new round
func (w *World) resetAnimators() {
	for _, e := range w.entities {
		if err := e.anim.Reset(); err != nil {
			w.log.WithError(err).WithField("actor", e.actor.Name()).Warn("animator reset failed")
		}
	}
}

// Stop destroys every actor and releases bus subscriptions
func (w *World) Stop() {
	for _, a := range w.actors {
		a.Destroy()
	}
	w.director.Disable()
	w.scope.Close()
	w.audio.StopProximitySignal()
	w.started = false
}

// AddDevice makes a device available for role assignment
func (w *World) AddDevice(dev input.Device) {
	w.devices = append(w.devices, dev)
	w.assigner.DeviceChanged()
}

// BindSources fixes the ghost and hunter sources, bypassing device assignment
func (w *World) BindSources(ghost, hunter input.Source) {
	w.fixed = true
	w.ghostSrc, w.hunterSrc = ghost, hunter
}

func (w *World) sources() (ghost, hunter input.Source) {
	if w.fixed {
		return w.ghostSrc, w.hunterSrc
	}
	return w.assigner.Ghost(), w.assigner.Hunter()
}

// FrameTick implements engine.Stepper
func (w *World) FrameTick(dt time.Duration) {
	now := w.clock.Now()
	for _, dev := range w.devices {
		switch d := dev.(type) {
		case interface{ Update(time.Time) }:
			d.Update(now)
		case interface{ Update() }:
			d.Update()
		}
	}
	if w.fixed {
		for _, src := range []input.Source{w.ghostSrc, w.hunterSrc} {
			if v, ok := src.(*input.VirtualSource); ok {
				v.Update()
			}
		}
	}

	// Input runs on the previous assignment so the assigning press is not also an action.
	// Roles are sampled before dispatch so a possession jump is not handled twice
	ghost, hunter := w.sources()
	routes := make([][2]input.Source, len(w.actors))
	for i, a := range w.actors {
		if a.IsPossessed() {
			routes[i][0] = ghost
		}
		if a.IsHunter() {
			routes[i][1] = hunter
		}
	}
	for i, a := range w.actors {
		a.HandleInput(routes[i][0], routes[i][1])
	}
	if !w.fixed {
		w.assigner.Update(dt, w.devices)
	}

	for _, e := range w.entities {
		e.actor.FrameTick(dt)
		e.anim.Update(dt)
	}
	w.director.Update(w.clock.GameTime())
}

// PhysicsTick implements engine.Stepper
func (w *World) PhysicsTick(step time.Duration) {
	for _, e := range w.entities {
		e.actor.PhysicsTick()
		// Bodies hold still while paused
		if e.actor.IsPaused() {
			continue
		}
		e.body.Integrate(step)
		e.body.ClampBounds(w.cfg.Sim.ArenaWidth, w.cfg.Sim.ArenaDepth)
	}
}

// Actors implements Cast
func (w *World) Actors() []*actor.Actor { return w.actors }

// Actor returns the actor named name
func (w *World) Actor(name string) (*actor.Actor, bool) {
	for _, a := range w.actors {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Animator returns the animator driving the actor named name
func (w *World) Animator(name string) (*animation.Animator, bool) {
	for _, e := range w.entities {
		if e.actor.Name() == name {
			return e.anim, true
		}
	}
	return nil, false
}

// Hunter returns the actor with the Hunter role
func (w *World) Hunter() *actor.Actor {
	for _, a := range w.actors {
		if a.IsHunter() {
			return a
		}
	}
	return nil
}

// Possessed returns the body under ghost control
func (w *World) Possessed() *actor.Actor {
	for _, a := range w.actors {
		if a.IsPossessed() {
			return a
		}
	}
	return nil
}

func (w *World) Bus() *event.Bus                { return w.bus }
func (w *World) Clock() *engine.SimClock        { return w.clock }
func (w *World) Scales() *engine.TimeScales     { return w.scales }
func (w *World) Status() *status.Registry       { return w.reg }
func (w *World) Tracker() *tracker.GhostTracker { return w.tracker }
func (w *World) Rooms() GridRooms               { return w.rooms }
func (w *World) Audio() *audio.SoundManager     { return w.audio }
func (w *World) Director() *Director            { return w.director }
func (w *World) Assigner() *input.Assigner      { return w.assigner }
func (w *World) Config() *config.Config         { return w.cfg }

// NewLoop builds the frame loop driving this world
func (w *World) NewLoop(provider engine.TimeProvider) *engine.Loop {
	return engine.NewLoop(w.cfg.LoopConfig(), w.clock, w, provider, w.reg, w.log)
}
