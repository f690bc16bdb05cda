package actor

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/input"
	"github.com/lixenwraith/mad-mansion/logger"
	"github.com/lixenwraith/mad-mansion/parameter"
	"github.com/lixenwraith/mad-mansion/physics"
	"github.com/lixenwraith/mad-mansion/status"
)

// ErrMissingCollaborator is returned when an actor is built without a required dependency
var ErrMissingCollaborator = errors.New("actor: missing required collaborator")

// Role is the gameplay role assigned to an actor
type Role uint8

const (
	RoleNPC Role = iota
	RoleHunter
)

// String returns the role name
func (r Role) String() string {
	if r == RoleHunter {
		return "Hunter"
	}
	return "NPC"
}

// Animation is the animator sink driven by the motor and behavior
type Animation interface {
	SetBool(param string, v bool)
	Bool(param string) bool
	SetFloat(param string, v float64)
	SetSpeed(rate float64)
	State() string
	HandleEvent(et event.EventType) bool
}

// Clock provides sim time for delayed transitions and game time for tracking
type Clock interface {
	Now() time.Time
	GameTime() time.Time
}

// TimeScales provides the externally owned speed multipliers
type TimeScales interface {
	For(isHunter bool) float64
}

// AudioSink plays the hunter proximity signal
type AudioSink interface {
	PlayProximitySignal(volume float64)
	StopProximitySignal()
}

// HistoryProvider reports the delayed ghost trail
type HistoryProvider interface {
	HasHistory() bool
	LastKnownPosition() mgl64.Vec3
}

// Recorder stores ghost positions
type Recorder interface {
	Record(at time.Time, pos mgl64.Vec3, room event.RoomID)
}

// RoomLocator maps a world position to a room
type RoomLocator interface {
	RoomAt(pos mgl64.Vec3) event.RoomID
}

// GhostRequests receives ghost-initiated actions
type GhostRequests interface {
	RequestPossession(from *Actor, room event.RoomID)
	RequestHaunt(room event.RoomID)
}

// CatchRequester receives hunter catch attempts
type CatchRequester interface {
	TryCatch(hunter *Actor)
}

// Config holds per-actor tuning
type Config struct {
	MovementSpeed            float64
	RotationSpeed            float64
	RotationSensitivity      float64
	GhostMovementSensitivity float64
	AnimationScale           float64
	ReactionDelay            time.Duration
	ConfusionDuration        time.Duration
	RevealForwardOffset      float64
	RevealRestHeight         float64
	SmellVolumeReduction     float64
}

// DefaultConfig returns the shipped character tuning
func DefaultConfig() Config {
	return Config{
		MovementSpeed:            parameter.MovementSpeed,
		RotationSpeed:            parameter.RotationSpeed,
		RotationSensitivity:      parameter.RotationSensitivity,
		GhostMovementSensitivity: parameter.GhostMovementSensitivity,
		AnimationScale:           parameter.AnimationScale,
		ReactionDelay:            parameter.ReactionDelay,
		ConfusionDuration:        parameter.ConfusionDuration,
		RevealForwardOffset:      parameter.RevealForwardOffset,
		RevealRestHeight:         parameter.RevealRestHeight,
		SmellVolumeReduction:     parameter.SmellVolumeReduction,
	}
}

// Deps are the collaborators injected into an actor
// Body, Animator, Bus, Clock, Scales and Audio are required
type Deps struct {
	Body     physics.Body
	Animator Animation
	Bus      *event.Bus
	Clock    Clock
	Scales   TimeScales
	Audio    AudioSink

	History HistoryProvider
	Tracker Recorder
	Rooms   RoomLocator
	Ghost   GhostRequests
	Catcher CatchRequester
	Status  *status.Registry
	Log     logrus.FieldLogger
}

func (d Deps) validate() error {
	var errs []error
	missing := func(ok bool, name string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCollaborator, name))
		}
	}
	missing(d.Body != nil, "body")
	missing(d.Animator != nil, "animator")
	missing(d.Bus != nil, "event bus")
	missing(d.Clock != nil, "clock")
	missing(d.Scales != nil, "time scales")
	missing(d.Audio != nil, "audio sink")
	return errors.Join(errs...)
}

// Actor is a playable character: a physical body with motor, behavior, reveal marker and
// role controllers. All per-actor state is mutated only by its own components
type Actor struct {
	name string
	cfg  Config
	deps Deps

	role      Role
	possessed bool
	paused    bool
	caught    bool
	enabled   bool

	arbiter  *input.Arbiter
	motor    *Motor
	behavior *Behavior
	reveal   *Reveal
	ghost    *GhostControl
	hunter   *HunterControl

	scope event.Scope

	statPossessed *atomic.Bool
	statHunter    *atomic.Bool
	statPaused    *atomic.Bool

	log logrus.FieldLogger
}

// New validates deps and assembles an actor; the actor starts paused and disabled
func New(name string, cfg Config, deps Deps) (*Actor, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("actor %q: %w", name, err)
	}
	if deps.Status == nil {
		deps.Status = status.NewRegistry()
	}
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}

	a := &Actor{
		name:          name,
		cfg:           cfg,
		deps:          deps,
		paused:        true,
		arbiter:       input.NewArbiter(cfg.GhostMovementSensitivity),
		statPossessed: deps.Status.Bools.Get("actor." + name + ".possessed"),
		statHunter:    deps.Status.Bools.Get("actor." + name + ".hunter"),
		statPaused:    deps.Status.Bools.Get("actor." + name + ".paused"),
		log:           deps.Log.WithField("actor", name),
	}
	a.statPaused.Store(true)

	a.motor = newMotor(a)
	a.behavior = newBehavior(a)
	a.reveal = newReveal(a)
	a.ghost = newGhostControl(a)
	prox, err := NewProximity(deps.Audio, deps.History, cfg.SmellVolumeReduction)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", name, err)
	}
	a.hunter = newHunterControl(a, prox)
	return a, nil
}

// Name returns the actor name
func (a *Actor) Name() string { return a.name }

// Body returns the physical body
func (a *Actor) Body() physics.Body { return a.deps.Body }

// Position returns the body position
func (a *Actor) Position() mgl64.Vec3 { return a.deps.Body.Position() }

// Room returns the room containing the actor, NoRoom without a locator
func (a *Actor) Room() event.RoomID {
	if a.deps.Rooms == nil {
		return event.NoRoom
	}
	return a.deps.Rooms.RoomAt(a.deps.Body.Position())
}

// Arbiter returns the input arbiter fed by the controllers
func (a *Actor) Arbiter() *input.Arbiter { return a.arbiter }

// Motor returns the motor component
func (a *Actor) Motor() *Motor { return a.motor }

// Behavior returns the behavior component
func (a *Actor) Behavior() *Behavior { return a.behavior }

// Reveal returns the reveal controller
func (a *Actor) Reveal() *Reveal { return a.reveal }

// Proximity returns the hunter proximity emitter
func (a *Actor) Proximity() *Proximity { return a.hunter.proximity }

// IsHunter reports the Hunter role
func (a *Actor) IsHunter() bool { return a.role == RoleHunter }

// IsPossessed reports ghost control of this body
func (a *Actor) IsPossessed() bool { return a.possessed }

// IsPaused reports the mirrored game pause
func (a *Actor) IsPaused() bool { return a.paused }

// IsCaught reports whether a successful catch has been observed
func (a *Actor) IsCaught() bool { return a.caught }

// IsEnabled reports whether the actor is subscribed to the bus
func (a *Actor) IsEnabled() bool { return a.enabled }

// Role returns the assigned role
func (a *Actor) Role() Role { return a.role }

// Enable subscribes the motor and behavior, then the role controllers
// On failure nothing stays subscribed
func (a *Actor) Enable() error {
	if a.enabled {
		return nil
	}
	err := a.scope.Subscribe(a.deps.Bus,
		event.Listen(func(event.GameEvent) { a.setPaused(true) }, event.EventPauseGame),
		event.Listen(func(event.GameEvent) { a.setPaused(false) }, event.EventResumeGame),
		event.On(event.EventCatch, a.motor.onCatch),
		event.On(event.EventHaunt, a.behavior.onHaunt),
		event.On(event.EventPossession, a.behavior.onPossession),
	)
	if err != nil {
		return fmt.Errorf("actor %q enable: %w", a.name, err)
	}
	a.enabled = true

	if a.possessed {
		if err := a.reveal.Enable(); err != nil {
			a.Disable()
			return fmt.Errorf("actor %q enable: %w", a.name, err)
		}
	}
	a.log.Debug("enabled")
	return nil
}

// Disable unsubscribes everything and hides the reveal marker
// Pending behavior transitions keep running
func (a *Actor) Disable() {
	a.reveal.Disable()
	a.scope.Close()
	a.enabled = false
	a.hunter.proximity.Stop()
}

// Destroy disables the actor and drops pending behavior transitions
func (a *Actor) Destroy() {
	a.Disable()
	a.behavior.Clear()
}

// SetRole assigns the gameplay role; leaving Hunter nulls the Hunter vector
func (a *Actor) SetRole(r Role) {
	if a.role == r {
		return
	}
	wasHunter := a.role == RoleHunter
	a.role = r
	a.statHunter.Store(r == RoleHunter)
	if wasHunter {
		a.arbiter.Clear(input.PriorityHunter)
	}
	if r != RoleHunter {
		a.hunter.proximity.Stop()
	}
	a.log.WithField("role", r.String()).Info("role assigned")
}

// SetPossessed moves ghost control onto or off this body
// Losing ghost control nulls the Ghost vector
// The reveal controller is active only while possessed
func (a *Actor) SetPossessed(p bool) error {
	if a.possessed == p {
		return nil
	}
	a.possessed = p
	a.statPossessed.Store(p)
	if !p {
		a.arbiter.Clear(input.PriorityGhost)
	}
	a.log.WithField("possessed", p).Info("possession changed")

	if !a.enabled {
		return nil
	}
	if p {
		return a.reveal.Enable()
	}
	a.reveal.Disable()
	return nil
}

// SetAlwaysRevealed sets the always-revealed debug flag
func (a *Actor) SetAlwaysRevealed(v bool) {
	a.reveal.SetAlwaysRevealed(v)
}

func (a *Actor) setPaused(p bool) {
	a.paused = p
	a.statPaused.Store(p)
}

func (a *Actor) arbiterState() input.ArbiterState {
	return input.ArbiterState{
		Paused:    a.paused,
		Hunter:    a.IsHunter(),
		Possessed: a.possessed,
		Caught:    a.caught,
	}
}

// HandleInput runs the role controllers for this frame
// Either source may be nil when no device is assigned
func (a *Actor) HandleInput(ghost, hunter input.Source) {
	if a.possessed {
		a.ghost.HandleInput(ghost)
	}
	if a.IsHunter() {
		a.hunter.HandleInput(hunter)
	}
}

// FrameTick runs the frame-phase components: input commit, transition timers,
// rotation and reveal
func (a *Actor) FrameTick(dt time.Duration) {
	a.arbiter.Commit()
	a.behavior.Update(a.deps.Clock.Now())
	a.motor.FrameStep(dt)
	if a.possessed && a.enabled {
		a.reveal.Frame()
	}
}

// PhysicsTick runs the physics-phase components: arbitration, force and ghost tracking
func (a *Actor) PhysicsTick() {
	a.motor.PhysicsStep()
	if a.possessed {
		a.ghost.Record()
	}
}
