package animation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/fsm"
)

// State names of the default character graph
const (
	StateIdle     = "Idle"
	StateFidget   = "Fidget"
	StateWalking  = "Walking"
	StateScared   = "Scared"
	StateConfused = "Confused"
	StateCaught   = "Caught"
)

// Parameter names
const (
	ParamScared   = "IsScared"
	ParamConfused = "IsConfused"
	ParamSpeed    = "Speed"
)

// MovingThreshold is the Speed parameter above which the character counts as walking
const MovingThreshold = 0.1

// DefaultGraph is the character controller graph
// A Catch sent to the animator freezes the clip until Reset
const DefaultGraph = `
initial: Idle
states:
  Root:
    transitions:
      - {trigger: Catch, target: Caught}
  Grounded:
    transitions:
      - {target: Confused, guard: Confused}
      - {target: Scared, guard: Scared}
  Idle:
    parent: Grounded
    transitions:
      - {target: Walking, guard: Moving}
      - {target: Fidget, guard: StateTimeExceeds, guard_args: {ms: 5000}}
  Fidget:
    parent: Grounded
    on_enter: [{action: Restart}]
    on_exit: [{action: Restart}]
    transitions:
      - {target: Walking, guard: Moving}
      - {target: Idle, guard: StateTimeExceeds, guard_args: {ms: 1500}}
  Walking:
    parent: Grounded
    transitions:
      - {target: Idle, guard: Still}
  Scared:
    on_enter: [{action: Restart}]
    transitions:
      - {target: Confused, guard: Confused}
      - {target: Idle, guard: NotScared}
  Confused:
    on_enter: [{action: Restart}]
    transitions:
      - {target: Idle, guard: NotConfused}
  Caught:
    on_enter: [{action: Restart}, {action: SetSpeed, arg: "0"}]
    on_update: [{action: SetSpeed, arg: "0"}]
`

// Animator is the character animation controller
// Holds named parameters, a playback rate and the state graph evaluated on Update
type Animator struct {
	bools  map[string]bool
	floats map[string]float64
	speed  float64
	phase  time.Duration

	machine *fsm.Machine[*Animator]
}

// New creates an Animator from a YAML graph; empty graph selects DefaultGraph
func New(graph string) (*Animator, error) {
	if graph == "" {
		graph = DefaultGraph
	}

	a := &Animator{
		bools:   make(map[string]bool),
		floats:  make(map[string]float64),
		speed:   1,
		machine: fsm.NewMachine[*Animator](),
	}
	registerComponents(a.machine)

	if err := a.machine.LoadConfig([]byte(graph)); err != nil {
		return nil, fmt.Errorf("animator graph: %w", err)
	}
	if err := a.machine.Init(a, a.machine.InitialStateID); err != nil {
		return nil, fmt.Errorf("animator init: %w", err)
	}
	return a, nil
}

// registerComponents binds the guards and actions the graph may reference
func registerComponents(m *fsm.Machine[*Animator]) {
	m.RegisterGuard("Scared", func(a *Animator) bool { return a.bools[ParamScared] })
	m.RegisterGuard("NotScared", func(a *Animator) bool { return !a.bools[ParamScared] })
	m.RegisterGuard("Confused", func(a *Animator) bool { return a.bools[ParamConfused] })
	m.RegisterGuard("NotConfused", func(a *Animator) bool { return !a.bools[ParamConfused] })
	m.RegisterGuard("Moving", func(a *Animator) bool { return a.floats[ParamSpeed] > MovingThreshold })
	m.RegisterGuard("Still", func(a *Animator) bool { return a.floats[ParamSpeed] <= MovingThreshold })

	m.RegisterAction("Restart", func(a *Animator, _ any) { a.phase = 0 })
	m.RegisterAction("SetSpeed", func(a *Animator, arg any) {
		s, _ := arg.(string)
		if rate, err := strconv.ParseFloat(s, 64); err == nil {
			a.speed = rate
		}
	})
}

// HandleEvent forwards a game event to the graph, true if a transition matched
func (a *Animator) HandleEvent(et event.EventType) bool {
	return a.machine.HandleEvent(a, et)
}

// Reset returns to the initial state with a rewound playhead
func (a *Animator) Reset() error {
	if err := a.machine.Reset(a); err != nil {
		return fmt.Errorf("animator reset: %w", err)
	}
	a.phase = 0
	return nil
}

// SetBool sets a boolean parameter
func (a *Animator) SetBool(param string, v bool) {
	a.bools[param] = v
}

// Bool returns a boolean parameter, false if never set
func (a *Animator) Bool(param string) bool {
	return a.bools[param]
}

// SetFloat sets a float parameter
func (a *Animator) SetFloat(param string, v float64) {
	a.floats[param] = v
}

// Float returns a float parameter, 0 if never set
func (a *Animator) Float(param string) float64 {
	return a.floats[param]
}

// SetSpeed sets the playback rate
func (a *Animator) SetSpeed(rate float64) {
	a.speed = rate
}

// Speed returns the playback rate
func (a *Animator) Speed() float64 {
	return a.speed
}

// State returns the active state name
func (a *Animator) State() string {
	return a.machine.ActiveStateName()
}

// Phase returns the clip playhead, advanced by dt scaled with the playback rate
func (a *Animator) Phase() time.Duration {
	return a.phase
}

// Update evaluates graph transitions, then advances the playhead at the resulting rate
func (a *Animator) Update(dt time.Duration) {
	a.machine.Update(a, dt)
	a.phase += time.Duration(float64(dt) * a.speed)
}
