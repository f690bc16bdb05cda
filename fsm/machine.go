package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/mad-mansion/event"
)

// NewMachine returns an empty machine; StateTimeExceeds is always available as a guard factory
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes:           make(map[StateID]*Node[T]),
		guardReg:        make(map[string]GuardFunc[T]),
		guardFactoryReg: make(map[string]GuardFactoryFunc[T]),
		actionReg:       make(map[string]ActionFunc[T]),
	}
	m.RegisterGuardFactory("StateTimeExceeds", stateTimeExceeds[T])
	return m
}

// RegisterGuard, RegisterGuardFactory and RegisterAction must run before LoadConfig
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

func (m *Machine[T]) RegisterGuardFactory(name string, factory GuardFactoryFunc[T]) {
	m.guardFactoryReg[name] = factory
}

func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters initialID, running OnEnter for the chain from Root
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	if len(node.Path) == 0 {
		return fmt.Errorf("state %q has no compiled path", node.Name)
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update accumulates dt, runs the leaf OnUpdate hooks and then at most one Tick transition
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt
	runActions(ctx, m.nodes[m.activeStateID].OnUpdate)
	m.fire(ctx, event.EventTick)
}

// HandleEvent reports whether et caused a transition; Tick is never accepted here
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == event.EventTick {
		return false
	}
	return m.fire(ctx, eventType)
}

// fire tries the active leaf first, then each ancestor up to Root
func (m *Machine[T]) fire(ctx T, et event.EventType) bool {
	for id := m.activeStateID; id != StateNone; {
		node := m.nodes[id]
		for _, t := range node.Transitions {
			if t.Event == et && (t.Guard == nil || t.Guard(ctx)) {
				m.transition(ctx, t.TargetID)
				return true
			}
		}
		id = node.ParentID
	}
	return false
}

// sharedPrefix is the length of the common ancestry of two root-first paths
func sharedPrefix(a, b []StateID) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// transition exits up to the common ancestor and enters down to targetID
// Self transitions are no-ops
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if targetID == m.activeStateID {
		return
	}
	target, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state %d", targetID))
	}

	keep := sharedPrefix(m.activePath, target.Path)
	for i := len(m.activePath) - 1; i >= keep; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	for _, id := range target.Path[keep:] {
		runActions(ctx, m.nodes[id].OnEnter)
	}

	m.activeStateID = targetID
	m.activePath = append(m.activePath[:0], target.Path...)
	m.timeInState = 0
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx, m.InitialStateID)
}

func (m *Machine[T]) ActiveStateID() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current leaf state name, empty before Init
func (m *Machine[T]) ActiveStateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState is reset on every transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// GetStateID looks a state up by name
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// stateTimeExceeds builds a guard passing once the active state has lasted ms milliseconds
func stateTimeExceeds[T any](m *Machine[T], args map[string]any) (GuardFunc[T], error) {
	raw, ok := args["ms"]
	if !ok {
		return nil, fmt.Errorf("StateTimeExceeds requires 'ms'")
	}
	var d time.Duration
	switch v := raw.(type) {
	case int:
		d = time.Duration(v) * time.Millisecond
	case int64:
		d = time.Duration(v) * time.Millisecond
	case float64:
		d = time.Duration(v * float64(time.Millisecond))
	default:
		return nil, fmt.Errorf("StateTimeExceeds 'ms' has unsupported type %T", raw)
	}
	return func(T) bool { return m.timeInState >= d }, nil
}
