package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/mad-mansion/event"
)

// StateID names a node in the compiled graph; Root is always 1
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// GuardFunc gates a transition
type GuardFunc[T any] func(ctx T) bool

// ActionFunc is a state lifecycle hook
type ActionFunc[T any] func(ctx T, args any)

// GuardFactoryFunc builds a guard from guard_args in the graph file
type GuardFactoryFunc[T any] func(m *Machine[T], args map[string]any) (GuardFunc[T], error)

// Action is a compiled hook with its bound argument
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

// Transition moves to TargetID when Event fires and Guard passes
// Event is EventTick for transitions evaluated every Update; a nil Guard always passes
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType
	Guard    GuardFunc[T]
}

// Node is one state; children inherit the transitions of their ancestors
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Root first, this node last
	Path []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	Transitions []Transition[T]
}

// Machine is a hierarchical state machine over context type T
// The graph is fixed after LoadConfig or CompilePaths; the runtime fields change on every transition
type Machine[T any] struct {
	nodes map[StateID]*Node[T]

	// InitialStateID is the state Init and Reset enter
	InitialStateID StateID

	activeStateID StateID
	activePath    []StateID
	timeInState   time.Duration

	guardReg        map[string]GuardFunc[T]
	guardFactoryReg map[string]GuardFactoryFunc[T]
	actionReg       map[string]ActionFunc[T]
}

// AddState inserts or replaces a node; call CompilePaths once the graph is complete
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	n := &Node[T]{ID: id, Name: name, ParentID: parentID}
	m.nodes[id] = n
	return n
}

// AddTransition appends t to the source node, ignored for unknown sources
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	n, ok := m.nodes[sourceID]
	if !ok {
		return
	}
	n.Transitions = append(n.Transitions, t)
}

// CompilePaths resolves every node's ancestry, failing on dangling parents and cycles
func (m *Machine[T]) CompilePaths() error {
	for id, n := range m.nodes {
		var chain []StateID
		for cur := n; ; {
			chain = append(chain, cur.ID)
			if cur.ParentID == StateNone {
				break
			}
			if len(chain) > len(m.nodes) {
				return fmt.Errorf("node %d has a parent cycle", id)
			}
			parent, ok := m.nodes[cur.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", id, cur.ParentID)
			}
			cur = parent
		}

		n.Path = make([]StateID, len(chain))
		for i, sid := range chain {
			n.Path[len(chain)-1-i] = sid
		}
	}
	return nil
}
