package fsm

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/mad-mansion/event"
)

const rootName = "Root"

// graphFile is the YAML shape of a state graph
type graphFile struct {
	Initial string               `yaml:"initial"`
	States  map[string]*stateDef `yaml:"states"`
}

type stateDef struct {
	Parent      string    `yaml:"parent,omitempty"`
	OnEnter     []hookDef `yaml:"on_enter,omitempty"`
	OnUpdate    []hookDef `yaml:"on_update,omitempty"`
	OnExit      []hookDef `yaml:"on_exit,omitempty"`
	Transitions []edgeDef `yaml:"transitions,omitempty"`
}

// edgeDef with an empty trigger fires on Tick
type edgeDef struct {
	Trigger   string         `yaml:"trigger"`
	Target    string         `yaml:"target"`
	Guard     string         `yaml:"guard,omitempty"`
	GuardArgs map[string]any `yaml:"guard_args,omitempty"`
}

type hookDef struct {
	Action string `yaml:"action"`
	Arg    string `yaml:"arg,omitempty"`
}

// LoadConfig replaces the graph with the one described by data
// Every state, guard, action and event name must resolve; the machine is left stopped
func (m *Machine[T]) LoadConfig(data []byte) error {
	var g graphFile
	if err := yaml.Unmarshal(data, &g); err != nil {
		return fmt.Errorf("decode state graph: %w", err)
	}

	ids := assignIDs(g.States)

	m.nodes = make(map[StateID]*Node[T], len(ids))
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.AddState(StateRoot, rootName, StateNone)

	for name, id := range ids {
		def := g.States[name]
		if def == nil {
			def = &stateDef{}
		}

		node := m.nodes[StateRoot]
		if id != StateRoot {
			parent := def.Parent
			if parent == "" {
				parent = rootName
			}
			pid, ok := ids[parent]
			if !ok {
				return fmt.Errorf("state %q: unknown parent %q", name, parent)
			}
			node = m.AddState(id, name, pid)
		}

		if err := m.fillNode(node, def, ids); err != nil {
			return fmt.Errorf("state %q: %w", name, err)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initial, ok := ids[g.Initial]
	if !ok || initial == StateRoot {
		return fmt.Errorf("initial state '%s' not found", g.Initial)
	}
	m.InitialStateID = initial
	return nil
}

// assignIDs numbers states in name order so IDs are stable across loads
func assignIDs(states map[string]*stateDef) map[string]StateID {
	names := make([]string, 0, len(states))
	for name := range states {
		if name != rootName {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	ids := make(map[string]StateID, len(names)+1)
	ids[rootName] = StateRoot
	for i, name := range names {
		ids[name] = StateRoot + 1 + StateID(i)
	}
	return ids
}

func (m *Machine[T]) fillNode(node *Node[T], def *stateDef, ids map[string]StateID) error {
	hooks := []struct {
		label string
		dst   *[]Action[T]
		src   []hookDef
	}{
		{"on_enter", &node.OnEnter, def.OnEnter},
		{"on_update", &node.OnUpdate, def.OnUpdate},
		{"on_exit", &node.OnExit, def.OnExit},
	}
	for _, h := range hooks {
		actions, err := m.resolveHooks(h.src)
		if err != nil {
			return fmt.Errorf("%s: %w", h.label, err)
		}
		*h.dst = actions
	}

	for _, e := range def.Transitions {
		t, err := m.resolveEdge(e, ids)
		if err != nil {
			return err
		}
		node.Transitions = append(node.Transitions, t)
	}
	return nil
}

func (m *Machine[T]) resolveHooks(defs []hookDef) ([]Action[T], error) {
	out := make([]Action[T], 0, len(defs))
	for _, s := range defs {
		fn, ok := m.actionReg[s.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action %q", s.Action)
		}
		a := Action[T]{Func: fn}
		if s.Arg != "" {
			a.Args = s.Arg
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *Machine[T]) resolveEdge(e edgeDef, ids map[string]StateID) (Transition[T], error) {
	target, ok := ids[e.Target]
	if !ok {
		return Transition[T]{}, fmt.Errorf("unknown target %q", e.Target)
	}

	trigger := e.Trigger
	if trigger == "" {
		trigger = event.EventTick.String()
	}
	et, ok := event.GetEventType(trigger)
	if !ok {
		return Transition[T]{}, fmt.Errorf("unknown event %q", trigger)
	}

	t := Transition[T]{TargetID: target, Event: et}
	if e.Guard == "" {
		return t, nil
	}
	if factory, ok := m.guardFactoryReg[e.Guard]; ok {
		g, err := factory(m, e.GuardArgs)
		if err != nil {
			return Transition[T]{}, fmt.Errorf("guard %q: %w", e.Guard, err)
		}
		t.Guard = g
		return t, nil
	}
	g, ok := m.guardReg[e.Guard]
	if !ok {
		return Transition[T]{}, fmt.Errorf("unknown guard %q", e.Guard)
	}
	t.Guard = g
	return t, nil
}
