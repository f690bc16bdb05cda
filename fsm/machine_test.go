package fsm

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/mad-mansion/event"
)

type testCtx struct {
	flag bool
	log  []string
}

func newTestMachine(t *testing.T, cfg string) *Machine[*testCtx] {
	t.Helper()
	m := NewMachine[*testCtx]()
	m.RegisterGuard("Flag", func(c *testCtx) bool { return c.flag })
	m.RegisterAction("Log", func(c *testCtx, args any) {
		c.log = append(c.log, args.(string))
	})
	if err := m.LoadConfig([]byte(cfg)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return m
}

const hierarchyConfig = `
initial: Idle
states:
  Active:
    on_enter: [{action: Log, arg: enter-active}]
    on_exit: [{action: Log, arg: exit-active}]
    transitions:
      - {trigger: EndGame, target: Done}
  Idle:
    parent: Active
    on_enter: [{action: Log, arg: enter-idle}]
    on_exit: [{action: Log, arg: exit-idle}]
    transitions:
      - {trigger: Tick, target: Busy, guard: Flag}
  Busy:
    parent: Active
    on_enter: [{action: Log, arg: enter-busy}]
    transitions:
      - {target: Idle, guard: StateTimeExceeds, guard_args: {ms: 100}}
  Done:
    on_enter: [{action: Log, arg: enter-done}]
`

func TestMachineHierarchy(t *testing.T) {
	m := newTestMachine(t, hierarchyConfig)
	ctx := &testCtx{}

	if err := m.Init(ctx, m.InitialStateID); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := m.ActiveStateName(); got != "Idle" {
		t.Fatalf("initial state = %q, want Idle", got)
	}

	m.Update(ctx, 10*time.Millisecond)
	if m.ActiveStateName() != "Idle" {
		t.Fatalf("guarded transition fired without flag")
	}

	ctx.flag = true
	m.Update(ctx, 10*time.Millisecond)
	if m.ActiveStateName() != "Busy" {
		t.Fatalf("state = %q, want Busy", m.ActiveStateName())
	}

	ctx.flag = false
	m.Update(ctx, 50*time.Millisecond)
	if m.ActiveStateName() != "Busy" {
		t.Fatalf("left Busy before StateTimeExceeds")
	}
	m.Update(ctx, 60*time.Millisecond)
	if m.ActiveStateName() != "Idle" {
		t.Fatalf("state = %q, want Idle after timeout", m.ActiveStateName())
	}

	// EndGame bubbles from Idle to its parent Active
	if !m.HandleEvent(ctx, event.EventEndGame) {
		t.Fatal("EndGame not handled")
	}
	if m.ActiveStateName() != "Done" {
		t.Fatalf("state = %q, want Done", m.ActiveStateName())
	}

	want := []string{
		"enter-active", "enter-idle",
		"exit-idle", "enter-busy",
		"enter-idle",
		"exit-idle", "exit-active", "enter-done",
	}
	if !reflect.DeepEqual(ctx.log, want) {
		t.Errorf("actions = %v\nwant %v", ctx.log, want)
	}
}

func TestMachineReset(t *testing.T) {
	m := newTestMachine(t, hierarchyConfig)
	ctx := &testCtx{flag: true}
	if err := m.Init(ctx, m.InitialStateID); err != nil {
		t.Fatal(err)
	}
	m.Update(ctx, time.Millisecond)
	ctx.log = nil

	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if m.ActiveStateName() != "Idle" || m.TimeInState() != 0 {
		t.Errorf("after Reset state=%q time=%v", m.ActiveStateName(), m.TimeInState())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		want string
	}{
		{"unknown parent", "initial: A\nstates:\n  A: {parent: Nope}\n", "unknown parent"},
		{"unknown target", "initial: A\nstates:\n  A:\n    transitions: [{trigger: Tick, target: B}]\n", "unknown target"},
		{"unknown event", "initial: A\nstates:\n  A:\n    transitions: [{trigger: Explode, target: A}]\n", "unknown event"},
		{"unknown guard", "initial: A\nstates:\n  A:\n    transitions: [{target: A, guard: Nope}]\n", "unknown guard"},
		{"unknown action", "initial: A\nstates:\n  A:\n    on_enter: [{action: Nope}]\n", "unknown action"},
		{"missing initial", "initial: Z\nstates:\n  A: {}\n", "initial state"},
		{"bad guard args", "initial: A\nstates:\n  A:\n    transitions: [{target: A, guard: StateTimeExceeds}]\n", "requires 'ms'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine[*testCtx]()
			err := m.LoadConfig([]byte(tt.cfg))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestProgrammaticGraph(t *testing.T) {
	m := NewMachine[*testCtx]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(2, "A", StateRoot)
	m.AddState(3, "B", StateRoot)
	m.AddTransition(2, Transition[*testCtx]{TargetID: 3, Event: event.EventCatch})
	if err := m.CompilePaths(); err != nil {
		t.Fatal(err)
	}

	ctx := &testCtx{}
	if err := m.Init(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if m.HandleEvent(ctx, event.EventHaunt) {
		t.Error("unrelated event handled")
	}
	if !m.HandleEvent(ctx, event.EventCatch) || m.ActiveStateID() != 3 {
		t.Errorf("Catch transition not taken, state %d", m.ActiveStateID())
	}
}

func TestCompilePathsRejectsCycle(t *testing.T) {
	m := NewMachine[*testCtx]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(2, "A", 3)
	m.AddState(3, "B", 2)
	if err := m.CompilePaths(); err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Errorf("CompilePaths = %v, want cycle error", err)
	}
}
