package animation

import (
	"testing"
	"time"

	"github.com/lixenwraith/mad-mansion/event"
)

func TestDefaultGraph(t *testing.T) {
	a, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	steps := []struct {
		name  string
		apply func()
		want  string
	}{
		{"starts idle", func() {}, StateIdle},
		{"walks when moving", func() { a.SetFloat(ParamSpeed, 3) }, StateWalking},
		{"scared overrides walking", func() { a.SetBool(ParamScared, true) }, StateScared},
		{"confused overrides scared", func() { a.SetBool(ParamConfused, true) }, StateConfused},
		{"stays confused while scared clears", func() { a.SetBool(ParamScared, false) }, StateConfused},
		{"back to idle", func() { a.SetBool(ParamConfused, false) }, StateIdle},
		{"then walking again", func() {}, StateWalking},
		{"stops", func() { a.SetFloat(ParamSpeed, 0) }, StateIdle},
	}

	for _, s := range steps {
		s.apply()
		a.Update(16 * time.Millisecond)
		if got := a.State(); got != s.want {
			t.Fatalf("%s: state = %q, want %q", s.name, got, s.want)
		}
	}
}

func TestPhaseFollowsSpeed(t *testing.T) {
	a, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	a.SetSpeed(2)
	a.Update(100 * time.Millisecond)
	if a.Phase() != 200*time.Millisecond {
		t.Errorf("Phase = %v, want 200ms", a.Phase())
	}
	if a.Speed() != 2 {
		t.Errorf("Speed = %v, want 2", a.Speed())
	}
}

func TestInvalidGraph(t *testing.T) {
	if _, err := New("initial: Nowhere\nstates:\n  Idle: {}\n"); err == nil {
		t.Error("expected error for unknown initial state")
	}
}

func TestCaughtFreezesUntilReset(t *testing.T) {
	a, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if a.HandleEvent(event.EventHaunt) {
		t.Error("Haunt matched a transition")
	}
	if !a.HandleEvent(event.EventCatch) || a.State() != StateCaught {
		t.Fatalf("state = %q, want %q", a.State(), StateCaught)
	}

	a.SetSpeed(3)
	a.SetFloat(ParamSpeed, 3)
	a.Update(100 * time.Millisecond)
	if a.State() != StateCaught || a.Speed() != 0 || a.Phase() != 0 {
		t.Errorf("caught clip: state %q speed %v phase %v", a.State(), a.Speed(), a.Phase())
	}

	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	if a.State() != StateIdle || a.Phase() != 0 {
		t.Errorf("after Reset: state %q phase %v", a.State(), a.Phase())
	}
}

func TestIdleFidget(t *testing.T) {
	a, err := New("")
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		dt   time.Duration
		want string
	}{
		{4 * time.Second, StateIdle},
		{time.Second, StateFidget},
		{time.Second, StateFidget},
		{500 * time.Millisecond, StateIdle},
	}
	for i, s := range steps {
		a.Update(s.dt)
		if a.State() != s.want {
			t.Fatalf("step %d: state = %q, want %q", i, a.State(), s.want)
		}
	}

	a.Update(6 * time.Second)
	a.SetFloat(ParamSpeed, 2)
	a.Update(16 * time.Millisecond)
	if a.State() != StateWalking {
		t.Errorf("state = %q, want fidget interrupted by walking", a.State())
	}
}
