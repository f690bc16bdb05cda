package input

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/event"
)

func TestSubmitProjectsToPlane(t *testing.T) {
	a := NewArbiter(0.5)
	a.Submit(mgl64.Vec3{1, 5, 2}, PriorityStandard)
	a.Commit()

	if got := a.Committed().Get(PriorityStandard); got != (mgl64.Vec3{1, 0, 2}) {
		t.Errorf("stored %v, want Y zeroed", got)
	}
}

func TestClearNullsBothSnapshots(t *testing.T) {
	a := NewArbiter(0.5)
	a.Submit(mgl64.Vec3{1, 0, 0}, PriorityGhost)
	a.Submit(mgl64.Vec3{0, 0, 1}, PriorityHunter)
	a.Commit()
	a.Clear(PriorityGhost)

	if got := a.Committed().Get(PriorityGhost); got != (mgl64.Vec3{}) {
		t.Errorf("committed ghost = %v, want zero", got)
	}
	a.Commit()
	if got := a.Committed().Get(PriorityGhost); got != (mgl64.Vec3{}) {
		t.Errorf("pending ghost survived Clear: %v", got)
	}
	if got := a.Committed().Get(PriorityHunter); got != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("hunter = %v, want untouched", got)
	}
}

func TestCommitGatesPending(t *testing.T) {
	a := NewArbiter(0.5)
	a.Submit(mgl64.Vec3{1, 0, 0}, PriorityStandard)

	cmd, _ := a.Resolve(ArbiterState{})
	if cmd != (mgl64.Vec3{}) {
		t.Errorf("uncommitted input visible: %v", cmd)
	}

	a.Commit()
	cmd, _ = a.Resolve(ArbiterState{})
	if cmd != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("committed input = %v", cmd)
	}
}

func TestResolve(t *testing.T) {
	ghostWeak := mgl64.Vec3{0.5, 0, 0.4} // magSq 0.41
	ghostStrong := mgl64.Vec3{0, 0, 1}
	ghostEdge := mgl64.Vec3{0.5, 0, 0.5} // magSq exactly 0.5
	hunter := mgl64.Vec3{1, 0, 0}
	standard := mgl64.Vec3{0, 0, -1}

	tests := []struct {
		name  string
		ghost mgl64.Vec3
		st    ArbiterState
		want  mgl64.Vec3
		ok    bool
	}{
		{"paused", ghostStrong, ArbiterState{Paused: true, Hunter: true}, mgl64.Vec3{}, false},
		{"npc standard", ghostStrong, ArbiterState{}, standard, true},
		{"npc possessed", ghostStrong, ArbiterState{Possessed: true}, ghostStrong, true},
		{"hunter unpossessed", ghostStrong, ArbiterState{Hunter: true}, hunter, true},
		{"hunter over weak ghost", ghostWeak, ArbiterState{Hunter: true, Possessed: true}, hunter, true},
		{"strong ghost overrides hunter", ghostStrong, ArbiterState{Hunter: true, Possessed: true}, ghostStrong, true},
		{"strict threshold", ghostEdge, ArbiterState{Hunter: true, Possessed: true}, ghostEdge, true},
		{"caught ghost nulled on hunter", ghostStrong, ArbiterState{Hunter: true, Possessed: true, Caught: true}, hunter, true},
		{"caught ghost nulled on npc", ghostStrong, ArbiterState{Possessed: true, Caught: true}, mgl64.Vec3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArbiter(0.5)
			a.Submit(tt.ghost, PriorityGhost)
			a.Submit(hunter, PriorityHunter)
			a.Submit(standard, PriorityStandard)
			a.Commit()

			got, ok := a.Resolve(tt.st)
			if ok != tt.ok || !got.ApproxEqualThreshold(tt.want, 1e-12) {
				t.Errorf("Resolve = %v,%v want %v,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestStickVectorNilSource(t *testing.T) {
	if _, ok := StickVector(nil); ok {
		t.Error("nil source should contribute nothing")
	}
	v := NewVirtualSource("pad")
	v.SetStick(2, -0.5)
	got, ok := StickVector(v)
	if !ok || got != (mgl64.Vec3{1, 0, -0.5}) {
		t.Errorf("StickVector = %v,%v", got, ok)
	}
}

func TestVirtualSourceEdges(t *testing.T) {
	v := NewVirtualSource("pad")
	v.SetButton(Action4, true)
	v.Update()
	if !v.IsPressed(Action4) || !v.WasPressed(Action4) {
		t.Fatal("expected press and rising edge")
	}
	v.Update()
	if !v.IsPressed(Action4) || v.WasPressed(Action4) {
		t.Fatal("held button must not repeat the edge")
	}
	v.SetButton(Action4, false)
	v.Update()
	if v.IsPressed(Action4) {
		t.Fatal("released button still pressed")
	}
}

func TestKeyboardHoldWindow(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	k := NewKeyboardSource(HunterLayout(), 100*time.Millisecond)

	if k.Press(RuneKey('z'), start) {
		t.Error("unbound key accepted")
	}
	k.Press(RuneKey('W'), start)
	k.Press(RuneKey('d'), start)
	k.Press(RuneKey('e'), start)
	k.Update(start.Add(10 * time.Millisecond))

	if x, y := k.Stick(); x != 1 || y != 1 {
		t.Errorf("Stick = %v,%v want 1,1", x, y)
	}
	if !k.WasPressed(ButtonCatch) {
		t.Error("catch edge missing")
	}

	k.Update(start.Add(50 * time.Millisecond))
	if !k.IsPressed(ButtonCatch) || k.WasPressed(ButtonCatch) {
		t.Error("held key should stay pressed without a new edge")
	}

	k.Update(start.Add(200 * time.Millisecond))
	if x, y := k.Stick(); x != 0 || y != 0 || k.IsPressed(ButtonCatch) {
		t.Errorf("keys should release after hold window, stick %v,%v", x, y)
	}
}

func TestAssigner(t *testing.T) {
	bus := event.NewBus(nil)
	var got []string
	if _, err := bus.Subscribe(event.Listen(func(ev event.GameEvent) {
		got = append(got, ev.Type.String())
	}, event.EventPauseGame, event.EventResumeGame, event.EventStartGame)); err != nil {
		t.Fatal(err)
	}

	a, err := NewAssigner(bus, 100*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	p1, p2 := NewVirtualSource("p1"), NewVirtualSource("p2")
	devices := []Device{p1, p2}

	press := func(v *VirtualSource) {
		v.SetButton(Action2, true)
		p1.Update()
		p2.Update()
		a.Update(16*time.Millisecond, devices)
		v.SetButton(Action2, false)
		p1.Update()
		p2.Update()
	}

	press(p1)
	if a.Armed() || a.Hunter() != nil {
		t.Fatal("assignment accepted during startup delay")
	}
	a.Update(100*time.Millisecond, devices)
	if !a.Armed() || a.Status() != AssigningHunter {
		t.Fatalf("status = %v armed=%v", a.Status(), a.Armed())
	}

	press(p1)
	press(p1) // already hunter, ignored
	if a.Status() != AssigningGhost || a.Hunter() != Source(p1) {
		t.Fatalf("after p1: status %v", a.Status())
	}
	press(p2)
	if a.Status() != AllAssigned || a.Ghost() != Source(p2) {
		t.Fatalf("after p2: status %v", a.Status())
	}

	a.DeviceChanged()
	if a.Hunter() != nil || a.Ghost() != nil {
		t.Fatal("reset kept devices")
	}
	press(p2)
	press(p1)

	want := []string{"PauseGame", "ResumeGame", "StartGame", "PauseGame", "ResumeGame"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}
