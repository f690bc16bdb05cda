package actor

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/animation"
	"github.com/lixenwraith/mad-mansion/engine"
	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/input"
	"github.com/lixenwraith/mad-mansion/physics"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// recordingBody wraps a RigidBody and keeps the last velocity change
type recordingBody struct {
	*physics.RigidBody
	lastChange mgl64.Vec3
	changes    int
}

func (b *recordingBody) AddVelocityChange(dv mgl64.Vec3) {
	b.lastChange = dv
	b.changes++
	b.RigidBody.AddVelocityChange(dv)
}

type fakeAnim struct {
	bools  map[string]bool
	floats map[string]float64
	speed  float64
	state  string
	events []event.EventType
}

func newFakeAnim() *fakeAnim {
	return &fakeAnim{bools: map[string]bool{}, floats: map[string]float64{}, speed: 1, state: animation.StateIdle}
}

func (f *fakeAnim) SetBool(p string, v bool)     { f.bools[p] = v }
func (f *fakeAnim) Bool(p string) bool           { return f.bools[p] }
func (f *fakeAnim) SetFloat(p string, v float64) { f.floats[p] = v }
func (f *fakeAnim) SetSpeed(rate float64)        { f.speed = rate }
func (f *fakeAnim) State() string                { return f.state }
func (f *fakeAnim) HandleEvent(et event.EventType) bool {
	f.events = append(f.events, et)
	return true
}

type fakeAudio struct {
	volumes []float64
	stops   int
}

func (f *fakeAudio) PlayProximitySignal(v float64) { f.volumes = append(f.volumes, v) }
func (f *fakeAudio) StopProximitySignal()          { f.stops++ }

type fakeHistory struct {
	ok  bool
	pos mgl64.Vec3
}

func (f *fakeHistory) HasHistory() bool              { return f.ok }
func (f *fakeHistory) LastKnownPosition() mgl64.Vec3 { return f.pos }

type fakeRequests struct {
	possessions []event.RoomID
	haunts      []event.RoomID
	catches     int
}

func (f *fakeRequests) RequestPossession(_ *Actor, room event.RoomID) {
	f.possessions = append(f.possessions, room)
}
func (f *fakeRequests) RequestHaunt(room event.RoomID) { f.haunts = append(f.haunts, room) }
func (f *fakeRequests) TryCatch(*Actor)                { f.catches++ }

type harness struct {
	bus     *event.Bus
	clock   *engine.SimClock
	scales  *engine.TimeScales
	body    *recordingBody
	anim    *fakeAnim
	audio   *fakeAudio
	history *fakeHistory
	req     *fakeRequests
	a       *Actor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		bus:     event.NewBus(nil),
		clock:   engine.NewSimClock(epoch),
		scales:  engine.NewTimeScales(nil),
		body:    &recordingBody{RigidBody: physics.NewRigidBody(mgl64.Vec3{})},
		anim:    newFakeAnim(),
		audio:   &fakeAudio{},
		history: &fakeHistory{},
		req:     &fakeRequests{},
	}
	a, err := New("test", DefaultConfig(), Deps{
		Body:     h.body,
		Animator: h.anim,
		Bus:      h.bus,
		Clock:    h.clock,
		Scales:   h.scales,
		Audio:    h.audio,
		History:  h.history,
		Ghost:    h.req,
		Catcher:  h.req,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	h.a = a
	return h
}

// resume publishes ResumeGame so the motor runs
func (h *harness) resume() *harness {
	h.bus.Publish(event.EventResumeGame, nil)
	return h
}

// run advances sim time by total in frame steps of step
func (h *harness) run(total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		h.clock.Advance(step)
		h.a.FrameTick(step)
	}
}

// submit commits one vector per priority
func (h *harness) submit(ghost, hunter, standard mgl64.Vec3) {
	arb := h.a.Arbiter()
	arb.Submit(ghost, input.PriorityGhost)
	arb.Submit(hunter, input.PriorityHunter)
	arb.Submit(standard, input.PriorityStandard)
	arb.Commit()
}
