package scenario

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/input"
)

const hauntScript = `
name: haunt
steps:
  - at: 2s
    event: Haunt
    payload: {is_start: false, succeeded: true, room: 1}
  - at: 500ms
    event: haunt
    payload:
      is_start: true
      succeeded: true
      room: 1
  - at: 1s
    device: ghost
    stick: [1, 0]
    press: [haunt]
  - at: 3s
    event: EndGame
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(hauntScript))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sc.Name != "haunt" || len(sc.Steps) != 4 {
		t.Fatalf("got %q with %d steps", sc.Name, len(sc.Steps))
	}
	if sc.Duration != 3*time.Second {
		t.Errorf("duration = %v, want last step time", sc.Duration)
	}

	first := sc.Steps[0]
	if first.At != 500*time.Millisecond || first.Type != event.EventHaunt {
		t.Fatalf("first step = %+v", first)
	}
	p, ok := first.Payload.(event.HauntPayload)
	if !ok {
		t.Fatalf("payload type %T, want HauntPayload value", first.Payload)
	}
	if !p.IsStart || !p.Succeeded || p.Room != 1 {
		t.Errorf("payload = %+v", p)
	}

	dev := sc.Steps[1]
	if dev.Device != DeviceGhost || !dev.HasStick || dev.StickX != 1 {
		t.Errorf("device step = %+v", dev)
	}
	if len(dev.Press) != 1 || dev.Press[0] != input.ButtonHaunt {
		t.Errorf("press = %v", dev.Press)
	}

	if sc.Steps[3].Payload != nil {
		t.Errorf("EndGame payload = %v, want nil", sc.Steps[3].Payload)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   error
	}{
		{"unknown event", "steps: [{at: 1s, event: Explode}]", ErrUnknownEvent},
		{"tick is internal", "steps: [{at: 1s, event: Tick}]", ErrUnknownEvent},
		{"payload on bare event", "steps: [{at: 1s, event: EndGame, payload: {x: 1}}]", ErrInvalidStep},
		{"empty step", "steps: [{at: 1s}]", ErrInvalidStep},
		{"unknown device", "steps: [{at: 1s, device: cat}]", ErrInvalidStep},
		{"bad stick", "steps: [{at: 1s, device: ghost, stick: [1]}]", ErrInvalidStep},
		{"unknown button", "steps: [{at: 1s, device: ghost, press: [jump]}]", ErrInvalidStep},
		{"press without device", "steps: [{at: 1s, press: [haunt]}]", ErrInvalidStep},
		{"negative time", "steps: [{at: -1s, event: EndGame}]", ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunner(t *testing.T) {
	sc, err := Parse([]byte(hauntScript))
	if err != nil {
		t.Fatal(err)
	}

	bus := event.NewBus(nil)
	var got []event.GameEvent
	if _, err := bus.Subscribe(event.Listen(func(ev event.GameEvent) {
		got = append(got, ev)
	}, event.EventHaunt, event.EventEndGame)); err != nil {
		t.Fatal(err)
	}

	ghost := input.NewVirtualSource("ghost")
	r := NewRunner(sc, bus, map[string]*input.VirtualSource{DeviceGhost: ghost}, nil)

	if n := r.Advance(0); n != 0 {
		t.Fatalf("ran %d steps at 0", n)
	}
	if n := r.Advance(time.Second); n != 2 {
		t.Fatalf("ran %d steps by 1s, want 2", n)
	}
	if len(got) != 1 || !got[0].Payload.(event.HauntPayload).IsStart {
		t.Fatalf("events = %+v", got)
	}

	ghost.Update()
	if x, _ := ghost.Stick(); x != 1 {
		t.Errorf("stick x = %v, want 1", x)
	}
	if !ghost.WasPressed(input.ButtonHaunt) {
		t.Error("haunt button not pressed")
	}

	if r.Done(time.Second) {
		t.Error("done too early")
	}
	r.Advance(3 * time.Second)
	if len(got) != 3 || got[2].Type != event.EventEndGame {
		t.Fatalf("events = %+v", got)
	}
	if !r.Done(3*time.Second) || r.Remaining() != 0 {
		t.Error("runner should be done")
	}
}
