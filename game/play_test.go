package game

import (
	"os"
	"testing"
	"time"

	"github.com/lixenwraith/mad-mansion/config"
	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/scenario"
)

func TestPlayShippedScenario(t *testing.T) {
	data, err := os.ReadFile("../scenarios/haunt_and_catch.yaml")
	if err != nil {
		t.Fatal(err)
	}
	sc, err := scenario.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	w, err := New(config.Default(), Deps{Epoch: epoch})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	var catches []event.CatchPayload
	if _, err := w.Bus().Subscribe(event.On(event.EventCatch, func(p event.CatchPayload) {
		catches = append(catches, p)
	})); err != nil {
		t.Fatal(err)
	}

	loop, elapsed := w.Play(sc, frame, time.Minute)
	if elapsed != sc.Duration {
		t.Errorf("elapsed = %v, want %v", elapsed, sc.Duration)
	}
	if loop.Frames() == 0 {
		t.Error("no frames executed")
	}

	maid, _ := w.Actor("maid")
	if !maid.IsPossessed() {
		t.Fatal("ghost should have jumped into the maid")
	}
	if w.Audio().Stings() < 1 {
		t.Error("haunt did not play a sting")
	}
	if len(catches) != 1 || !catches[0].Successful {
		t.Fatalf("catches = %+v", catches)
	}
	if !w.Director().Started() {
		t.Error("StartGame from the scenario was not observed")
	}
	if !w.Director().Ended() || !maid.Reveal().IsRevealed() {
		t.Error("round should end with the maid revealed")
	}
}
