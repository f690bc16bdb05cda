package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/audio"
	"github.com/lixenwraith/mad-mansion/config"
	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/game"
	"github.com/lixenwraith/mad-mansion/scenario"
)

// maxScenarioDuration stops scripts that never finish
const maxScenarioDuration = 10 * time.Minute

// runScenario plays a script against a fresh world and prints the final actor states
func runScenario(cfg *config.Config, path string, sm *audio.SoundManager, log *logrus.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	sc, err := scenario.Parse(data)
	if err != nil {
		return err
	}

	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	w, err := game.New(cfg, game.Deps{Audio: sm, Log: log, Epoch: epoch})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	if _, err := w.Bus().Subscribe(event.Listen(func(ev event.GameEvent) {
		log.WithFields(logrus.Fields{
			"event":   ev.Type.String(),
			"payload": fmt.Sprintf("%+v", ev.Payload),
			"sim":     w.Clock().Now().Sub(epoch),
		}).Info("event")
	}, event.EventPauseGame, event.EventResumeGame, event.EventStartGame,
		event.EventHaunt, event.EventPossession, event.EventCatch, event.EventEndGame)); err != nil {
		return err
	}

	loop, elapsed := w.Play(sc, cfg.Sim.FrameInterval, maxScenarioDuration)

	fmt.Printf("scenario %q finished after %v (%d frames, %d physics steps)\n",
		sc.Name, elapsed, loop.Frames(), loop.PhysicsSteps())
	for _, a := range w.Actors() {
		pos := a.Position()
		fmt.Printf("  %-10s role=%-6s possessed=%-5t scared=%-5t confused=%-5t revealed=%-5t pos=(%.2f, %.2f)\n",
			a.Name(), a.Role(), a.IsPossessed(), a.Behavior().IsScared(), a.Behavior().IsConfused(),
			a.Reveal().IsRevealed(), pos.X(), pos.Z())
	}
	for _, line := range w.Status().Lines() {
		fmt.Println("  " + line)
	}
	return nil
}
