package game

import (
	"time"

	"github.com/lixenwraith/mad-mansion/engine"
	"github.com/lixenwraith/mad-mansion/input"
	"github.com/lixenwraith/mad-mansion/scenario"
)

// Play runs sc on a simulated clock with scripted ghost and hunter devices bound to the world
// Frames advance by step until the script is done or limit elapses; returns the loop and the elapsed sim time
func (w *World) Play(sc *scenario.Scenario, step, limit time.Duration) (*engine.Loop, time.Duration) {
	ghost := input.NewVirtualSource(scenario.DeviceGhost)
	hunter := input.NewVirtualSource(scenario.DeviceHunter)
	w.BindSources(ghost, hunter)

	runner := scenario.NewRunner(sc, w.bus, map[string]*input.VirtualSource{
		scenario.DeviceGhost:  ghost,
		scenario.DeviceHunter: hunter,
	}, w.log)

	start := w.clock.Now()
	loop := w.NewLoop(engine.NewManualTimeProvider(start))
	for {
		elapsed := w.clock.Now().Sub(start)
		runner.Advance(elapsed)
		if runner.Done(elapsed) || elapsed >= limit {
			return loop, elapsed
		}
		loop.StepBy(step)
	}
}
