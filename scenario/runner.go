package scenario

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/input"
	"github.com/lixenwraith/mad-mansion/logger"
)

// Runner plays a scenario against a bus and scripted devices
// Time is supplied by the caller as elapsed simulated time since the run started
type Runner struct {
	sc      *Scenario
	bus     *event.Bus
	devices map[string]*input.VirtualSource
	next    int
	log     logrus.FieldLogger
}

// NewRunner binds sc to bus; devices maps DeviceHunter/DeviceGhost to scripted sources and may be nil
func NewRunner(sc *Scenario, bus *event.Bus, devices map[string]*input.VirtualSource, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{
		sc:      sc,
		bus:     bus,
		devices: devices,
		log:     log.WithFields(logrus.Fields{"component": "scenario", "scenario": sc.Name}),
	}
}

// Advance executes every step due at elapsed and returns how many ran
func (r *Runner) Advance(elapsed time.Duration) int {
	ran := 0
	for r.next < len(r.sc.Steps) && r.sc.Steps[r.next].At <= elapsed {
		r.exec(r.sc.Steps[r.next])
		r.next++
		ran++
	}
	return ran
}

// Done reports whether every step has run and the scenario duration has passed
func (r *Runner) Done(elapsed time.Duration) bool {
	return r.next >= len(r.sc.Steps) && elapsed >= r.sc.Duration
}

// Remaining returns the number of steps not yet executed
func (r *Runner) Remaining() int {
	return len(r.sc.Steps) - r.next
}

func (r *Runner) exec(s Step) {
	if s.Device != "" {
		if dev := r.devices[s.Device]; dev != nil {
			if s.HasStick {
				dev.SetStick(s.StickX, s.StickY)
			}
			for _, b := range s.Press {
				dev.SetButton(b, true)
			}
			for _, b := range s.Release {
				dev.SetButton(b, false)
			}
		} else {
			r.log.WithField("device", s.Device).Warn("scripted device missing, step skipped")
		}
	}

	if s.HasEvent && r.bus != nil {
		id := r.bus.Publish(s.Type, s.Payload)
		r.log.WithFields(logrus.Fields{
			"at":    s.At,
			"event": s.Type.String(),
			"id":    id.String(),
		}).Info("scenario event")
	}
}
