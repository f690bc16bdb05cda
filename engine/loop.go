package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/logger"
	"github.com/lixenwraith/mad-mansion/status"
)

// Stepper receives the two simulation phases driven by Loop
type Stepper interface {
	// FrameTick runs once per frame with the clamped wall delta
	// Input handlers, rotation, animation, reveal, proximity and transition timers
	FrameTick(dt time.Duration)

	// PhysicsTick runs zero or more times per frame with the fixed step
	// Arbitration and force application
	PhysicsTick(step time.Duration)
}

// LoopConfig holds frame loop timing
type LoopConfig struct {
	FrameInterval time.Duration
	PhysicsStep   time.Duration
	MaxSteps      int
	MaxFrameDelta time.Duration
}

// Loop drives a Stepper with a variable frame tick and a fixed-step physics accumulator
// Pause-aware behavior lives in the stepper; the loop itself never stops advancing sim time
type Loop struct {
	cfg      LoopConfig
	clock    *SimClock
	stepper  Stepper
	provider TimeProvider

	last        time.Time
	started     bool
	accumulator time.Duration

	// Run hooks, executed on the loop goroutine around every ticked frame
	beforeFrame func()
	afterFrame  func()

	// Cached metric pointers
	statFrames *atomic.Int64
	statSteps  *atomic.Int64
	statLag    *status.AtomicFloat

	log logrus.FieldLogger
}

// NewLoop creates a loop; reg and log may be nil
func NewLoop(cfg LoopConfig, clock *SimClock, stepper Stepper, provider TimeProvider, reg *status.Registry, log logrus.FieldLogger) *Loop {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 1
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Loop{
		cfg:        cfg,
		clock:      clock,
		stepper:    stepper,
		provider:   provider,
		statFrames: reg.Ints.Get("engine.frames"),
		statSteps:  reg.Ints.Get("engine.physics_steps"),
		statLag:    reg.Floats.Get("engine.lag_ms"),
		log:        log.WithField("component", "loop"),
	}
}

// Step runs one frame ending at wall time now
// The first call only anchors the loop
func (l *Loop) Step(now time.Time) {
	if !l.started {
		l.started = true
		l.last = now
		return
	}

	dt := now.Sub(l.last)
	l.last = now
	if dt < 0 {
		dt = 0
	}
	if l.cfg.MaxFrameDelta > 0 && dt > l.cfg.MaxFrameDelta {
		l.log.WithField("dt", dt).Debug("frame delta clamped")
		dt = l.cfg.MaxFrameDelta
	}

	l.clock.Advance(dt)
	l.stepper.FrameTick(dt)
	l.statFrames.Add(1)

	if l.cfg.PhysicsStep <= 0 {
		return
	}
	l.accumulator += dt
	steps := 0
	for l.accumulator >= l.cfg.PhysicsStep && steps < l.cfg.MaxSteps {
		l.stepper.PhysicsTick(l.cfg.PhysicsStep)
		l.accumulator -= l.cfg.PhysicsStep
		steps++
	}
	l.statSteps.Add(int64(steps))

	if l.accumulator >= l.cfg.PhysicsStep {
		l.log.WithFields(logrus.Fields{
			"dropped": l.accumulator,
			"steps":   steps,
		}).Debug("physics backlog dropped")
		l.accumulator %= l.cfg.PhysicsStep
	}
	l.statLag.Set(float64(l.accumulator) / float64(time.Millisecond))
}

// StepBy advances the loop by dt from the last frame
// Used by headless runs and tests that bypass the time provider
func (l *Loop) StepBy(dt time.Duration) {
	if !l.started {
		l.Step(l.clock.Now())
	}
	l.Step(l.last.Add(dt))
}

// Frames returns the number of executed frame ticks
func (l *Loop) Frames() int64 {
	return l.statFrames.Load()
}

// PhysicsSteps returns the number of executed physics ticks
func (l *Loop) PhysicsSteps() int64 {
	return l.statSteps.Load()
}

// SetFrameHooks registers callbacks Run invokes before and after each frame; either may be nil
// Input draining belongs in before, presentation in after
func (l *Loop) SetFrameHooks(before, after func()) {
	l.beforeFrame = before
	l.afterFrame = after
}

// Run ticks the loop at the frame interval until ctx is done
// A frame already due when ctx is cancelled is not run
func (l *Loop) Run(ctx context.Context) error {
	interval := l.cfg.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.Step(l.provider.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.beforeFrame != nil {
				l.beforeFrame()
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			l.Step(l.provider.Now())
			if l.afterFrame != nil {
				l.afterFrame()
			}
		}
	}
}
