package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// SimClock is the simulation time source, advanced only by the frame loop
// Sim time keeps running through pauses; game time freezes while paused
type SimClock struct {
	mu sync.RWMutex

	epoch       time.Time
	elapsed     time.Duration // Total advanced sim time
	pausedTotal time.Duration // Portion of elapsed spent paused

	isPaused atomic.Bool
}

// NewSimClock creates a clock starting at epoch
func NewSimClock(epoch time.Time) *SimClock {
	return &SimClock{epoch: epoch}
}

// Advance moves sim time forward by dt, negative values are ignored
func (c *SimClock) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.elapsed += dt
	if c.isPaused.Load() {
		c.pausedTotal += dt
	}
}

// Now returns sim time, unaffected by pause
// Delayed behavior transitions are keyed on this
func (c *SimClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch.Add(c.elapsed)
}

// GameTime returns sim time excluding paused intervals
func (c *SimClock) GameTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch.Add(c.elapsed - c.pausedTotal)
}

// Pause stops game time advancement
func (c *SimClock) Pause() {
	c.mu.Lock()
	c.isPaused.Store(true)
	c.mu.Unlock()
}

// Resume continues game time advancement
func (c *SimClock) Resume() {
	c.mu.Lock()
	c.isPaused.Store(false)
	c.mu.Unlock()
}

// IsPaused returns current pause state
func (c *SimClock) IsPaused() bool {
	return c.isPaused.Load()
}
