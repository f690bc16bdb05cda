package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/event"
)

// GameClock reports pausable game time
type GameClock interface {
	GameTime() time.Time
}

// Sample is one recorded ghost location
type Sample struct {
	At   time.Time
	Pos  mgl64.Vec3
	Room event.RoomID
}

// GhostTracker keeps a bounded trail of ghost positions and exposes the newest one
// that is at least delay old, which is what the hunter is allowed to sense
type GhostTracker struct {
	mu    sync.RWMutex
	clock GameClock
	delay time.Duration

	ring  []Sample
	head  int // Next write index
	count int
}

// New creates a tracker holding up to capacity samples
func New(clock GameClock, delay time.Duration, capacity int) (*GhostTracker, error) {
	if clock == nil {
		return nil, fmt.Errorf("tracker: nil clock")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("tracker: capacity must be positive, got %d", capacity)
	}
	return &GhostTracker{
		clock: clock,
		delay: delay,
		ring:  make([]Sample, capacity),
	}, nil
}

// Record appends a sample, overwriting the oldest when full
func (g *GhostTracker) Record(at time.Time, pos mgl64.Vec3, room event.RoomID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ring[g.head] = Sample{At: at, Pos: pos, Room: room}
	g.head = (g.head + 1) % len(g.ring)
	if g.count < len(g.ring) {
		g.count++
	}
}

// historical returns the newest sample at or before now - delay
func (g *GhostTracker) historical() (Sample, bool) {
	cutoff := g.clock.GameTime().Add(-g.delay)
	for i := 1; i <= g.count; i++ {
		s := g.ring[(g.head-i+len(g.ring))%len(g.ring)]
		if !s.At.After(cutoff) {
			return s, true
		}
	}
	return Sample{}, false
}

// HasHistory reports whether a sufficiently old sample exists
func (g *GhostTracker) HasHistory() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.historical()
	return ok
}

// LastKnownPosition returns the delayed ghost position, zero without history
func (g *GhostTracker) LastKnownPosition() mgl64.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, _ := g.historical()
	return s.Pos
}

// LastKnownRoom returns the delayed ghost room, NoRoom without history
func (g *GhostTracker) LastKnownRoom() event.RoomID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if s, ok := g.historical(); ok {
		return s.Room
	}
	return event.NoRoom
}

// Len returns the number of stored samples
func (g *GhostTracker) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.count
}

// Reset drops every sample
func (g *GhostTracker) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.ring)
	g.head = 0
	g.count = 0
}
