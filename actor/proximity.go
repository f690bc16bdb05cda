package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/vmath"
)

// Proximity emits the hunter smell signal: the farther the ghost trail, the louder
//
// While smelling with history available, volume = min(distance / reduction, 1);
// otherwise the signal is stopped
type Proximity struct {
	audio     AudioSink
	history   HistoryProvider
	reduction float64
	playing   bool
	volume    float64
}

// NewProximity creates an emitter; history may be nil, meaning no trail is ever available
func NewProximity(audio AudioSink, history HistoryProvider, reduction float64) (*Proximity, error) {
	if audio == nil {
		return nil, fmt.Errorf("%w: audio sink", ErrMissingCollaborator)
	}
	if reduction <= 0 {
		return nil, fmt.Errorf("proximity reduction distance must be positive, got %v", reduction)
	}
	return &Proximity{audio: audio, history: history, reduction: reduction}, nil
}

// Update forwards the signal for one frame
func (p *Proximity) Update(pos mgl64.Vec3, smelling bool) {
	if !smelling || p.history == nil || !p.history.HasHistory() {
		p.Stop()
		return
	}
	dist := vmath.Distance(pos, p.history.LastKnownPosition())
	p.volume = min(dist/p.reduction, 1)
	p.playing = true
	p.audio.PlayProximitySignal(p.volume)
}

// Stop silences the signal
func (p *Proximity) Stop() {
	p.playing = false
	p.audio.StopProximitySignal()
}

// Playing reports whether the signal was forwarded this frame
func (p *Proximity) Playing() bool {
	return p.playing
}

// Volume returns the last forwarded volume
func (p *Proximity) Volume() float64 {
	return p.volume
}
