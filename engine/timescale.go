package engine

import (
	"github.com/lixenwraith/mad-mansion/parameter"
	"github.com/lixenwraith/mad-mansion/status"
)

// TimeScales holds the externally owned simulation speed multipliers
// The character core reads them every tick and never writes them
type TimeScales struct {
	hunter *status.AtomicFloat
	other  *status.AtomicFloat
}

// NewTimeScales creates time scales published through reg under time.hunter and time.scale
// A nil registry keeps the values private
func NewTimeScales(reg *status.Registry) *TimeScales {
	ts := &TimeScales{}
	if reg != nil {
		ts.hunter = reg.Floats.Get("time.hunter")
		ts.other = reg.Floats.Get("time.scale")
	} else {
		ts.hunter = &status.AtomicFloat{}
		ts.other = &status.AtomicFloat{}
	}
	ts.hunter.Set(parameter.DefaultHunterTimeScale)
	ts.other.Set(parameter.DefaultTimeScale)
	return ts
}

// HunterTimeScale returns the multiplier applied to the Hunter
func (ts *TimeScales) HunterTimeScale() float64 {
	return ts.hunter.Get()
}

// TimeScale returns the multiplier applied to every non-Hunter actor
func (ts *TimeScales) TimeScale() float64 {
	return ts.other.Get()
}

// For returns the multiplier for an actor by role
func (ts *TimeScales) For(isHunter bool) float64 {
	if isHunter {
		return ts.HunterTimeScale()
	}
	return ts.TimeScale()
}

// SetHunterTimeScale sets the Hunter multiplier
func (ts *TimeScales) SetHunterTimeScale(v float64) {
	ts.hunter.Set(v)
}

// SetTimeScale sets the non-Hunter multiplier
func (ts *TimeScales) SetTimeScale(v float64) {
	ts.other.Set(v)
}
