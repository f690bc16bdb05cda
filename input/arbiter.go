package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/mad-mansion/vmath"
)

// Snapshot holds one planar vector per priority
type Snapshot struct {
	vectors [priorityCount]mgl64.Vec3
}

// Get returns the vector stored for p
func (s Snapshot) Get(p Priority) mgl64.Vec3 {
	if p >= priorityCount {
		return mgl64.Vec3{}
	}
	return s.vectors[p]
}

// ArbiterState is the actor state consulted during resolution
type ArbiterState struct {
	Paused    bool
	Hunter    bool
	Possessed bool
	Caught    bool
}

// Arbiter merges priority-tagged input into one movement command per physics step
//
// Controllers Submit into a pending snapshot during the frame tick; Commit publishes it
// to the physics ticks of that frame. Values persist until overwritten or cleared
type Arbiter struct {
	pending     Snapshot
	committed   Snapshot
	sensitivity float64
}

// NewArbiter creates an arbiter; ghostSensitivity is the squared ghost stick magnitude
// below which the hunter keeps control of a possessed hunter body
func NewArbiter(ghostSensitivity float64) *Arbiter {
	return &Arbiter{sensitivity: ghostSensitivity}
}

// Submit stores v for priority p with its vertical component removed
// Unknown priorities are stored as Standard
func (a *Arbiter) Submit(v mgl64.Vec3, p Priority) {
	if p >= priorityCount {
		p = PriorityStandard
	}
	a.pending.vectors[p] = vmath.Planar(v)
}

// Clear nulls the vector for p in both snapshots, used when the role feeding p is disabled
func (a *Arbiter) Clear(p Priority) {
	if p >= priorityCount {
		return
	}
	a.pending.vectors[p] = mgl64.Vec3{}
	a.committed.vectors[p] = mgl64.Vec3{}
}

// Commit makes the pending snapshot visible to Resolve
func (a *Arbiter) Commit() {
	a.committed = a.pending
}

// Committed returns the snapshot Resolve operates on
func (a *Arbiter) Committed() Snapshot {
	return a.committed
}

// Resolve selects the effective command, returns false while paused
func (a *Arbiter) Resolve(st ArbiterState) (mgl64.Vec3, bool) {
	if st.Paused {
		return mgl64.Vec3{}, false
	}

	ghost := a.committed.vectors[PriorityGhost]
	if st.Caught {
		ghost = mgl64.Vec3{}
	}

	cmd := a.committed.vectors[PriorityStandard]
	if st.Hunter && (!st.Possessed || vmath.MagSq(ghost) < a.sensitivity) {
		cmd = a.committed.vectors[PriorityHunter]
	} else if st.Possessed {
		cmd = ghost
	}
	return cmd, true
}
