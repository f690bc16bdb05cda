package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the variable frame tick target (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// PhysicsUpdateInterval is the fixed physics step (50 Hz)
	PhysicsUpdateInterval = 20 * time.Millisecond

	// MaxPhysicsStepsPerFrame caps catch-up after a long frame to avoid a spiral of death
	MaxPhysicsStepsPerFrame = 8

	// MaxFrameDelta clamps a single frame delta (debugger pauses, suspended terminals)
	MaxFrameDelta = 250 * time.Millisecond
)

// Time scales
const (
	DefaultTimeScale       = 1.0
	DefaultHunterTimeScale = 1.0
)

// Arena
const (
	ArenaWidth  = 60.0
	ArenaDepth  = 24.0
	RoomColumns = 3
	RoomRows    = 2
)

// Input
const (
	// KeyHoldWindow is how long a terminal key counts as held after its last press/repeat
	KeyHoldWindow = 120 * time.Millisecond

	// AssignmentDelay is the grace period before device assignment starts
	AssignmentDelay = 1500 * time.Millisecond
)
