package parameter

import "time"

// Behavior transition timing
const (
	// ReactionDelay is the pause between a triggering event and the visible reaction
	ReactionDelay = 200 * time.Millisecond

	// ConfusionDuration is how long a possessed actor stays confused
	ConfusionDuration = 3 * time.Second
)

// Ghost tracker
const (
	// TrackerHistoryDelay is how stale the position reported to the hunter is
	TrackerHistoryDelay = 5 * time.Second

	// TrackerMaxSamples bounds the recorded history ring
	TrackerMaxSamples = 1024
)

// Director (demo haunt/possession/catch managers)
const (
	HauntDuration     = 4 * time.Second
	HauntCooldown     = 8 * time.Second
	PossessionRadius  = 6.0
	PossessionCost    = 2 * time.Second
	CatchRadius       = 1.5
	RevealPercentStep = 0.25
)
