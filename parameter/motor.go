package parameter

// Motor tuning, matches the shipped character prefab
const (
	// MovementSpeed is the target planar speed in units per second at time scale 1
	MovementSpeed = 7.0

	// RotationSpeed is the maximum forward-axis turn rate in radians per second
	RotationSpeed = 10.0

	// RotationSensitivity is the squared speed below which the body keeps its heading
	RotationSensitivity = 0.5

	// GhostMovementSensitivity is the squared ghost stick magnitude under which hunter input wins
	GhostMovementSensitivity = 0.5

	// AnimationScale converts body speed into walk animation rate
	AnimationScale = 1.0

	// NeutralAnimationRate is applied whenever movement must not distort the clip
	NeutralAnimationRate = 1.0
)

// Reveal marker
const (
	// RevealForwardOffset is how far the marker is pushed along the actor forward axis when on the hunter
	RevealForwardOffset = 3.0

	// RevealRestHeight is the marker resting local offset above the actor origin
	RevealRestHeight = 2.0
)

// Proximity signal
const (
	// SmellVolumeReduction is the distance at which the proximity signal saturates
	SmellVolumeReduction = 20.0
)
