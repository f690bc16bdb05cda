package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
)

// Proximity signal tone
const (
	ProximityToneFreq   = 220.0
	ProximityPulseFreq  = 3.0
	ProximityAmplitude  = 0.25
	HauntStingDuration  = 600 * time.Millisecond
	HauntStingFreq      = 140.0
	HauntStingAmplitude = 0.3
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "madmansion.log"
	MaxLogSize  = 10 * 1024 * 1024
)
