package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/logger"
	"github.com/lixenwraith/mad-mansion/parameter"
)

// Config holds sound manager settings
type Config struct {
	SampleRate     int
	BufferDuration time.Duration
	ToneFreq       float64
	PulseFreq      float64
	Amplitude      float64
	StingDuration  time.Duration
	StingFreq      float64
	StingAmplitude float64
}

// DefaultConfig returns the shipped audio settings
func DefaultConfig() Config {
	return Config{
		SampleRate:     parameter.AudioSampleRate,
		BufferDuration: parameter.AudioBufferDuration,
		ToneFreq:       parameter.ProximityToneFreq,
		PulseFreq:      parameter.ProximityPulseFreq,
		Amplitude:      parameter.ProximityAmplitude,
		StingDuration:  parameter.HauntStingDuration,
		StingFreq:      parameter.HauntStingFreq,
		StingAmplitude: parameter.HauntStingAmplitude,
	}
}

// SoundManager manages game audio: the looping proximity signal and the haunt sting
//
// Every operation is safe without an initialized speaker; state is tracked either way
// so the HUD can show it when the process has no audio device
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool

	proximityCtrl   *beep.Ctrl
	proximityVolume *effects.Volume
	playing         bool
	volume          float64
	stings          int

	log logrus.FieldLogger
}

// NewSoundManager creates a new sound manager; log may be nil
func NewSoundManager(cfg Config, log logrus.FieldLogger) *SoundManager {
	if log == nil {
		log = logger.Discard()
	}
	return &SoundManager{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		log:   log.WithField("component", "audio"),
	}
}

// Initialize sets up the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(sm.cfg.BufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.WithField("sample_rate", sm.cfg.SampleRate).Info("audio initialized")
	return nil
}

// Initialized reports whether the speaker is running
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.playing = false
	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.proximityCtrl != nil {
		sm.proximityCtrl.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.proximityCtrl = nil
	sm.proximityVolume = nil
	sm.initialized = false
}

// PlayProximitySignal starts the proximity loop if needed and sets its volume
func (sm *SoundManager) PlayProximitySignal(volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.volume = volume
	sm.playing = true
	if !sm.initialized {
		return
	}

	exp, silent := volumeExponent(volume)
	speaker.Lock()
	defer speaker.Unlock()

	if sm.proximityCtrl == nil {
		sm.proximityVolume = &effects.Volume{
			Streamer: newPulseTone(sm.rate, sm.cfg.ToneFreq, sm.cfg.PulseFreq, sm.cfg.Amplitude),
			Base:     2,
		}
		sm.proximityCtrl = &beep.Ctrl{Streamer: sm.proximityVolume}
		sm.mixer.Add(sm.proximityCtrl)
	}
	sm.proximityVolume.Volume = exp
	sm.proximityVolume.Silent = silent
	sm.proximityCtrl.Paused = false
}

// StopProximitySignal pauses the proximity loop
func (sm *SoundManager) StopProximitySignal() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.playing {
		return
	}
	sm.playing = false
	if !sm.initialized || sm.proximityCtrl == nil {
		return
	}

	speaker.Lock()
	sm.proximityCtrl.Paused = true
	speaker.Unlock()
}

// ProximityPlaying reports whether the proximity signal is on
func (sm *SoundManager) ProximityPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.playing
}

// ProximityVolume returns the last requested proximity volume
func (sm *SoundManager) ProximityVolume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// PlayHauntSting plays the one-shot haunt sound
func (sm *SoundManager) PlayHauntSting() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stings++
	if !sm.initialized {
		return
	}

	streamer := beep.Take(sm.rate.N(sm.cfg.StingDuration),
		newSting(sm.rate, sm.cfg.StingFreq, sm.cfg.StingAmplitude, sm.cfg.StingDuration))
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Stings returns how many haunt stings were requested
func (sm *SoundManager) Stings() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.stings
}

// HauntStingPlayer plays the haunt sting on every Haunt event
type HauntStingPlayer struct {
	sm *SoundManager
}

// NewHauntStingPlayer creates the bus handler
func NewHauntStingPlayer(sm *SoundManager) *HauntStingPlayer {
	return &HauntStingPlayer{sm: sm}
}

// HandleEvent implements event.Handler
func (h *HauntStingPlayer) HandleEvent(event.GameEvent) {
	h.sm.PlayHauntSting()
}

// EventTypes implements event.Handler
func (h *HauntStingPlayer) EventTypes() []event.EventType {
	return []event.EventType{event.EventHaunt}
}
