package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/mad-mansion/actor"
	"github.com/lixenwraith/mad-mansion/audio"
	"github.com/lixenwraith/mad-mansion/engine"
	"github.com/lixenwraith/mad-mansion/logger"
	"github.com/lixenwraith/mad-mansion/parameter"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "MADMANSION_"

// ErrInvalid marks a configuration value outside its allowed range
var ErrInvalid = errors.New("invalid config")

// Config is the full runtime configuration
type Config struct {
	Sim       SimConfig       `yaml:"sim" envPrefix:"SIM_"`
	Motor     MotorConfig     `yaml:"motor" envPrefix:"MOTOR_"`
	Behavior  BehaviorConfig  `yaml:"behavior" envPrefix:"BEHAVIOR_"`
	Reveal    RevealConfig    `yaml:"reveal" envPrefix:"REVEAL_"`
	Proximity ProximityConfig `yaml:"proximity" envPrefix:"PROXIMITY_"`
	Tracker   TrackerConfig   `yaml:"tracker" envPrefix:"TRACKER_"`
	Director  DirectorConfig  `yaml:"director" envPrefix:"DIRECTOR_"`
	Audio     AudioConfig     `yaml:"audio" envPrefix:"AUDIO_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
}

type SimConfig struct {
	FrameInterval   time.Duration `yaml:"frame_interval" env:"FRAME_INTERVAL"`
	PhysicsStep     time.Duration `yaml:"physics_step" env:"PHYSICS_STEP"`
	MaxSteps        int           `yaml:"max_steps" env:"MAX_STEPS"`
	MaxFrameDelta   time.Duration `yaml:"max_frame_delta" env:"MAX_FRAME_DELTA"`
	TimeScale       float64       `yaml:"time_scale" env:"TIME_SCALE"`
	HunterTimeScale float64       `yaml:"hunter_time_scale" env:"HUNTER_TIME_SCALE"`
	ArenaWidth      float64       `yaml:"arena_width" env:"ARENA_WIDTH"`
	ArenaDepth      float64       `yaml:"arena_depth" env:"ARENA_DEPTH"`
	RoomColumns     int           `yaml:"room_columns" env:"ROOM_COLUMNS"`
	RoomRows        int           `yaml:"room_rows" env:"ROOM_ROWS"`
	KeyHoldWindow   time.Duration `yaml:"key_hold_window" env:"KEY_HOLD_WINDOW"`
	AssignmentDelay time.Duration `yaml:"assignment_delay" env:"ASSIGNMENT_DELAY"`
}

type MotorConfig struct {
	MovementSpeed            float64 `yaml:"movement_speed" env:"MOVEMENT_SPEED"`
	RotationSpeed            float64 `yaml:"rotation_speed" env:"ROTATION_SPEED"`
	RotationSensitivity      float64 `yaml:"rotation_sensitivity" env:"ROTATION_SENSITIVITY"`
	GhostMovementSensitivity float64 `yaml:"ghost_movement_sensitivity" env:"GHOST_MOVEMENT_SENSITIVITY"`
	AnimationScale           float64 `yaml:"animation_scale" env:"ANIMATION_SCALE"`
}

type BehaviorConfig struct {
	ReactionDelay     time.Duration `yaml:"reaction_delay" env:"REACTION_DELAY"`
	ConfusionDuration time.Duration `yaml:"confusion_duration" env:"CONFUSION_DURATION"`
}

type RevealConfig struct {
	ForwardOffset float64 `yaml:"forward_offset" env:"FORWARD_OFFSET"`
	RestHeight    float64 `yaml:"rest_height" env:"REST_HEIGHT"`
}

type ProximityConfig struct {
	VolumeReduction float64 `yaml:"volume_reduction" env:"VOLUME_REDUCTION"`
}

type TrackerConfig struct {
	HistoryDelay time.Duration `yaml:"history_delay" env:"HISTORY_DELAY"`
	MaxSamples   int           `yaml:"max_samples" env:"MAX_SAMPLES"`
}

type DirectorConfig struct {
	HauntDuration    time.Duration `yaml:"haunt_duration" env:"HAUNT_DURATION"`
	HauntCooldown    time.Duration `yaml:"haunt_cooldown" env:"HAUNT_COOLDOWN"`
	PossessionRadius float64       `yaml:"possession_radius" env:"POSSESSION_RADIUS"`
	PossessionCost   time.Duration `yaml:"possession_cost" env:"POSSESSION_COST"`
	CatchRadius      float64       `yaml:"catch_radius" env:"CATCH_RADIUS"`
	RevealStep       float64       `yaml:"reveal_step" env:"REVEAL_STEP"`
}

type AudioConfig struct {
	Enabled        bool          `yaml:"enabled" env:"ENABLED"`
	SampleRate     int           `yaml:"sample_rate" env:"SAMPLE_RATE"`
	BufferDuration time.Duration `yaml:"buffer_duration" env:"BUFFER_DURATION"`
	ToneFreq       float64       `yaml:"tone_freq" env:"TONE_FREQ"`
	PulseFreq      float64       `yaml:"pulse_freq" env:"PULSE_FREQ"`
	Amplitude      float64       `yaml:"amplitude" env:"AMPLITUDE"`
	StingDuration  time.Duration `yaml:"sting_duration" env:"STING_DURATION"`
	StingFreq      float64       `yaml:"sting_freq" env:"STING_FREQ"`
	StingAmplitude float64       `yaml:"sting_amplitude" env:"STING_AMPLITUDE"`
}

type LogConfig struct {
	Level   string `yaml:"level" env:"LEVEL"`
	Format  string `yaml:"format" env:"FORMAT"`
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Dir     string `yaml:"dir" env:"DIR"`
	File    string `yaml:"file" env:"FILE"`
	MaxSize int64  `yaml:"max_size" env:"MAX_SIZE"`
}

// Default returns the shipped configuration
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			FrameInterval:   parameter.FrameUpdateInterval,
			PhysicsStep:     parameter.PhysicsUpdateInterval,
			MaxSteps:        parameter.MaxPhysicsStepsPerFrame,
			MaxFrameDelta:   parameter.MaxFrameDelta,
			TimeScale:       parameter.DefaultTimeScale,
			HunterTimeScale: parameter.DefaultHunterTimeScale,
			ArenaWidth:      parameter.ArenaWidth,
			ArenaDepth:      parameter.ArenaDepth,
			RoomColumns:     parameter.RoomColumns,
			RoomRows:        parameter.RoomRows,
			KeyHoldWindow:   parameter.KeyHoldWindow,
			AssignmentDelay: parameter.AssignmentDelay,
		},
		Motor: MotorConfig{
			MovementSpeed:            parameter.MovementSpeed,
			RotationSpeed:            parameter.RotationSpeed,
			RotationSensitivity:      parameter.RotationSensitivity,
			GhostMovementSensitivity: parameter.GhostMovementSensitivity,
			AnimationScale:           parameter.AnimationScale,
		},
		Behavior: BehaviorConfig{
			ReactionDelay:     parameter.ReactionDelay,
			ConfusionDuration: parameter.ConfusionDuration,
		},
		Reveal: RevealConfig{
			ForwardOffset: parameter.RevealForwardOffset,
			RestHeight:    parameter.RevealRestHeight,
		},
		Proximity: ProximityConfig{
			VolumeReduction: parameter.SmellVolumeReduction,
		},
		Tracker: TrackerConfig{
			HistoryDelay: parameter.TrackerHistoryDelay,
			MaxSamples:   parameter.TrackerMaxSamples,
		},
		Director: DirectorConfig{
			HauntDuration:    parameter.HauntDuration,
			HauntCooldown:    parameter.HauntCooldown,
			PossessionRadius: parameter.PossessionRadius,
			PossessionCost:   parameter.PossessionCost,
			CatchRadius:      parameter.CatchRadius,
			RevealStep:       parameter.RevealPercentStep,
		},
		Audio: AudioConfig{
			Enabled:        true,
			SampleRate:     parameter.AudioSampleRate,
			BufferDuration: parameter.AudioBufferDuration,
			ToneFreq:       parameter.ProximityToneFreq,
			PulseFreq:      parameter.ProximityPulseFreq,
			Amplitude:      parameter.ProximityAmplitude,
			StingDuration:  parameter.HauntStingDuration,
			StingFreq:      parameter.HauntStingFreq,
			StingAmplitude: parameter.HauntStingAmplitude,
		},
		Log: LogConfig{
			Level:   "info",
			Format:  "text",
			Dir:     parameter.LogDir,
			File:    parameter.LogFileName,
			MaxSize: parameter.MaxLogSize,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv overlays MADMANSION_* variables onto cfg; unset variables keep current values
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every out-of-range value at once
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Sim.FrameInterval > 0, "sim.frame_interval must be positive")
	check(c.Sim.PhysicsStep > 0, "sim.physics_step must be positive")
	check(c.Sim.MaxSteps > 0, "sim.max_steps must be positive")
	check(c.Sim.MaxFrameDelta >= c.Sim.PhysicsStep, "sim.max_frame_delta %v below physics step", c.Sim.MaxFrameDelta)
	check(c.Sim.TimeScale >= 0, "sim.time_scale must not be negative")
	check(c.Sim.HunterTimeScale >= 0, "sim.hunter_time_scale must not be negative")
	check(c.Sim.ArenaWidth > 0 && c.Sim.ArenaDepth > 0, "sim arena must have positive size")
	check(c.Sim.RoomColumns > 0 && c.Sim.RoomRows > 0, "sim room grid must be at least 1x1")
	check(c.Sim.KeyHoldWindow > 0, "sim.key_hold_window must be positive")
	check(c.Sim.AssignmentDelay >= 0, "sim.assignment_delay must not be negative")

	check(c.Motor.MovementSpeed >= 0, "motor.movement_speed must not be negative")
	check(c.Motor.RotationSpeed >= 0, "motor.rotation_speed must not be negative")
	check(c.Motor.RotationSensitivity >= 0, "motor.rotation_sensitivity must not be negative")
	check(c.Motor.GhostMovementSensitivity >= 0, "motor.ghost_movement_sensitivity must not be negative")

	check(c.Behavior.ReactionDelay >= 0, "behavior.reaction_delay must not be negative")
	check(c.Behavior.ConfusionDuration >= 0, "behavior.confusion_duration must not be negative")

	check(c.Proximity.VolumeReduction > 0, "proximity.volume_reduction must be positive")

	check(c.Tracker.HistoryDelay >= 0, "tracker.history_delay must not be negative")
	check(c.Tracker.MaxSamples > 0, "tracker.max_samples must be positive")

	check(c.Director.HauntDuration > 0, "director.haunt_duration must be positive")
	check(c.Director.HauntCooldown >= 0, "director.haunt_cooldown must not be negative")
	check(c.Director.PossessionRadius > 0, "director.possession_radius must be positive")
	check(c.Director.CatchRadius > 0, "director.catch_radius must be positive")
	check(c.Director.RevealStep > 0 && c.Director.RevealStep <= 1, "director.reveal_step must be in (0, 1]")

	check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive")
	check(c.Audio.BufferDuration > 0, "audio.buffer_duration must be positive")

	return errors.Join(errs...)
}

// ActorConfig returns the per-actor tuning
func (c *Config) ActorConfig() actor.Config {
	return actor.Config{
		MovementSpeed:            c.Motor.MovementSpeed,
		RotationSpeed:            c.Motor.RotationSpeed,
		RotationSensitivity:      c.Motor.RotationSensitivity,
		GhostMovementSensitivity: c.Motor.GhostMovementSensitivity,
		AnimationScale:           c.Motor.AnimationScale,
		ReactionDelay:            c.Behavior.ReactionDelay,
		ConfusionDuration:        c.Behavior.ConfusionDuration,
		RevealForwardOffset:      c.Reveal.ForwardOffset,
		RevealRestHeight:         c.Reveal.RestHeight,
		SmellVolumeReduction:     c.Proximity.VolumeReduction,
	}
}

func (c *Config) LoopConfig() engine.LoopConfig {
	return engine.LoopConfig{
		FrameInterval: c.Sim.FrameInterval,
		PhysicsStep:   c.Sim.PhysicsStep,
		MaxSteps:      c.Sim.MaxSteps,
		MaxFrameDelta: c.Sim.MaxFrameDelta,
	}
}

func (c *Config) AudioConfig() audio.Config {
	return audio.Config{
		SampleRate:     c.Audio.SampleRate,
		BufferDuration: c.Audio.BufferDuration,
		ToneFreq:       c.Audio.ToneFreq,
		PulseFreq:      c.Audio.PulseFreq,
		Amplitude:      c.Audio.Amplitude,
		StingDuration:  c.Audio.StingDuration,
		StingFreq:      c.Audio.StingFreq,
		StingAmplitude: c.Audio.StingAmplitude,
	}
}

func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:   c.Log.Level,
		Format:  c.Log.Format,
		Enabled: c.Log.Enabled,
		Dir:     c.Log.Dir,
		File:    c.Log.File,
		MaxSize: c.Log.MaxSize,
	}
}
