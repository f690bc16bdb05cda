package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/mad-mansion/actor"
	"github.com/lixenwraith/mad-mansion/audio"
)

func TestDefaultsMatchPackages(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.ActorConfig() != actor.DefaultConfig() {
		t.Errorf("actor config = %+v, want %+v", cfg.ActorConfig(), actor.DefaultConfig())
	}
	if cfg.AudioConfig() != audio.DefaultConfig() {
		t.Errorf("audio config = %+v, want %+v", cfg.AudioConfig(), audio.DefaultConfig())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "madmansion.yaml")
	data := `
sim:
  physics_step: 10ms
  max_frame_delta: 500ms
motor:
  movement_speed: 3.5
behavior:
  reaction_delay: 1s
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.PhysicsStep != 10*time.Millisecond {
		t.Errorf("physics step = %v", cfg.Sim.PhysicsStep)
	}
	if cfg.Motor.MovementSpeed != 3.5 {
		t.Errorf("movement speed = %v", cfg.Motor.MovementSpeed)
	}
	if cfg.Behavior.ReactionDelay != time.Second {
		t.Errorf("reaction delay = %v", cfg.Behavior.ReactionDelay)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	// untouched keys keep defaults
	if cfg.Behavior.ConfusionDuration != Default().Behavior.ConfusionDuration {
		t.Errorf("confusion duration = %v", cfg.Behavior.ConfusionDuration)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MADMANSION_MOTOR_MOVEMENT_SPEED", "9")
	t.Setenv("MADMANSION_BEHAVIOR_CONFUSION_DURATION", "5s")
	t.Setenv("MADMANSION_LOG_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Motor.MovementSpeed != 9 {
		t.Errorf("movement speed = %v, want 9", cfg.Motor.MovementSpeed)
	}
	if cfg.Behavior.ConfusionDuration != 5*time.Second {
		t.Errorf("confusion duration = %v, want 5s", cfg.Behavior.ConfusionDuration)
	}
	if !cfg.Log.Enabled {
		t.Error("log should be enabled from env")
	}
	if cfg.Motor.RotationSpeed != Default().Motor.RotationSpeed {
		t.Errorf("unset variable changed rotation speed to %v", cfg.Motor.RotationSpeed)
	}
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("MADMANSION_SIM_MAX_STEPS", "many")
	if _, err := Load(""); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errs   int
	}{
		{"defaults", func(*Config) {}, 0},
		{"zero physics step", func(c *Config) { c.Sim.PhysicsStep = 0 }, 1},
		{"negative delay", func(c *Config) { c.Behavior.ReactionDelay = -time.Second }, 1},
		{"reveal step out of range", func(c *Config) { c.Director.RevealStep = 2 }, 1},
		{"several", func(c *Config) {
			c.Proximity.VolumeReduction = 0
			c.Tracker.MaxSamples = 0
			c.Audio.SampleRate = 0
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errs == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("error %v does not wrap ErrInvalid", err)
			}
			joined, ok := err.(interface{ Unwrap() []error })
			if !ok {
				t.Fatalf("error %T is not joined", err)
			}
			if got := len(joined.Unwrap()); got != tt.errs {
				t.Errorf("got %d errors, want %d: %v", got, tt.errs, err)
			}
		})
	}
}
