package scenario

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/input"
)

var (
	// ErrUnknownEvent is returned for an event name missing from the event registry
	ErrUnknownEvent = errors.New("scenario: unknown event")
	// ErrInvalidStep is returned for a step that is neither an event nor a device action
	ErrInvalidStep = errors.New("scenario: invalid step")
)

// Device names accepted by device steps
const (
	DeviceHunter = "hunter"
	DeviceGhost  = "ghost"
)

var buttonNames = map[string]input.Button{
	"action1": input.Action1,
	"action2": input.Action2,
	"action3": input.Action3,
	"action4": input.Action4,
	"possess": input.ButtonPossess,
	"haunt":   input.ButtonHaunt,
	"smell":   input.ButtonSmell,
	"catch":   input.ButtonCatch,
}

// File is the YAML layout of a scenario
type File struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	Steps    []StepConfig  `yaml:"steps"`
}

// StepConfig is one timeline entry, either an event publish or a device action
type StepConfig struct {
	At      time.Duration `yaml:"at"`
	Event   string        `yaml:"event,omitempty"`
	Payload yaml.Node     `yaml:"payload,omitempty"`

	Device  string    `yaml:"device,omitempty"`
	Stick   []float64 `yaml:"stick,omitempty"`
	Press   []string  `yaml:"press,omitempty"`
	Release []string  `yaml:"release,omitempty"`
}

// Step is a resolved timeline entry
type Step struct {
	At time.Duration

	// Event steps
	HasEvent bool
	Type     event.EventType
	Payload  any

	// Device steps
	Device   string
	HasStick bool
	StickX   float64
	StickY   float64
	Press    []input.Button
	Release  []input.Button
}

// Scenario is a parsed, time-ordered script
type Scenario struct {
	Name     string
	Duration time.Duration
	Steps    []Step
}

// Parse decodes and resolves a scenario
// Steps are ordered by time, keeping file order for equal times
func Parse(data []byte) (*Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	sc := &Scenario{Name: f.Name, Duration: f.Duration}
	for i, cfg := range f.Steps {
		step, err := resolve(cfg)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		sc.Steps = append(sc.Steps, step)
	}

	sort.SliceStable(sc.Steps, func(i, j int) bool {
		return sc.Steps[i].At < sc.Steps[j].At
	})

	if sc.Duration == 0 && len(sc.Steps) > 0 {
		sc.Duration = sc.Steps[len(sc.Steps)-1].At
	}
	return sc, nil
}

func resolve(cfg StepConfig) (Step, error) {
	step := Step{At: cfg.At}
	if cfg.At < 0 {
		return step, fmt.Errorf("%w: negative time %v", ErrInvalidStep, cfg.At)
	}

	if cfg.Event != "" {
		et, ok := event.GetEventType(cfg.Event)
		if !ok || et == event.EventTick {
			return step, fmt.Errorf("%w: %q", ErrUnknownEvent, cfg.Event)
		}
		step.HasEvent = true
		step.Type = et

		ptr := event.NewPayloadStruct(et)
		switch {
		case ptr == nil && cfg.Payload.Kind != 0:
			return step, fmt.Errorf("%w: event %s takes no payload", ErrInvalidStep, cfg.Event)
		case ptr != nil:
			if cfg.Payload.Kind != 0 {
				if err := cfg.Payload.Decode(ptr); err != nil {
					return step, fmt.Errorf("decode %s payload: %w", cfg.Event, err)
				}
			}
			// Subscribers receive payload values, not pointers
			step.Payload = reflect.ValueOf(ptr).Elem().Interface()
		}
	}

	if cfg.Device != "" {
		dev := strings.ToLower(cfg.Device)
		if dev != DeviceHunter && dev != DeviceGhost {
			return step, fmt.Errorf("%w: unknown device %q", ErrInvalidStep, cfg.Device)
		}
		step.Device = dev

		if cfg.Stick != nil {
			if len(cfg.Stick) != 2 {
				return step, fmt.Errorf("%w: stick needs 2 axes, got %d", ErrInvalidStep, len(cfg.Stick))
			}
			step.HasStick = true
			step.StickX, step.StickY = cfg.Stick[0], cfg.Stick[1]
		}

		var err error
		if step.Press, err = buttons(cfg.Press); err != nil {
			return step, err
		}
		if step.Release, err = buttons(cfg.Release); err != nil {
			return step, err
		}
	} else if cfg.Stick != nil || len(cfg.Press) > 0 || len(cfg.Release) > 0 {
		return step, fmt.Errorf("%w: device action without device", ErrInvalidStep)
	}

	if !step.HasEvent && step.Device == "" {
		return step, fmt.Errorf("%w: empty step", ErrInvalidStep)
	}
	return step, nil
}

func buttons(names []string) ([]input.Button, error) {
	var out []input.Button
	for _, n := range names {
		b, ok := buttonNames[strings.ToLower(n)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown button %q", ErrInvalidStep, n)
		}
		out = append(out, b)
	}
	return out, nil
}
