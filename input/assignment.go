package input

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/event"
	"github.com/lixenwraith/mad-mansion/logger"
)

// ErrNoBus is returned when an Assigner is built without an event bus
var ErrNoBus = errors.New("input: assigner requires an event bus")

// Device is an assignable input source
type Device interface {
	Source
	Name() string
	// AnyButton reports a rising edge on any button this frame
	AnyButton() bool
}

// AssignStatus is the device assignment phase
type AssignStatus uint8

const (
	AssigningHunter AssignStatus = iota
	AssigningGhost
	AllAssigned
)

// String returns the phase name
func (s AssignStatus) String() string {
	switch s {
	case AssigningHunter:
		return "AssigningHunter"
	case AssigningGhost:
		return "AssigningGhost"
	case AllAssigned:
		return "AllAssigned"
	default:
		return "Unknown"
	}
}

// Assigner binds devices to roles in press order: the first device to press a button
// becomes the Hunter, the next one the Ghost
//
// Reset publishes PauseGame; completing assignment publishes ResumeGame and, the first
// time only, StartGame
type Assigner struct {
	bus   *event.Bus
	delay time.Duration

	elapsed time.Duration
	armed   bool

	status        AssignStatus
	hunter, ghost Device
	started       bool

	log logrus.FieldLogger
}

// NewAssigner creates an assigner that arms after delay of frame time
func NewAssigner(bus *event.Bus, delay time.Duration, log logrus.FieldLogger) (*Assigner, error) {
	if bus == nil {
		return nil, ErrNoBus
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Assigner{
		bus:   bus,
		delay: delay,
		log:   log.WithField("component", "assigner"),
	}, nil
}

// Status returns the current phase
func (a *Assigner) Status() AssignStatus {
	return a.status
}

// Armed reports whether the startup delay has elapsed
func (a *Assigner) Armed() bool {
	return a.armed
}

// Hunter returns the hunter device, nil if unassigned
func (a *Assigner) Hunter() Source {
	if a.hunter == nil {
		return nil
	}
	return a.hunter
}

// Ghost returns the ghost device, nil if unassigned
func (a *Assigner) Ghost() Source {
	if a.ghost == nil {
		return nil
	}
	return a.ghost
}

// Reset drops both assignments and pauses the game
func (a *Assigner) Reset() {
	a.status = AssigningHunter
	a.hunter = nil
	a.ghost = nil
	a.log.Info("device assignment reset")
	a.bus.Publish(event.EventPauseGame, nil)
}

// DeviceChanged handles a device attach or detach
func (a *Assigner) DeviceChanged() {
	if a.armed {
		a.Reset()
	}
}

// Update advances the startup delay, then offers the first pressing device
func (a *Assigner) Update(dt time.Duration, devices []Device) {
	if !a.armed {
		a.elapsed += dt
		if a.elapsed < a.delay {
			return
		}
		a.armed = true
		a.Reset()
	}

	for _, dev := range devices {
		if dev == nil || !dev.AnyButton() {
			continue
		}
		if dev == a.hunter || dev == a.ghost {
			continue
		}
		a.offer(dev)
		return
	}
}

func (a *Assigner) offer(dev Device) {
	switch a.status {
	case AssigningHunter:
		a.log.WithField("device", dev.Name()).Info("assigning hunter")
		a.hunter = dev
		a.status = AssigningGhost

	case AssigningGhost:
		a.log.WithField("device", dev.Name()).Info("assigning ghost")
		a.ghost = dev
		a.status = AllAssigned
		a.bus.Publish(event.EventResumeGame, nil)
		if !a.started {
			a.started = true
			a.bus.Publish(event.EventStartGame, nil)
		}
	}
}
