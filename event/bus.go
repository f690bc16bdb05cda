package event

import (
	"errors"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/logger"
)

// ErrNilHandler is returned when subscribing a nil handler
var ErrNilHandler = errors.New("event: nil handler")

// Handler processes specific event types
// Components implement this interface to receive bus events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously from Publish, in subscription order
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

type funcHandler struct {
	fn    func(GameEvent)
	types []EventType
}

func (h funcHandler) HandleEvent(ev GameEvent) { h.fn(ev) }
func (h funcHandler) EventTypes() []EventType  { return h.types }

// Listen adapts a function to a Handler for the given types
func Listen(fn func(GameEvent), types ...EventType) Handler {
	return funcHandler{fn: fn, types: types}
}

// On adapts a typed payload callback; events whose payload is not a P are dropped
func On[P any](et EventType, fn func(P)) Handler {
	return Listen(func(ev GameEvent) {
		if p, ok := ev.Payload.(P); ok {
			fn(p)
		}
	}, et)
}

// Bus is a synchronous publish/subscribe channel for game events
//
// Architecture:
//   - Publish delivers to every subscriber before returning
//   - Handlers are invoked in subscription order
//   - A Publish issued while an event is being delivered is queued and delivered after it, FIFO
//   - Subscriptions closed during delivery stop receiving immediately
type Bus struct {
	mu         sync.Mutex
	handlers   map[EventType][]*Subscription
	pending    []GameEvent
	delivering bool
	log        logrus.FieldLogger
}

// NewBus creates an empty bus; log may be nil
func NewBus(log logrus.FieldLogger) *Bus {
	if log == nil {
		log = logger.Discard()
	}
	return &Bus{
		handlers: make(map[EventType][]*Subscription),
		log:      log.WithField("component", "bus"),
	}
}

// Subscribe registers handler for its declared event types
func (b *Bus) Subscribe(h Handler) (*Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{bus: b, handler: h, types: append([]EventType(nil), h.EventTypes()...)}
	sub.active = true

	b.mu.Lock()
	for _, t := range sub.types {
		b.handlers[t] = append(b.handlers[t], sub)
	}
	b.mu.Unlock()
	return sub, nil
}

// Publish delivers an event to all current subscribers of its type and returns its ID
func (b *Bus) Publish(et EventType, payload any) ulid.ULID {
	ev := GameEvent{ID: ulid.Make(), Type: et, Payload: payload}

	b.mu.Lock()
	b.pending = append(b.pending, ev)
	if b.delivering {
		b.mu.Unlock()
		return ev.ID
	}
	b.delivering = true
	b.mu.Unlock()

	b.drain()
	return ev.ID
}

// drain delivers queued events until the queue is empty
func (b *Bus) drain() {
	defer func() {
		if r := recover(); r != nil {
			b.mu.Lock()
			b.pending = nil
			b.delivering = false
			b.mu.Unlock()
			panic(r)
		}
	}()

	for {
		b.mu.Lock()
		if len(b.pending) == 0 {
			b.delivering = false
			b.mu.Unlock()
			return
		}
		ev := b.pending[0]
		b.pending[0] = GameEvent{}
		b.pending = b.pending[1:]
		subs := append([]*Subscription(nil), b.handlers[ev.Type]...)
		b.mu.Unlock()

		b.log.WithFields(logrus.Fields{
			"event":       ev.Type.String(),
			"id":          ev.ID.String(),
			"subscribers": len(subs),
		}).Debug("publish")

		for _, sub := range subs {
			if sub.isActive() {
				sub.handler.HandleEvent(ev)
			}
		}
	}
}

// HandlerCount returns the number of subscriptions for the given type
func (b *Bus) HandlerCount(t EventType) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[t])
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range sub.types {
		list := b.handlers[t]
		for i, s := range list {
			if s == sub {
				// Copy-on-remove keeps slices captured by an in-flight drain intact
				next := make([]*Subscription, 0, len(list)-1)
				next = append(next, list[:i]...)
				next = append(next, list[i+1:]...)
				b.handlers[t] = next
				break
			}
		}
		if len(b.handlers[t]) == 0 {
			delete(b.handlers, t)
		}
	}
}
