package event

import "sync"

// Subscription is a live registration on a Bus
type Subscription struct {
	bus     *Bus
	handler Handler
	types   []EventType

	mu     sync.Mutex
	active bool
}

func (s *Subscription) isActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close deregisters the handler; safe to call more than once
func (s *Subscription) Close() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	s.bus.remove(s)
}

// Scope groups subscriptions tied to one component activation window
// Zero value is ready to use
type Scope struct {
	subs []*Subscription
}

// Subscribe registers all handlers on bus; on failure every registration made so far is released
func (sc *Scope) Subscribe(bus *Bus, handlers ...Handler) (err error) {
	added := make([]*Subscription, 0, len(handlers))
	defer func() {
		if err != nil {
			for _, s := range added {
				s.Close()
			}
		}
	}()

	for _, h := range handlers {
		sub, subErr := bus.Subscribe(h)
		if subErr != nil {
			return subErr
		}
		added = append(added, sub)
	}

	sc.subs = append(sc.subs, added...)
	return nil
}

// Active reports whether the scope holds any subscription
func (sc *Scope) Active() bool {
	return len(sc.subs) > 0
}

// Close releases every subscription in reverse registration order
func (sc *Scope) Close() {
	for i := len(sc.subs) - 1; i >= 0; i-- {
		sc.subs[i].Close()
	}
	sc.subs = nil
}
