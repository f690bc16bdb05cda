package status

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Slots maps names to long-lived values of type T
// Writers keep the returned pointer and update it without touching the map again
type Slots[T any] struct {
	mu    sync.RWMutex
	byKey map[string]*T
}

// NewSlots returns an empty table
func NewSlots[T any]() *Slots[T] {
	return &Slots[T]{byKey: make(map[string]*T)}
}

func (s *Slots[T]) lookup(key string) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byKey[key]
	return p, ok
}

// Get returns the slot for key, allocating a zero value on first use
func (s *Slots[T]) Get(key string) *T {
	if p, ok := s.lookup(key); ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byKey[key]
	if !ok {
		p = new(T)
		s.byKey[key] = p
	}
	return p
}

// Range visits slots by ascending key
func (s *Slots[T]) Range(fn func(key string, p *T)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range slices.Sorted(maps.Keys(s.byKey)) {
		fn(k, s.byKey[k])
	}
}

// Registry is the shared HUD state written by actors, the director and the engine
type Registry struct {
	Bools  *Slots[atomic.Bool]
	Ints   *Slots[atomic.Int64]
	Floats *Slots[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewSlots[atomic.Bool](),
		Ints:   NewSlots[atomic.Int64](),
		Floats: NewSlots[AtomicFloat](),
	}
}

// Lines formats every slot as key=value; bools first, then ints, then floats
func (r *Registry) Lines() []string {
	var out []string
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s=%.2f", k, v.Get()))
	})
	return out
}
