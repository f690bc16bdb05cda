package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as its IEEE bits; the zero value reads 0
type AtomicFloat struct {
	v atomic.Uint64
}

func NewAtomicFloat(x float64) *AtomicFloat {
	var f AtomicFloat
	f.Set(x)
	return &f
}

func (f *AtomicFloat) Set(x float64) { f.v.Store(math.Float64bits(x)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.v.Load()) }

// Add adds delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.v.Load()
		next := math.Float64frombits(old) + delta
		if f.v.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
