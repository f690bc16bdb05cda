package status

import (
	"reflect"
	"testing"
)

func TestRegistryCachedPointers(t *testing.T) {
	r := NewRegistry()

	scared := r.Bools.Get("hunter.scared")
	if scared != r.Bools.Get("hunter.scared") {
		t.Fatal("Get should return the cached pointer")
	}
	scared.Store(true)
	r.Floats.Get("time.hunter").Set(0.5)

	want := []string{"hunter.scared=true", "time.hunter=0.50"}
	if got := r.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestAtomicFloat(t *testing.T) {
	f := NewAtomicFloat(1.25)
	if f.Get() != 1.25 {
		t.Errorf("Get = %v, want 1.25", f.Get())
	}
	var zero AtomicFloat
	if zero.Get() != 0 {
		t.Errorf("zero value = %v, want 0", zero.Get())
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	f.Add(0.25)
	if got := f.Add(0.5); got != 0.75 {
		t.Errorf("Add = %v, want 0.75", got)
	}
}

func TestSlotsRangeSorted(t *testing.T) {
	s := NewSlots[int]()
	for _, k := range []string{"c", "a", "b"} {
		*s.Get(k) = len(k)
	}
	var keys []string
	s.Range(func(k string, _ *int) { keys = append(keys, k) })
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Errorf("keys = %v", keys)
	}
}
