package engine

import (
	"container/heap"
	"time"
)

// Timeline is a queue of records keyed by due time
// Records due at the same instant pop in scheduling order
type Timeline[T any] struct {
	items timelineHeap[T]
	seq   uint64
}

type timelineItem[T any] struct {
	due   time.Time
	seq   uint64
	value T
}

type timelineHeap[T any] []timelineItem[T]

func (h timelineHeap[T]) Len() int { return len(h) }

func (h timelineHeap[T]) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timelineHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timelineHeap[T]) Push(x any) { *h = append(*h, x.(timelineItem[T])) }

func (h *timelineHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	var zero timelineItem[T]
	old[n-1] = zero
	*h = old[:n-1]
	return item
}

// Schedule queues value to become due at due
func (tl *Timeline[T]) Schedule(due time.Time, value T) {
	tl.seq++
	heap.Push(&tl.items, timelineItem[T]{due: due, seq: tl.seq, value: value})
}

// PopDue removes and returns the earliest record due at or before now
func (tl *Timeline[T]) PopDue(now time.Time) (T, bool) {
	if len(tl.items) == 0 || tl.items[0].due.After(now) {
		var zero T
		return zero, false
	}
	item := heap.Pop(&tl.items).(timelineItem[T])
	return item.value, true
}

// Len returns the number of pending records
func (tl *Timeline[T]) Len() int {
	return len(tl.items)
}

// Clear drops all pending records
func (tl *Timeline[T]) Clear() {
	clear(tl.items)
	tl.items = tl.items[:0]
}
