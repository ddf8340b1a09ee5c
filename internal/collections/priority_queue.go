package collections

import "container/heap"

type (
	// Ordered describes a type with a strict weak ordering (see
	// https://en.wikipedia.org/wiki/Weak_ordering#Strict_weak_orderings).
	// diagnostic.Diagnostic implements it so a batch of compiler
	// diagnostics can be popped in fix-priority order (spec §4.7 step 5).
	Ordered[T any] interface {
		// Less reports whether this element must sort before the other element.
		Less(T) bool
	}

	// heapBase is a thin slice wrapper implementing heap.Interface.
	heapBase[T Ordered[T]] []T

	// PriorityQueue pops elements in ascending order per Ordered.Less.
	// The Resolver feeds one batch of parsed diagnostics through a
	// PriorityQueue per iteration (internal/resolve.Resolve) so the
	// highest-priority diagnostic is always fixed first, without sorting
	// the whole batch up front.
	PriorityQueue[T Ordered[T]] struct {
		base heapBase[T]
	}
)

func (h heapBase[T]) Len() int           { return len(h) }
func (h heapBase[T]) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h heapBase[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *heapBase[T]) Push(x any)        { *h = append(*h, x.(T)) }
func (h *heapBase[T]) Pop() any {
	last := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]
	return last
}

// NewPriorityQueue builds a PriorityQueue seeded with init.
func NewPriorityQueue[T Ordered[T]](init []T) *PriorityQueue[T] {
	q := &PriorityQueue[T]{base: heapBase[T](init)}
	heap.Init(&q.base)
	return q
}

// NewEmptyPriorityQueue builds an empty PriorityQueue.
func NewEmptyPriorityQueue[T Ordered[T]]() *PriorityQueue[T] {
	return NewPriorityQueue([]T(nil))
}

// Empty reports whether the queue holds no elements.
func (q PriorityQueue[T]) Empty() bool {
	return q.base.Len() == 0
}

// Push inserts item into the queue.
func (q *PriorityQueue[T]) Push(item T) {
	heap.Push(&q.base, item)
}

// Pop removes and returns the lowest element per Ordered.Less. Panics if
// the queue is empty.
func (q *PriorityQueue[T]) Pop() T {
	return heap.Pop(&q.base).(T)
}

// Peek returns the lowest element per Ordered.Less without removing it.
// Panics if the queue is empty.
func (q PriorityQueue[T]) Peek() T {
	return q.base[0]
}
