// Package bus provides small typed publish/subscribe topics used to wire
// the engine to its scene and inventory collaborators without a dynamic
// global event bus.
package bus

import (
	"slices"
	"sync"
)

// Topic is a typed fan-out signal. Subscribers receive every published
// value; delivery is synchronous and in subscription order.
type Topic[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
}

// NewTopic creates an empty topic.
func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{subs: make(map[int]func(T))}
}

// Subscribe registers a handler and returns its cancel function. Cancel is
// idempotent and must be called on every exit path of the subscriber.
func (t *Topic[T]) Subscribe(fn func(T)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.next
	t.next++
	t.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.subs, id)
		})
	}
}

// Publish delivers the value to all current subscribers.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	ids := make([]int, 0, len(t.subs))
	for id := range t.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, t.subs[id])
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the current subscriber count.
func (t *Topic[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}
