// Package bus is the in-process broadcast channel that keeps independent UI
// surfaces (header badges, cart page, wishlist page) in sync after a
// mutation. Publish is a synchronous fan-out with no queueing: listeners
// registered at publish time are invoked exactly once, in subscription order.
package bus

import (
	"sort"
	"sync"
)

// Topics fired on every successful collection mutation. Events carry no
// payload; subscribers re-pull the full collection.
const (
	TopicCartUpdated     = "cartUpdated"
	TopicWishlistUpdated = "wishlistUpdated"
)

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func()
}

func New() *Bus {
	return &Bus{subs: make(map[string]map[int]func())}
}

// Subscribe registers fn for the topic and returns an unsubscribe function.
// Callers tie unsubscribe to their own teardown so listeners do not leak.
func (b *Bus) Subscribe(topic string, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]func())
	}
	b.subs[topic][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish invokes every listener currently subscribed to the topic. The
// listener set is snapshotted first so a handler may subscribe or unsubscribe
// without deadlocking; such changes take effect from the next publish.
func (b *Bus) Publish(topic string) {
	b.mu.Lock()
	listeners := make([]func(), 0, len(b.subs[topic]))
	ids := make([]int, 0, len(b.subs[topic]))
	for id := range b.subs[topic] {
		ids = append(ids, id)
	}
	// Map iteration order is random; deliver in subscription order.
	sort.Ints(ids)
	for _, id := range ids {
		listeners = append(listeners, b.subs[topic][id])
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
