package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/formflow/formflow/pkg/ports"
)

// Bus implements ports.EventBus with synchronous in-process delivery.
// Handlers run on the publisher's goroutine, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]map[int]ports.Handler
	next     int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string]map[int]ports.Handler),
	}
}

// Publish delivers the payload to every subscriber of the topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) {
	b.mu.RLock()
	subs := make([]ports.Handler, 0, len(b.handlers[topic]))
	ids := make([]int, 0, len(b.handlers[topic]))
	for id := range b.handlers[topic] {
		ids = append(ids, id)
	}
	// Subscription order, not map order.
	sort.Ints(ids)
	for _, id := range ids {
		subs = append(subs, b.handlers[topic][id])
	}
	b.mu.RUnlock()

	for _, h := range subs {
		h(ctx, payload)
	}
}

// Subscribe registers a handler for a topic and returns its unsubscribe
// function. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(topic string, h ports.Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]ports.Handler)
	}
	id := b.next
	b.next++
	b.handlers[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}
