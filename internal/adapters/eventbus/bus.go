// Package eventbus implements the in-process build event bus.
package eventbus

import (
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.EventBus = (*Bus)(nil)

// Bus multiplexes build events from concurrent workers to listeners. Post
// never blocks on listener bookkeeping; listeners run synchronously on the
// posting goroutine and must be fast.
type Bus struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(domain.Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func(domain.Event))}
}

// Post delivers the event to every current listener.
func (b *Bus) Post(event domain.Event) {
	b.mu.RLock()
	fns := make([]func(domain.Event), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Subscribe registers a listener and returns its removal func. Removal is
// idempotent.
func (b *Bus) Subscribe(fn func(domain.Event)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}
