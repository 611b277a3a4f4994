// Package events decouples the clipboard monitor from consumers that want
// live notification of accepted entries.
package events

import (
	"sync"

	"github.com/hpark/clipvault/internal/entry"
)

// Subscription receives accepted entries in capture order.
type Subscription struct {
	ch     chan *entry.Entry
	bus    *Bus
	closed bool
}

// C returns the channel notifications arrive on.
func (s *Subscription) C() <-chan *entry.Entry {
	return s.ch
}

// Close detaches the subscription from the bus and closes its channel.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s)
}

// Bus is a single-producer, multi-consumer notification channel. Publish
// never blocks: a subscriber whose buffer is full misses that notification
// (the entry is already durably stored, so a drop only means a stale view).
type Bus struct {
	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	buffer  int
	dropped int64
}

// NewBus creates a bus whose subscribers buffer up to buffer entries.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bus{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new consumer.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Subscription{
		ch:  make(chan *entry.Entry, b.buffer),
		bus: b,
	}
	b.subs[s] = struct{}{}
	return s
}

// Publish delivers e to every subscriber without blocking.
func (b *Bus) Publish(e *entry.Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for s := range b.subs {
		select {
		case s.ch <- e:
		default:
			b.dropped++
		}
	}
}

// Dropped returns how many notifications were skipped because a subscriber
// buffer was full.
func (b *Bus) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

func (b *Bus) unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	delete(b.subs, s)
	close(s.ch)
}
