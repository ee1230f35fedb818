// Package notify broadcasts balance-changed events to whoever is
// listening. Delivery is fire-and-forget: a slow subscriber loses events
// rather than blocking settlement.
package notify

import (
	"sync"
	"time"
)

type Event struct {
	UserID  string    `json:"user_id"`
	Balance int64     `json:"balance"`
	At      time.Time `json:"at"`
}

type Broker interface {
	Publish(e Event)
	// Subscribe returns a receive channel and a cancel func. The channel is
	// closed after cancel.
	Subscribe() (<-chan Event, func())
}

const subscriberBuffer = 16

// MemoryBroker fans events out to in-process subscribers.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]chan Event)}
}

func (b *MemoryBroker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default: // subscriber not keeping up
		}
	}
}

func (b *MemoryBroker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
