package storage

import "sync"

const subscriberBuffer = 16

// Broadcaster fans changed keys out to subscribers. Slow subscribers miss
// notifications rather than block publishers.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan string // Protected by mu
	next   int                 // Protected by mu
	closed bool                // Protected by mu
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan string)}
}

// Subscribe returns a channel of keys and a cancel function
func (b *Broadcaster) Subscribe() (<-chan string, func()) {
	ch := make(chan string, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
}

// Publish notifies every subscriber and returns how many received the key
func (b *Broadcaster) Publish(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- key:
			delivered++
		default:
		}
	}
	return delivered
}

// Close closes every subscriber channel
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
