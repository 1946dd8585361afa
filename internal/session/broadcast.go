package session

import "sync"

// Broadcaster fans the auth-changed signal out to in-process subscribers.
// The signal carries no payload; subscribers re-read session state when it
// fires. Publish never blocks: each subscriber channel holds at most one
// pending signal and extra publishes coalesce.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan struct{})}
}

// Subscribe registers a listener and returns its channel plus an
// unsubscribe func. Unsubscribing twice is safe.
func (b *Broadcaster) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
	return ch, unsubscribe
}

// Publish delivers the signal to every current subscriber.
func (b *Broadcaster) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
