// Package keysource feeds host key presses to subscribers.
package keysource

import (
	"sync"

	"github.com/lixenwraith/hostkeys/input"
)

// Broadcaster fans out published key events to every subscriber in publish order
// Publish blocks until each live subscriber has received the event or released
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
	closed bool
}

type subscriber struct {
	ch   chan *input.KeyEvent
	done chan struct{}
	once sync.Once
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[uint64]*subscriber)}
}

// Subscribe registers a receiver, the returned func releases it
func (b *Broadcaster) Subscribe() (<-chan *input.KeyEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscriber{
		ch:   make(chan *input.KeyEvent),
		done: make(chan struct{}),
	}
	if b.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = sub

	release := func() {
		sub.once.Do(func() {
			close(sub.done)
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
	return sub.ch, release
}

// Publish delivers ev to all current subscribers
// The lock is held across delivery so Close never closes a channel mid-send
// A subscriber that releases while Publish waits unblocks it through done
func (b *Broadcaster) Publish(ev *input.KeyEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		select {
		case s.ch <- ev:
		case <-s.done:
		}
	}
}

// Subscribers returns the number of live subscriptions
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription by closing its channel
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, s := range b.subs {
		s.once.Do(func() { close(s.done) })
		close(s.ch)
		delete(b.subs, id)
	}
}
