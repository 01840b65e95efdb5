// Package broker implements the room-filtered cursor fan-out: one
// published event reaches every live subscription whose filter matches
// the event's room, and nothing else.
package broker

import "sync"

// Event is one cursor position sample flowing through the broker.
type Event struct {
	Room string `json:"room"`
	User string `json:"user"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Broker fans published events out to room-scoped subscriptions.
// Delivery is best-effort: a subscriber that cannot keep up drops
// events rather than blocking publishers (last-write-wins makes a
// dropped intermediate sample harmless). Per-publisher FIFO holds
// because each subscription has a single channel and Publish sends in
// submission order.
type Broker struct {
	mu      sync.Mutex
	subs    map[int]*Subscription
	nextID  int
	buffer  int
	metrics *Metrics
}

// New creates a broker. buffer is the per-subscription channel depth;
// metrics may be nil.
func New(buffer int, metrics *Metrics) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{
		subs:    make(map[int]*Subscription),
		buffer:  buffer,
		metrics: metrics,
	}
}

// Subscription is one live, room-scoped event feed. The room filter is
// installed at subscribe time and immutable for the subscription's
// lifetime; to change rooms, close and subscribe again.
type Subscription struct {
	id   int
	room string
	ch   chan Event
	b    *Broker
	once sync.Once
}

// Subscribe registers a new subscription filtered to the given room.
func (b *Broker) Subscribe(room string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{
		id:   b.nextID,
		room: room,
		ch:   make(chan Event, b.buffer),
		b:    b,
	}
	b.subs[sub.id] = sub
	if b.metrics != nil {
		b.metrics.Subscriptions.Inc()
	}
	return sub
}

// Publish delivers the event to every subscription whose filter matches
// the event's room. Never blocks.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.metrics != nil {
		b.metrics.Published.Inc()
	}
	for _, sub := range b.subs {
		if sub.room != ev.Room {
			continue
		}
		select {
		case sub.ch <- ev:
			if b.metrics != nil {
				b.metrics.Delivered.Inc()
			}
		default:
			// Subscriber is lagging; a newer sample will supersede
			// this one anyway.
			if b.metrics != nil {
				b.metrics.Dropped.Inc()
			}
		}
	}
}

// Events returns the subscription's event channel. It is closed by
// Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Room returns the filter this subscription was created with.
func (s *Subscription) Room() string {
	return s.room
}

// Close removes the subscription and closes its channel. Synchronous
// and idempotent: closing twice, or closing a superseded subscription,
// is a no-op.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.b.mu.Lock()
		delete(s.b.subs, s.id)
		if s.b.metrics != nil {
			s.b.metrics.Subscriptions.Dec()
		}
		close(s.ch)
		s.b.mu.Unlock()
	})
}
