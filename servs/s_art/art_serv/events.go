// file:artkv/servs/s_art/art_serv/events.go
package art_serv

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

//---------------------
// Mutation Events
//---------------------

const (
	EventPut    = "put"
	EventDelete = "delete"
	EventReset  = "reset"
)

// Event describes one change to the store.
type Event struct {
	Type  string    `json:"type"`
	Key   []byte    `json:"key,omitempty"`
	Value []byte    `json:"value,omitempty"`
	Time  time.Time `json:"time"`
}

// broker fans events out to subscribers. Slow subscribers lose events
// instead of blocking writers.
type broker struct {
	mu     sync.Mutex
	subs   map[uint64]chan Event
	next   uint64
	closed bool
	log    zerolog.Logger
}

func newBroker(log zerolog.Logger) *broker {
	return &broker{subs: make(map[uint64]chan Event), log: log}
}

func (b *broker) subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, max(buffer, 1))
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

func (b *broker) publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	if ev.Key != nil {
		ev.Key = clone(ev.Key)
	}
	if ev.Value != nil {
		ev.Value = clone(ev.Value)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.log.Debug().Uint64("sub", id).Str("type", ev.Type).Msg("event dropped")
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
