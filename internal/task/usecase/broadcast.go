package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"smart-todo-client/internal/task"
)

const subscriberBuffer = 32

// broadcaster fans topic events out to subscribers. A full subscriber misses events,
// which is fine: every event only says "re-read this topic".
type broadcaster struct {
	mu     sync.Mutex
	subs   map[chan task.Event]struct{}
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: map[chan task.Event]struct{}{}}
}

func (b *broadcaster) subscribe() (<-chan task.Event, func()) {
	ch := make(chan task.Event, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
}

func (b *broadcaster) publish(topic task.Topic) {
	ev := task.Event{ID: uuid.NewString(), Topic: topic, At: time.Now().UTC()}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
