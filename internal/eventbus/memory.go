/**
 * @description
 * Thread-safe in-memory implementation of the event channel. It records
 * every published message and delivers copies to all registered handlers,
 * which makes it useful in tests and in broker-less local runs.
 *
 * @notes
 * - Delivery happens synchronously on the publisher's goroutine. Handler
 *   acknowledgment decisions are recorded but there is no redelivery.
 */
package eventbus

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Message is a recorded in-memory publish.
type Message struct {
	Channel string
	Body    []byte
}

type memorySubscriber struct {
	group   string
	handler Handler
}

// MemoryBus is an in-memory Channel for tests.
type MemoryBus struct {
	mu          sync.Mutex
	subscribers map[string][]memorySubscriber
	published   []Message

	// FailPublishes makes every Publish report rejection without
	// delivering, simulating a broker that refuses messages.
	FailPublishes bool
}

// NewMemoryBus creates an empty in-memory bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subscribers: make(map[string][]memorySubscriber)}
}

// Publish records the message and delivers a copy to every subscriber on
// the channel.
func (b *MemoryBus) Publish(ctx context.Context, channel string, payload any) bool {
	if b.FailPublishes {
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling payload for channel '%s': %v", channel, err)
		return false
	}

	b.mu.Lock()
	b.published = append(b.published, Message{Channel: channel, Body: body})
	handlers := make([]Handler, 0, len(b.subscribers[channel]))
	for _, sub := range b.subscribers[channel] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(body)
	}
	return true
}

// Subscribe registers a handler for the channel.
func (b *MemoryBus) Subscribe(channel, group string, handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[channel] = append(b.subscribers[channel], memorySubscriber{group: group, handler: handler})
	return nil
}

// Published returns a copy of every message published so far, in order.
func (b *MemoryBus) Published() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, len(b.published))
	copy(out, b.published)
	return out
}

// PublishedOn returns the messages published on a single channel.
func (b *MemoryBus) PublishedOn(channel string) []Message {
	var out []Message
	for _, msg := range b.Published() {
		if msg.Channel == channel {
			out = append(out, msg)
		}
	}
	return out
}
