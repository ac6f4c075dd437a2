package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

var ErrBrokerClosed = errors.New("messaging: broker closed")

// MemoryBroker is an in-process Broker. Published messages are kept so they
// can be inspected and are fanned out to live subscribers.
type MemoryBroker struct {
	mu          sync.Mutex
	published   map[string][][]byte
	subscribers map[string][]chan []byte
	closed      bool
	// FailWith makes Publish return the given error when set.
	FailWith error
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		published:   make(map[string][][]byte),
		subscribers: make(map[string][]chan []byte),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBrokerClosed
	}
	if b.FailWith != nil {
		return b.FailWith
	}
	b.published[channel] = append(b.published[channel], payload)
	for _, sub := range b.subscribers[channel] {
		select {
		case sub <- payload:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBrokerClosed
	}
	ch := make(chan []byte, 100)
	b.subscribers[channel] = append(b.subscribers[channel], ch)

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subscribers[channel]
		for i, s := range subs {
			if s == ch {
				b.subscribers[channel] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
	}()

	return ch, nil
}

// Published returns a copy of the payloads published on channel.
func (b *MemoryBroker) Published(channel string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]byte, len(b.published[channel]))
	copy(out, b.published[channel])
	return out
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
