package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EventHandler receives one decoded clinic event.
type EventHandler func(ctx context.Context, msg Message) error

// EventSubscriber decodes the Message envelope for consumers of a Broker
// channel.
type EventSubscriber struct {
	broker Broker
}

func NewEventSubscriber(broker Broker) *EventSubscriber {
	return &EventSubscriber{broker: broker}
}

// Subscribe calls handle for every clinic event on channel until ctx is done.
// Undecodable payloads and handler errors are logged and skipped. done is
// closed once the broker closes the subscription.
func (s *EventSubscriber) Subscribe(ctx context.Context, channel string, handle EventHandler) (<-chan struct{}, error) {
	raw, err := s.broker.Subscribe(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for data := range raw {
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("skipping undecodable clinic event")
				continue
			}
			if err := handle(ctx, msg); err != nil {
				log.Warn().Err(err).
					Str("channel", channel).
					Str("event_id", msg.ID).
					Str("event_type", msg.Type).
					Msg("clinic event handler failed")
			}
		}
	}()

	return done, nil
}

func (s *EventSubscriber) Close() error {
	return s.broker.Close()
}
