package messaging

import (
	"context"
	"encoding/json"
	"time"
)

// EventsChannel is the channel clinic events are published on.
const EventsChannel = "clinic.events"

// Broker carries JSON messages over named channels. Publish marshals message
// itself; subscribers receive the raw bytes.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope published for every clinic event. Payload is the
// affected record as stored.
type Message struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}
