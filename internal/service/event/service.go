package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

// Emitter records that a mutation happened.
type Emitter interface {
	Emit(ctx context.Context, eventType string, payload interface{}) error
}

type EventService struct {
	outbox repository.OutboxRepository
	now    func() time.Time
}

func NewEventService(outbox repository.OutboxRepository) *EventService {
	return &EventService{outbox: outbox, now: time.Now}
}

// Emit appends a pending event to the outbox. Publishing happens later in the
// outbox processor.
func (s *EventService) Emit(ctx context.Context, eventType string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := model.OutboxEvent{
		ID:        uuid.New().String(),
		EventType: eventType,
		Payload:   payloadJSON,
		Status:    model.OutboxStatusPending,
		CreatedAt: s.now().UTC(),
	}

	if err := s.outbox.Mutate(ctx, repository.Append(event)); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

type noop struct{}

// Noop discards every event.
func Noop() Emitter {
	return noop{}
}

func (noop) Emit(context.Context, string, interface{}) error {
	return nil
}

// Record emits and only logs a failure. The mutation it describes has already
// been saved and is not rolled back.
func Record(ctx context.Context, emitter Emitter, eventType string, payload interface{}) {
	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, eventType, payload); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to record event")
	}
}
