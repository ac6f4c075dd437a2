package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-admin/internal/model"
	collections "github.com/jwalitptl/clinic-admin/internal/repository"
)

// OutboxRepository exposes only what pkg/worker needs from the event store.
type OutboxRepository interface {
	GetPendingEvents(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id string, status model.OutboxStatus, errMsg *string) error
	DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type outboxRepository struct {
	events collections.OutboxRepository
	now    func() time.Time
}

func NewOutboxRepository(events collections.OutboxRepository) OutboxRepository {
	return &outboxRepository{events: events, now: time.Now}
}

// GetPendingEvents returns up to limit pending events, oldest first.
func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	all, err := r.events.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load outbox: %w", err)
	}
	pending := make([]model.OutboxEvent, 0)
	for _, ev := range all {
		if ev.Status != model.OutboxStatusPending {
			continue
		}
		pending = append(pending, ev)
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending, nil
}

// UpdateStatus sets the status of event id. A non-nil errMsg counts as a
// failed delivery attempt.
func (r *outboxRepository) UpdateStatus(ctx context.Context, id string, status model.OutboxStatus, errMsg *string) error {
	found := false
	err := r.events.Mutate(ctx, collections.UpdateFirst(func(ev model.OutboxEvent) bool {
		return ev.ID == id
	}, func(ev *model.OutboxEvent) {
		ev.Status = status
		ev.ErrorMessage = errMsg
		if errMsg != nil {
			ev.RetryCount++
		}
		if status == model.OutboxStatusProcessed {
			processedAt := r.now().UTC()
			ev.ProcessedAt = &processedAt
		}
	}, &found))
	if err != nil {
		return fmt.Errorf("failed to update outbox event: %w", err)
	}
	if !found {
		return fmt.Errorf("outbox event %s not found", id)
	}
	return nil
}

// DeleteProcessedBefore drops processed events older than cutoff and reports
// how many were removed. Pending and failed events are kept.
func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	err := r.events.Mutate(ctx, func(events []model.OutboxEvent) ([]model.OutboxEvent, bool) {
		kept := events[:0]
		for _, ev := range events {
			if ev.Status == model.OutboxStatusProcessed && ev.ProcessedAt != nil && ev.ProcessedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, ev)
		}
		return kept, removed > 0
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune outbox: %w", err)
	}
	return removed, nil
}
