package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-admin/internal/model"
	collections "github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/store"
)

func TestOutboxLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := collections.New(store.NewMemoryStore(nil), collections.Options{})
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repos.Outbox.Mutate(ctx, collections.Append(model.OutboxEvent{
			ID: id, EventType: "PATIENT_CREATE", Status: model.OutboxStatusPending, CreatedAt: base,
		})))
	}

	repo := NewOutboxRepository(repos.Outbox).(*outboxRepository)
	repo.now = func() time.Time { return base }

	pending, err := repo.GetPendingEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID)

	require.NoError(t, repo.UpdateStatus(ctx, "a", model.OutboxStatusProcessed, nil))
	msg := "broker down"
	require.NoError(t, repo.UpdateStatus(ctx, "b", model.OutboxStatusFailed, &msg))
	assert.Error(t, repo.UpdateStatus(ctx, "zzz", model.OutboxStatusProcessed, nil))

	pending, err = repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "c", pending[0].ID)

	events, err := repos.Outbox.All(ctx)
	require.NoError(t, err)
	require.NotNil(t, events[0].ProcessedAt)
	assert.Equal(t, 1, events[1].RetryCount)
	assert.Equal(t, "broker down", *events[1].ErrorMessage)

	removed, err := repo.DeleteProcessedBefore(ctx, base)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = repo.DeleteProcessedBefore(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	events, err = repos.Outbox.All(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
