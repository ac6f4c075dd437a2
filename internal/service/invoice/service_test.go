package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/store"
)

func newTestService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()
	repos := repository.New(store.NewMemoryStore(nil), repository.Options{})
	return NewService(repos.Invoices, repos.Items, nil, time.UTC), repos
}

func TestMonthlyTotal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, inv := range []model.Invoice{
		{ID: 1, Timestamp: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), Total: 100},
		{ID: 2, Timestamp: time.Date(2024, 3, 28, 16, 0, 0, 0, time.UTC), Total: 250},
		{ID: 3, Timestamp: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), Total: 50},
		{ID: 4, Timestamp: time.Date(2023, 3, 15, 9, 0, 0, 0, time.UTC), Total: 999},
	} {
		inv := inv
		require.NoError(t, svc.Create(ctx, &inv))
	}

	total, err := svc.MonthlyTotal(ctx, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, 350.0, total)

	total, err = svc.MonthlyTotal(ctx, 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, 50.0, total)

	total, err = svc.MonthlyTotal(ctx, 0, 2024)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	day := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Create(ctx, &model.Invoice{ID: 1, PatientID: 7, Timestamp: day, Total: 10}))
	require.NoError(t, svc.Create(ctx, &model.Invoice{ID: 2, PatientID: 8, Timestamp: day.Add(10 * time.Hour), Total: 20}))
	require.NoError(t, svc.Create(ctx, &model.Invoice{ID: 3, PatientID: 7, Timestamp: day.AddDate(0, 0, 1), Total: 30}))

	byPatient, err := svc.ByPatient(ctx, 7)
	require.NoError(t, err)
	require.Len(t, byPatient, 2)
	assert.Equal(t, model.ID(1), byPatient[0].ID)
	assert.Equal(t, model.ID(3), byPatient[1].ID)

	byDate, err := svc.ByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	total := 99.0
	outcome, err := svc.Edit(ctx, 2, model.UpdateInvoiceRequest{Total: &total})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeApplied, outcome)

	inv, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 99.0, inv.Total)
	assert.Equal(t, model.ID(8), inv.PatientID)

	outcome, err = svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeApplied, outcome)

	outcome, err = svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNotFound, outcome)
}

func TestItemsLeavesHolesForMissingIDs(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestService(t)

	require.NoError(t, repos.Items.Mutate(ctx, repository.Append(model.BillableItem{ID: 1, Kind: model.ItemKindService, Name: "Consulta", Price: 80})))
	require.NoError(t, repos.Items.Mutate(ctx, repository.Append(model.BillableItem{ID: 2, Kind: model.ItemKindProduct, Name: "Enjuague", Price: 25})))
	require.NoError(t, svc.Create(ctx, &model.Invoice{ID: 1, ConsumedItems: []model.ID{2, 5, 1}}))

	items, err := svc.Items(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.NotNil(t, items[0])
	assert.Equal(t, "Enjuague", items[0].Name)
	assert.Nil(t, items[1])
	require.NotNil(t, items[2])
	assert.Equal(t, "Consulta", items[2].Name)

	none, err := svc.Items(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}
