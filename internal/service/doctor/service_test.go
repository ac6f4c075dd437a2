package doctor

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

func newTestService(t *testing.T, loc *time.Location) *Service {
	t.Helper()
	repos := repository.New(store.NewMemoryStore(nil), repository.Options{})
	return NewService(repos.Doctors, nil, loc)
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, &model.Doctor{
		ID:        1,
		Name:      "Dr. Vargas",
		Specialty: model.SpecialtyDentistry,
		Schedule:  []model.TimeSlot{{Day: model.Monday, Start: "08:00", End: "12:00"}},
	}))
	require.NoError(t, svc.Create(ctx, &model.Doctor{
		ID:        2,
		Name:      "Dra. Rojas",
		Specialty: model.SpecialtyOralSurgeon,
		Schedule: []model.TimeSlot{
			{Day: model.Tuesday, Start: "14:00", End: "18:00"},
			{Day: model.Monday, Start: "14:00", End: "18:00"},
		},
	}))
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.UTC)
	seed(t, svc)

	monday := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	sunday := monday.AddDate(0, 0, -1)

	available, err := svc.AvailableOn(ctx, monday)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	available, err = svc.AvailableOn(ctx, tuesday)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, model.ID(2), available[0].ID)

	available, err = svc.AvailableOn(ctx, sunday)
	require.NoError(t, err)
	assert.Empty(t, available)

	ok, err := svc.IsAvailable(ctx, 1, monday)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAvailable(ctx, 1, tuesday)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsAvailable(ctx, 99, monday)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvailabilityUsesClinicLocation(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC-4", -4*60*60)
	svc := newTestService(t, loc)
	seed(t, svc)

	// Tuesday 02:00 UTC is still Monday evening four hours west.
	instant := time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC)
	ok, err := svc.IsAvailable(ctx, 1, instant)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	seed(t, svc)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	specialty := model.SpecialtyOralSurgeon
	outcome, err := svc.Edit(ctx, 1, model.UpdateDoctorRequest{Specialty: &specialty})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeApplied, outcome)

	d, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.SpecialtyOralSurgeon, d.Specialty)
	assert.Equal(t, "Dr. Vargas", d.Name)
	assert.Len(t, d.Schedule, 1)

	outcome, err = svc.Edit(ctx, 5, model.UpdateDoctorRequest{Specialty: &specialty})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNotFound, outcome)

	outcome, err = svc.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeApplied, outcome)

	outcome, err = svc.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNotFound, outcome)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.ID(1), list[0].ID)
}
