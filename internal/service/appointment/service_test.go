package appointment

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

var (
	morning   = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	afternoon = time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)
	nextDay   = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
)

func newSeededService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	repos := repository.New(store.NewMemoryStore(nil), repository.Options{})
	svc := NewService(repos.Appointments, nil, time.UTC)

	for _, a := range []model.Appointment{
		{Timestamp: morning, PatientID: 1, DoctorID: 10},
		{Timestamp: afternoon, PatientID: 2, DoctorID: 10},
		{Timestamp: nextDay, PatientID: 1, DoctorID: 20},
	} {
		a := a
		require.NoError(t, svc.Schedule(ctx, &a))
	}
	return svc
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService(t)

	byDoctor, err := svc.ByDoctor(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	byPatient, err := svc.ByPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byPatient, 2)
	assert.Equal(t, model.ID(10), byPatient[0].DoctorID)
	assert.Equal(t, model.ID(20), byPatient[1].DoctorID)

	byDate, err := svc.ByDate(ctx, time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	none, err := svc.ByDoctor(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCancelRequiresExactMatch(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService(t)

	outcome, err := svc.Cancel(ctx, model.AppointmentKey{Timestamp: morning.Add(time.Second), PatientID: 1, DoctorID: 10})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNotFound, outcome)

	// Same instant in another zone still matches.
	outcome, err = svc.Cancel(ctx, model.AppointmentKey{Timestamp: morning.In(time.FixedZone("X", 3600)), PatientID: 1, DoctorID: 10})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeApplied, outcome)

	all, err := svc.List(ctx, model.AppointmentFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService(t)

	newTime := time.Date(2024, 3, 6, 11, 0, 0, 0, time.UTC)
	key := model.AppointmentKey{Timestamp: afternoon, PatientID: 2, DoctorID: 10}
	outcome, err := svc.Reschedule(ctx, key, model.UpdateAppointmentRequest{Timestamp: &newTime})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeApplied, outcome)

	moved, err := svc.ByDate(ctx, newTime)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, model.ID(2), moved[0].PatientID)
	assert.Equal(t, model.ID(10), moved[0].DoctorID)

	outcome, err = svc.Reschedule(ctx, key, model.UpdateAppointmentRequest{Timestamp: &newTime})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNotFound, outcome)
}
