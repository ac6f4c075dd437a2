package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/store"
)

type countingStore struct {
	store.Store
	puts int
}

func (f *countingStore) Put(ctx context.Context, name string, data []byte) error {
	f.puts++
	return f.Store.Put(ctx, name, data)
}

func TestMutateSkipsWriteWhenUnchanged(t *testing.T) {
	ctx := context.Background()
	s := &countingStore{Store: store.NewMemoryStore(nil)}
	repo := New(s, Options{})

	found := false
	err := repo.Patients.Mutate(ctx, UpdateFirst(func(p model.Patient) bool { return p.ID == 9 }, func(p *model.Patient) {}, &found))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, s.puts)

	require.NoError(t, repo.Patients.Mutate(ctx, Append(model.Patient{ID: 1, Name: "Ana"})))
	assert.Equal(t, 1, s.puts)
}

func TestUpdateAndRemoveFirstMatchOnly(t *testing.T) {
	ctx := context.Background()
	repo := New(store.NewMemoryStore(nil), Options{})

	for _, p := range []model.Prescription{
		{PatientID: 1, DoctorID: 2, Medications: []model.Medication{{Name: "a"}}},
		{PatientID: 1, DoctorID: 2, Medications: []model.Medication{{Name: "b"}}},
	} {
		require.NoError(t, repo.Prescriptions.Mutate(ctx, Append(p)))
	}

	match := func(p model.Prescription) bool { return p.Is(1, 2) }
	found := false
	require.NoError(t, repo.Prescriptions.Mutate(ctx, UpdateFirst(match, func(p *model.Prescription) {
		p.Medications = []model.Medication{{Name: "c"}}
	}, &found)))
	assert.True(t, found)

	items, err := repo.Prescriptions.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", items[0].Medications[0].Name)
	assert.Equal(t, "b", items[1].Medications[0].Name)

	found = false
	require.NoError(t, repo.Prescriptions.Mutate(ctx, RemoveFirst(match, &found)))
	assert.True(t, found)

	items, err = repo.Prescriptions.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Medications[0].Name)
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo := New(store.NewMemoryStore(nil), Options{})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, repo.Invoices.Mutate(ctx, Append(model.Invoice{ID: model.ID(id), Total: 1})))
		}(i)
	}
	wg.Wait()

	items, err := repo.Invoices.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n)
}

func TestStrictDecode(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(map[string][]byte{model.StoreDoctors: []byte("{not json")})

	lenient := New(s, Options{})
	items, err := lenient.Doctors.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	strict := New(s, Options{StrictDecode: true})
	_, err = strict.Doctors.All(ctx)
	assert.True(t, errors.Is(err, store.ErrCorruptStore))

	err = strict.Doctors.Mutate(ctx, Append(model.Doctor{ID: 1}))
	assert.ErrorIs(t, err, store.ErrCorruptStore)
}
