package repository

import (
	"context"
	"sync"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/store"
)

type Options struct {
	// StrictDecode surfaces store.ErrCorruptStore instead of treating
	// undecodable contents as an empty collection.
	StrictDecode bool
}

// guarded serialises writers to one store. Readers never block each other but
// wait for an in-flight Mutate so they never observe a half-written store.
type guarded[T any] struct {
	store  store.Store
	name   string
	strict bool
	mu     sync.RWMutex
}

func NewCollection[T any](s store.Store, name string, opts Options) Collection[T] {
	return &guarded[T]{store: s, name: name, strict: opts.StrictDecode}
}

func (c *guarded[T]) Name() string {
	return c.name
}

func (c *guarded[T]) All(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load(ctx)
}

func (c *guarded[T]) Mutate(ctx context.Context, fn MutateFunc[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	updated, changed := fn(items)
	if !changed {
		return nil
	}
	return store.Save(ctx, c.store, c.name, updated)
}

func (c *guarded[T]) load(ctx context.Context) ([]T, error) {
	if c.strict {
		return store.LoadStrict[T](ctx, c.store, c.name)
	}
	return store.Load[T](ctx, c.store, c.name)
}

// Repositories holds one guarded collection per store name. Build it once per
// process so every caller shares the same locks.
type Repositories struct {
	Accounts      AccountRepository
	Patients      PatientRepository
	Doctors       DoctorRepository
	Appointments  AppointmentRepository
	Prescriptions PrescriptionRepository
	Items         BillableItemRepository
	Invoices      InvoiceRepository
	Outbox        OutboxRepository
}

func New(s store.Store, opts Options) *Repositories {
	return &Repositories{
		Accounts:      NewCollection[model.Account](s, model.StoreAccounts, opts),
		Patients:      NewCollection[model.Patient](s, model.StorePatients, opts),
		Doctors:       NewCollection[model.Doctor](s, model.StoreDoctors, opts),
		Appointments:  NewCollection[model.Appointment](s, model.StoreAppointments, opts),
		Prescriptions: NewCollection[model.Prescription](s, model.StorePrescriptions, opts),
		Items:         NewCollection[model.BillableItem](s, model.StoreBillableItems, opts),
		Invoices:      NewCollection[model.Invoice](s, model.StoreInvoices, opts),
		Outbox:        NewCollection[model.OutboxEvent](s, model.StoreOutbox, opts),
	}
}

// Append returns a MutateFunc that adds item at the end.
func Append[T any](item T) MutateFunc[T] {
	return func(items []T) ([]T, bool) {
		return append(items, item), true
	}
}

// UpdateFirst applies fn to the first item matching match. It reports whether
// a match was found through found.
func UpdateFirst[T any](match func(T) bool, fn func(*T), found *bool) MutateFunc[T] {
	return func(items []T) ([]T, bool) {
		for i := range items {
			if match(items[i]) {
				fn(&items[i])
				*found = true
				return items, true
			}
		}
		return items, false
	}
}

// RemoveFirst splices out the first item matching match.
func RemoveFirst[T any](match func(T) bool, found *bool) MutateFunc[T] {
	return func(items []T) ([]T, bool) {
		for i := range items {
			if match(items[i]) {
				*found = true
				return append(items[:i], items[i+1:]...), true
			}
		}
		return items, false
	}
}
