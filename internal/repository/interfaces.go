package repository

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
)

// MutateFunc receives the current collection and returns the collection to
// store together with whether anything changed. Returning false skips the
// write.
type MutateFunc[T any] func(items []T) ([]T, bool)

// Collection is one named store of records of a single kind.
type Collection[T any] interface {
	Name() string
	All(ctx context.Context) ([]T, error)
	Mutate(ctx context.Context, fn MutateFunc[T]) error
}

// All repository collections in one place
type (
	AccountRepository      = Collection[model.Account]
	PatientRepository      = Collection[model.Patient]
	DoctorRepository       = Collection[model.Doctor]
	AppointmentRepository  = Collection[model.Appointment]
	PrescriptionRepository = Collection[model.Prescription]
	BillableItemRepository = Collection[model.BillableItem]
	InvoiceRepository      = Collection[model.Invoice]
	OutboxRepository       = Collection[model.OutboxEvent]
)
