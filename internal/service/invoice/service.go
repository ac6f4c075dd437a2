package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/event"
	"github.com/jwalitptl/clinic-admin/pkg/calendar"
)

type InvoiceService interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Edit(ctx context.Context, id model.ID, update model.UpdateInvoiceRequest) (model.Outcome, error)
	Delete(ctx context.Context, id model.ID) (model.Outcome, error)
	Get(ctx context.Context, id model.ID) (*model.Invoice, error)
	List(ctx context.Context, filters model.InvoiceFilters) ([]model.Invoice, error)
	ByPatient(ctx context.Context, patientID model.ID) ([]model.Invoice, error)
	ByDate(ctx context.Context, date time.Time) ([]model.Invoice, error)
	MonthlyTotal(ctx context.Context, month, year int) (float64, error)
	Items(ctx context.Context, id model.ID) ([]*model.BillableItem, error)
}

type Service struct {
	repo      repository.InvoiceRepository
	itemsRepo repository.BillableItemRepository
	events    event.Emitter
	loc       *time.Location
}

func NewService(repo repository.InvoiceRepository, itemsRepo repository.BillableItemRepository, events event.Emitter, loc *time.Location) *Service {
	if events == nil {
		events = event.Noop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, itemsRepo: itemsRepo, events: events, loc: loc}
}

// Create stores the invoice as given. Total is not checked against the
// consumed items.
func (s *Service) Create(ctx context.Context, invoice *model.Invoice) error {
	if err := s.repo.Mutate(ctx, repository.Append(*invoice)); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	event.Record(ctx, s.events, event.InvoiceCreated, invoice)
	return nil
}

func (s *Service) Edit(ctx context.Context, id model.ID, update model.UpdateInvoiceRequest) (model.Outcome, error) {
	var (
		found   bool
		updated model.Invoice
	)
	err := s.repo.Mutate(ctx, repository.UpdateFirst(byID(id), func(inv *model.Invoice) {
		update.Apply(inv)
		updated = *inv
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to update invoice: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.InvoiceUpdated, updated)
	return model.OutcomeApplied, nil
}

func (s *Service) Delete(ctx context.Context, id model.ID) (model.Outcome, error) {
	var found bool
	if err := s.repo.Mutate(ctx, repository.RemoveFirst(byID(id), &found)); err != nil {
		return "", fmt.Errorf("failed to delete invoice: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.InvoiceDeleted, map[string]model.ID{"id_factura": id})
	return model.OutcomeApplied, nil
}

func (s *Service) Get(ctx context.Context, id model.ID) (*model.Invoice, error) {
	invoices, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, nil
}

func (s *Service) List(ctx context.Context, filters model.InvoiceFilters) ([]model.Invoice, error) {
	invoices, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	matched := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if filters.PatientID != nil && inv.PatientID != *filters.PatientID {
			continue
		}
		if filters.Date != nil && !calendar.SameDate(inv.Timestamp, *filters.Date, s.loc) {
			continue
		}
		matched = append(matched, inv)
	}
	return matched, nil
}

func (s *Service) ByPatient(ctx context.Context, patientID model.ID) ([]model.Invoice, error) {
	return s.List(ctx, model.InvoiceFilters{PatientID: &patientID})
}

func (s *Service) ByDate(ctx context.Context, date time.Time) ([]model.Invoice, error) {
	return s.List(ctx, model.InvoiceFilters{Date: &date})
}

// MonthlyTotal sums the totals of invoices dated in month of year. Month is
// zero based: 0 is January.
func (s *Service) MonthlyTotal(ctx context.Context, month, year int) (float64, error) {
	invoices, err := s.repo.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	var total float64
	for _, inv := range invoices {
		if calendar.InMonth(inv.Timestamp, month, year, s.loc) {
			total += inv.Total
		}
	}
	return total, nil
}

// Items resolves the consumed item ids of an invoice in order. Ids with no
// matching item resolve to nil. An unknown invoice yields an empty slice.
func (s *Service) Items(ctx context.Context, id model.ID) ([]*model.BillableItem, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return []*model.BillableItem{}, nil
	}

	items, err := s.itemsRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list billable items: %w", err)
	}

	resolved := make([]*model.BillableItem, len(inv.ConsumedItems))
	for i, itemID := range inv.ConsumedItems {
		for j := range items {
			if items[j].ID == itemID {
				resolved[i] = &items[j]
				break
			}
		}
	}
	return resolved, nil
}

func byID(id model.ID) func(model.Invoice) bool {
	return func(inv model.Invoice) bool { return inv.ID == id }
}
