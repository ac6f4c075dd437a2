package billing

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/event"
)

type ItemService interface {
	Create(ctx context.Context, item *model.BillableItem) error
	Edit(ctx context.Context, id model.ID, update model.UpdateBillableItemRequest) (model.Outcome, error)
	Delete(ctx context.Context, id model.ID) (model.Outcome, error)
	Get(ctx context.Context, id model.ID) (*model.BillableItem, error)
	List(ctx context.Context) ([]model.BillableItem, error)
	ByKind(ctx context.Context, kind model.ItemKind) ([]model.BillableItem, error)
}

type Service struct {
	repo   repository.BillableItemRepository
	events event.Emitter
}

func NewService(repo repository.BillableItemRepository, events event.Emitter) *Service {
	if events == nil {
		events = event.Noop()
	}
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, item *model.BillableItem) error {
	if err := s.repo.Mutate(ctx, repository.Append(*item)); err != nil {
		return fmt.Errorf("failed to create billable item: %w", err)
	}
	event.Record(ctx, s.events, event.ItemCreated, item)
	return nil
}

func (s *Service) Edit(ctx context.Context, id model.ID, update model.UpdateBillableItemRequest) (model.Outcome, error) {
	var (
		found   bool
		updated model.BillableItem
	)
	err := s.repo.Mutate(ctx, repository.UpdateFirst(byID(id), func(i *model.BillableItem) {
		update.Apply(i)
		updated = *i
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to update billable item: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.ItemUpdated, updated)
	return model.OutcomeApplied, nil
}

// Delete leaves invoices that consumed the item pointing at a missing id.
func (s *Service) Delete(ctx context.Context, id model.ID) (model.Outcome, error) {
	var found bool
	if err := s.repo.Mutate(ctx, repository.RemoveFirst(byID(id), &found)); err != nil {
		return "", fmt.Errorf("failed to delete billable item: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.ItemDeleted, map[string]model.ID{"id_producto_servicio": id})
	return model.OutcomeApplied, nil
}

func (s *Service) Get(ctx context.Context, id model.ID) (*model.BillableItem, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get billable item: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (s *Service) List(ctx context.Context) ([]model.BillableItem, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list billable items: %w", err)
	}
	return items, nil
}

func (s *Service) ByKind(ctx context.Context, kind model.ItemKind) ([]model.BillableItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.BillableItem, 0, len(items))
	for _, item := range items {
		if item.Kind == kind {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func byID(id model.ID) func(model.BillableItem) bool {
	return func(i model.BillableItem) bool { return i.ID == id }
}
