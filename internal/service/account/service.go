package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/event"
	"github.com/jwalitptl/clinic-admin/pkg/security"
)

type AccountService interface {
	Create(ctx context.Context, account *model.Account) error
	Edit(ctx context.Context, id model.ID, update model.UpdateAccountRequest) (model.Outcome, error)
	Disable(ctx context.Context, id model.ID) (model.Outcome, error)
	Authenticate(ctx context.Context, email, password string) (*model.Account, error)
	Deauthenticate(ctx context.Context) error
	Get(ctx context.Context, id model.ID) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
}

type Service struct {
	repo   repository.AccountRepository
	hasher security.PasswordHasher
	events event.Emitter
}

func NewService(repo repository.AccountRepository, hasher security.PasswordHasher, events event.Emitter) *Service {
	if hasher == nil {
		hasher = security.NewPlaintextHasher()
	}
	if events == nil {
		events = event.Noop()
	}
	return &Service{repo: repo, hasher: hasher, events: events}
}

func (s *Service) Create(ctx context.Context, account *model.Account) error {
	stored := *account
	hashed, err := s.hasher.Hash(account.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	stored.Password = hashed

	if err := s.repo.Mutate(ctx, repository.Append(stored)); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	event.Record(ctx, s.events, event.AccountCreated, stored.Public())
	return nil
}

func (s *Service) Edit(ctx context.Context, id model.ID, update model.UpdateAccountRequest) (model.Outcome, error) {
	if update.Password != nil {
		hashed, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		update.Password = &hashed
	}

	var (
		found   bool
		updated model.Account
	)
	err := s.repo.Mutate(ctx, repository.UpdateFirst(byID(id), func(a *model.Account) {
		update.Apply(a)
		updated = *a
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to update account: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}

	event.Record(ctx, s.events, event.AccountUpdated, updated.Public())
	return model.OutcomeApplied, nil
}

func (s *Service) Disable(ctx context.Context, id model.ID) (model.Outcome, error) {
	var found bool
	err := s.repo.Mutate(ctx, repository.UpdateFirst(byID(id), func(a *model.Account) {
		a.Enabled = false
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to disable account: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}

	event.Record(ctx, s.events, event.AccountDisabled, map[string]model.ID{"id_usuario": id})
	return model.OutcomeApplied, nil
}

// Authenticate returns the first enabled account whose email and password
// match, or nil. The caller cannot tell which of the three checks failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	accounts, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	for i := range accounts {
		a := accounts[i]
		if a.Email != email || !a.Enabled {
			continue
		}
		err := s.hasher.Compare(a.Password, password)
		if errors.Is(err, security.ErrPasswordInvalid) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to compare password: %w", err)
		}
		return &a, nil
	}
	return nil, nil
}

// Deauthenticate exists for symmetry with Authenticate. No session state is
// kept, so there is nothing to undo.
func (s *Service) Deauthenticate(ctx context.Context) error {
	return nil
}

func (s *Service) Get(ctx context.Context, id model.ID) (*model.Account, error) {
	accounts, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, nil
}

func (s *Service) List(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func byID(id model.ID) func(model.Account) bool {
	return func(a model.Account) bool { return a.ID == id }
}
