package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/event"
	"github.com/jwalitptl/clinic-admin/pkg/calendar"
)

type DoctorService interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Edit(ctx context.Context, id model.ID, update model.UpdateDoctorRequest) (model.Outcome, error)
	Delete(ctx context.Context, id model.ID) (model.Outcome, error)
	Get(ctx context.Context, id model.ID) (*model.Doctor, error)
	List(ctx context.Context) ([]model.Doctor, error)
	Count(ctx context.Context) (int, error)
	AvailableOn(ctx context.Context, date time.Time) ([]model.Doctor, error)
	IsAvailable(ctx context.Context, id model.ID, date time.Time) (bool, error)
}

type Service struct {
	repo   repository.DoctorRepository
	events event.Emitter
	loc    *time.Location
}

// NewService builds the doctor service. Availability is decided on the
// weekday of a date as seen in loc; nil means UTC.
func NewService(repo repository.DoctorRepository, events event.Emitter, loc *time.Location) *Service {
	if events == nil {
		events = event.Noop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, events: events, loc: loc}
}

func (s *Service) Create(ctx context.Context, doctor *model.Doctor) error {
	if err := s.repo.Mutate(ctx, repository.Append(*doctor)); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	event.Record(ctx, s.events, event.DoctorCreated, doctor)
	return nil
}

func (s *Service) Edit(ctx context.Context, id model.ID, update model.UpdateDoctorRequest) (model.Outcome, error) {
	var (
		found   bool
		updated model.Doctor
	)
	err := s.repo.Mutate(ctx, repository.UpdateFirst(byID(id), func(d *model.Doctor) {
		update.Apply(d)
		updated = *d
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to update doctor: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.DoctorUpdated, updated)
	return model.OutcomeApplied, nil
}

func (s *Service) Delete(ctx context.Context, id model.ID) (model.Outcome, error) {
	var found bool
	if err := s.repo.Mutate(ctx, repository.RemoveFirst(byID(id), &found)); err != nil {
		return "", fmt.Errorf("failed to delete doctor: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.DoctorDeleted, map[string]model.ID{"id_doctor": id})
	return model.OutcomeApplied, nil
}

func (s *Service) Get(ctx context.Context, id model.ID) (*model.Doctor, error) {
	doctors, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i], nil
		}
	}
	return nil, nil
}

func (s *Service) List(ctx context.Context) ([]model.Doctor, error) {
	doctors, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	doctors, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(doctors), nil
}

// AvailableOn lists the doctors with at least one schedule slot on the
// weekday of date.
func (s *Service) AvailableOn(ctx context.Context, date time.Time) ([]model.Doctor, error) {
	doctors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	day := s.weekday(date)
	available := make([]model.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if d.WorksOn(day) {
			available = append(available, d)
		}
	}
	return available, nil
}

// IsAvailable is false for an unknown doctor.
func (s *Service) IsAvailable(ctx context.Context, id model.ID, date time.Time) (bool, error) {
	d, err := s.Get(ctx, id)
	if err != nil || d == nil {
		return false, err
	}
	return d.WorksOn(s.weekday(date)), nil
}

func (s *Service) weekday(date time.Time) model.Weekday {
	return model.Weekday(calendar.WeekdayName(date, s.loc))
}

func byID(id model.ID) func(model.Doctor) bool {
	return func(d model.Doctor) bool { return d.ID == id }
}
