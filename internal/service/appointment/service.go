package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/event"
	"github.com/jwalitptl/clinic-admin/pkg/calendar"
)

type AppointmentService interface {
	Schedule(ctx context.Context, appointment *model.Appointment) error
	Cancel(ctx context.Context, key model.AppointmentKey) (model.Outcome, error)
	Reschedule(ctx context.Context, key model.AppointmentKey, update model.UpdateAppointmentRequest) (model.Outcome, error)
	ByDoctor(ctx context.Context, doctorID model.ID) ([]model.Appointment, error)
	ByPatient(ctx context.Context, patientID model.ID) ([]model.Appointment, error)
	ByDate(ctx context.Context, date time.Time) ([]model.Appointment, error)
	List(ctx context.Context, filters model.AppointmentFilters) ([]model.Appointment, error)
}

type Service struct {
	repo   repository.AppointmentRepository
	events event.Emitter
	loc    *time.Location
}

func NewService(repo repository.AppointmentRepository, events event.Emitter, loc *time.Location) *Service {
	if events == nil {
		events = event.Noop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, events: events, loc: loc}
}

// Schedule appends the appointment. Overlapping or duplicate appointments are
// accepted.
func (s *Service) Schedule(ctx context.Context, appointment *model.Appointment) error {
	if err := s.repo.Mutate(ctx, repository.Append(*appointment)); err != nil {
		return fmt.Errorf("failed to schedule appointment: %w", err)
	}
	event.Record(ctx, s.events, event.AppointmentScheduled, appointment)
	return nil
}

// Cancel removes the first appointment whose instant, patient and doctor all
// match key.
func (s *Service) Cancel(ctx context.Context, key model.AppointmentKey) (model.Outcome, error) {
	var found bool
	if err := s.repo.Mutate(ctx, repository.RemoveFirst(key.Matches, &found)); err != nil {
		return "", fmt.Errorf("failed to cancel appointment: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.AppointmentCancelled, key)
	return model.OutcomeApplied, nil
}

func (s *Service) Reschedule(ctx context.Context, key model.AppointmentKey, update model.UpdateAppointmentRequest) (model.Outcome, error) {
	var (
		found   bool
		updated model.Appointment
	)
	err := s.repo.Mutate(ctx, repository.UpdateFirst(key.Matches, func(a *model.Appointment) {
		update.Apply(a)
		updated = *a
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to reschedule appointment: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.AppointmentRescheduled, map[string]interface{}{
		"previous": key,
		"current":  updated,
	})
	return model.OutcomeApplied, nil
}

func (s *Service) ByDoctor(ctx context.Context, doctorID model.ID) ([]model.Appointment, error) {
	return s.List(ctx, model.AppointmentFilters{DoctorID: &doctorID})
}

func (s *Service) ByPatient(ctx context.Context, patientID model.ID) ([]model.Appointment, error) {
	return s.List(ctx, model.AppointmentFilters{PatientID: &patientID})
}

// ByDate matches on the calendar day in the clinic location; the time of day
// is ignored.
func (s *Service) ByDate(ctx context.Context, date time.Time) ([]model.Appointment, error) {
	return s.List(ctx, model.AppointmentFilters{Date: &date})
}

// List returns the appointments matching every non-nil filter.
func (s *Service) List(ctx context.Context, filters model.AppointmentFilters) ([]model.Appointment, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	matched := make([]model.Appointment, 0, len(all))
	for _, a := range all {
		if filters.DoctorID != nil && a.DoctorID != *filters.DoctorID {
			continue
		}
		if filters.PatientID != nil && a.PatientID != *filters.PatientID {
			continue
		}
		if filters.Date != nil && !calendar.SameDate(a.Timestamp, *filters.Date, s.loc) {
			continue
		}
		matched = append(matched, a)
	}
	return matched, nil
}
