package prescription

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/event"
)

type PrescriptionService interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	Edit(ctx context.Context, patientID, doctorID model.ID, update model.UpdatePrescriptionRequest) (model.Outcome, error)
	Delete(ctx context.Context, patientID, doctorID model.ID) (model.Outcome, error)
	ByPatient(ctx context.Context, patientID model.ID) ([]model.Prescription, error)
	Medications(ctx context.Context, patientID, doctorID model.ID) ([]model.Medication, error)
}

type Service struct {
	repo   repository.PrescriptionRepository
	events event.Emitter
}

func NewService(repo repository.PrescriptionRepository, events event.Emitter) *Service {
	if events == nil {
		events = event.Noop()
	}
	return &Service{repo: repo, events: events}
}

// Create appends without checking for an existing prescription for the same
// pair.
func (s *Service) Create(ctx context.Context, prescription *model.Prescription) error {
	if err := s.repo.Mutate(ctx, repository.Append(*prescription)); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	event.Record(ctx, s.events, event.PrescriptionCreated, prescription)
	return nil
}

func (s *Service) Edit(ctx context.Context, patientID, doctorID model.ID, update model.UpdatePrescriptionRequest) (model.Outcome, error) {
	var (
		found   bool
		updated model.Prescription
	)
	err := s.repo.Mutate(ctx, repository.UpdateFirst(pair(patientID, doctorID), func(p *model.Prescription) {
		update.Apply(p)
		updated = *p
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to update prescription: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.PrescriptionUpdated, updated)
	return model.OutcomeApplied, nil
}

func (s *Service) Delete(ctx context.Context, patientID, doctorID model.ID) (model.Outcome, error) {
	var found bool
	if err := s.repo.Mutate(ctx, repository.RemoveFirst(pair(patientID, doctorID), &found)); err != nil {
		return "", fmt.Errorf("failed to delete prescription: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.PrescriptionDeleted, map[string]model.ID{
		"id_paciente": patientID,
		"id_doctor":   doctorID,
	})
	return model.OutcomeApplied, nil
}

func (s *Service) ByPatient(ctx context.Context, patientID model.ID) ([]model.Prescription, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	matched := make([]model.Prescription, 0)
	for _, p := range all {
		if p.PatientID == patientID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Medications returns the medications of the first prescription for the pair,
// or nil when there is none.
func (s *Service) Medications(ctx context.Context, patientID, doctorID model.ID) ([]model.Medication, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	for _, p := range all {
		if p.Is(patientID, doctorID) {
			if p.Medications == nil {
				return []model.Medication{}, nil
			}
			return p.Medications, nil
		}
	}
	return nil, nil
}

func pair(patientID, doctorID model.ID) func(model.Prescription) bool {
	return func(p model.Prescription) bool { return p.Is(patientID, doctorID) }
}
