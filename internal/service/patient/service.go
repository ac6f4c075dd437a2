package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/event"
	"github.com/jwalitptl/clinic-admin/pkg/calendar"
)

// LatestPrescriptionsLimit is how many prescriptions LatestPrescriptions returns.
const LatestPrescriptionsLimit = 5

type PatientService interface {
	Create(ctx context.Context, patient *model.Patient) error
	Edit(ctx context.Context, id model.ID, update model.UpdatePatientRequest) (model.Outcome, error)
	Delete(ctx context.Context, id model.ID) (model.Outcome, error)
	Get(ctx context.Context, id model.ID) (*model.Patient, error)
	Age(ctx context.Context, id model.ID) (*int, error)
	List(ctx context.Context) ([]model.Patient, error)
	Count(ctx context.Context) (int, error)
	LatestPrescriptions(ctx context.Context, id model.ID) ([]model.Prescription, error)
}

type Service struct {
	repo              repository.PatientRepository
	prescriptionsRepo repository.PrescriptionRepository
	events            event.Emitter
	now               func() time.Time
}

func NewService(repo repository.PatientRepository, prescriptionsRepo repository.PrescriptionRepository, events event.Emitter) *Service {
	if events == nil {
		events = event.Noop()
	}
	return &Service{
		repo:              repo,
		prescriptionsRepo: prescriptionsRepo,
		events:            events,
		now:               time.Now,
	}
}

func (s *Service) Create(ctx context.Context, patient *model.Patient) error {
	if err := s.repo.Mutate(ctx, repository.Append(*patient)); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	event.Record(ctx, s.events, event.PatientCreated, patient)
	return nil
}

func (s *Service) Edit(ctx context.Context, id model.ID, update model.UpdatePatientRequest) (model.Outcome, error) {
	var (
		found   bool
		updated model.Patient
	)
	err := s.repo.Mutate(ctx, repository.UpdateFirst(byID(id), func(p *model.Patient) {
		update.Apply(p)
		updated = *p
	}, &found))
	if err != nil {
		return "", fmt.Errorf("failed to update patient: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.PatientUpdated, updated)
	return model.OutcomeApplied, nil
}

// Delete removes the first patient with id. Appointments, prescriptions and
// invoices that reference it are left as they are.
func (s *Service) Delete(ctx context.Context, id model.ID) (model.Outcome, error) {
	var found bool
	if err := s.repo.Mutate(ctx, repository.RemoveFirst(byID(id), &found)); err != nil {
		return "", fmt.Errorf("failed to delete patient: %w", err)
	}
	if !found {
		return model.OutcomeNotFound, nil
	}
	event.Record(ctx, s.events, event.PatientDeleted, map[string]model.ID{"id_paciente": id})
	return model.OutcomeApplied, nil
}

func (s *Service) Get(ctx context.Context, id model.ID) (*model.Patient, error) {
	patients, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, nil
}

// Age is nil when the patient does not exist.
func (s *Service) Age(ctx context.Context, id model.ID) (*int, error) {
	p, err := s.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	age := calendar.AgeYears(p.BirthDate, s.now())
	return &age, nil
}

func (s *Service) List(ctx context.Context) ([]model.Patient, error) {
	patients, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	patients, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(patients), nil
}

// LatestPrescriptions returns the last five of the patient's prescriptions in
// storage order, which is insertion order rather than date order.
func (s *Service) LatestPrescriptions(ctx context.Context, id model.ID) ([]model.Prescription, error) {
	all, err := s.prescriptionsRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	matched := make([]model.Prescription, 0)
	for _, p := range all {
		if p.PatientID == id {
			matched = append(matched, p)
		}
	}
	if len(matched) > LatestPrescriptionsLimit {
		matched = matched[len(matched)-LatestPrescriptionsLimit:]
	}
	return matched, nil
}

func byID(id model.ID) func(model.Patient) bool {
	return func(p model.Patient) bool { return p.ID == id }
}
