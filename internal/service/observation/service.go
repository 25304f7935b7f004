package observation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/chart"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	"github.com/dentalops/dental-admin-api/pkg/errors"
)

type ObservationService interface {
	CreateObservation(ctx context.Context, patientID uuid.UUID, req *model.CreateObservationRequest) (*model.Observation, error)
	GetObservation(ctx context.Context, id uuid.UUID) (*model.Observation, error)
	UpdateObservation(ctx context.Context, id uuid.UUID, req *model.UpdateObservationRequest) (*model.Observation, error)
	ListObservations(ctx context.Context, patientID uuid.UUID, filters *model.ObservationFilters) ([]*model.Observation, error)
}

// Invalidator is notified after a mutation so derived chart caches can
// drop the patient's entry.
type Invalidator interface {
	Invalidate(patientID uuid.UUID)
}

type Service struct {
	repo        repository.ObservationRepository
	patientRepo repository.PatientRepository
	invalidator Invalidator
}

func NewService(repo repository.ObservationRepository, patientRepo repository.PatientRepository, invalidator Invalidator) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		invalidator: invalidator,
	}
}

func (s *Service) CreateObservation(ctx context.Context, patientID uuid.UUID, req *model.CreateObservationRequest) (*model.Observation, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if !chart.IsValidToothNumber(req.ToothNumber) {
		return nil, errors.NewBadRequest(fmt.Sprintf("invalid FDI tooth number: %s", req.ToothNumber), nil)
	}
	if !chart.IsValidConditionType(req.ConditionType) {
		return nil, errors.NewBadRequest(fmt.Sprintf("invalid condition type: %s", req.ConditionType), nil)
	}

	observation := &model.Observation{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		PatientID:         patientID,
		ToothNumber:       req.ToothNumber,
		ConditionType:     req.ConditionType,
		Severity:          req.Severity,
		ToothSurface:      req.ToothSurface,
		Notes:             req.Notes,
		TreatmentRequired: req.TreatmentRequired,
		AppointmentID:     req.AppointmentID,
	}

	if err := s.repo.Create(ctx, observation); err != nil {
		return nil, fmt.Errorf("failed to create observation: %w", err)
	}

	s.invalidator.Invalidate(patientID)
	return observation, nil
}

func (s *Service) GetObservation(ctx context.Context, id uuid.UUID) (*model.Observation, error) {
	observation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}
	links, err := s.repo.ListProcedureLinks(ctx, []uuid.UUID{observation.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load observation procedures: %w", err)
	}
	observation.Procedures = links[observation.ID]
	observation.NormalizeProcedures()
	return observation, nil
}

func (s *Service) UpdateObservation(ctx context.Context, id uuid.UUID, req *model.UpdateObservationRequest) (*model.Observation, error) {
	observation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}

	if req.ConditionType != nil {
		if !chart.IsValidConditionType(*req.ConditionType) {
			return nil, errors.NewBadRequest(fmt.Sprintf("invalid condition type: %s", *req.ConditionType), nil)
		}
		observation.ConditionType = *req.ConditionType
	}
	if req.Severity != nil {
		observation.Severity = *req.Severity
	}
	if req.ToothSurface != nil {
		observation.ToothSurface = *req.ToothSurface
	}
	if req.Notes != nil {
		observation.Notes = *req.Notes
	}
	if req.TreatmentRequired != nil {
		observation.TreatmentRequired = *req.TreatmentRequired
	}
	if req.TreatmentDone != nil {
		observation.TreatmentDone = *req.TreatmentDone
		if *req.TreatmentDone && req.TreatmentDate == nil && observation.TreatmentDate == nil {
			now := time.Now()
			observation.TreatmentDate = &now
		}
	}
	if req.TreatmentDate != nil {
		observation.TreatmentDate = req.TreatmentDate
	}

	if err := s.repo.Update(ctx, observation); err != nil {
		return nil, fmt.Errorf("failed to update observation: %w", err)
	}

	s.invalidator.Invalidate(observation.PatientID)
	return observation, nil
}

func (s *Service) ListObservations(ctx context.Context, patientID uuid.UUID, filters *model.ObservationFilters) ([]*model.Observation, error) {
	observations, err := s.repo.ListByPatient(ctx, patientID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(observations))
	for _, obs := range observations {
		ids = append(ids, obs.ID)
	}
	links, err := s.repo.ListProcedureLinks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load observation procedures: %w", err)
	}
	for _, obs := range observations {
		obs.Procedures = links[obs.ID]
		obs.NormalizeProcedures()
	}
	return observations, nil
}
