package procedure

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

type ProcedureService interface {
	CreateProcedure(ctx context.Context, patientID uuid.UUID, req *model.CreateProcedureRequest) (*model.Procedure, error)
	GetProcedure(ctx context.Context, id uuid.UUID) (*model.Procedure, error)
	UpdateProcedure(ctx context.Context, id uuid.UUID, req *model.UpdateProcedureRequest) (*model.Procedure, error)
	ListProcedures(ctx context.Context, patientID uuid.UUID, filters *model.ProcedureFilters) ([]*model.Procedure, error)
}

type Invalidator interface {
	Invalidate(patientID uuid.UUID)
}

type Service struct {
	repo        repository.ProcedureRepository
	patientRepo repository.PatientRepository
	obsRepo     repository.ObservationRepository
	invalidator Invalidator
}

func NewService(repo repository.ProcedureRepository, patientRepo repository.PatientRepository, obsRepo repository.ObservationRepository, invalidator Invalidator) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		obsRepo:     obsRepo,
		invalidator: invalidator,
	}
}

func (s *Service) CreateProcedure(ctx context.Context, patientID uuid.UUID, req *model.CreateProcedureRequest) (*model.Procedure, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	procedure := &model.Procedure{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		PatientID:     patientID,
		ToothNumbers:  req.ToothNumbers,
		Code:          req.Code,
		Name:          req.Name,
		Status:        model.ProcedureStatusPlanned,
		ScheduledAt:   req.ScheduledAt,
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
		AppointmentID: req.AppointmentID,
		ObservationID: req.ObservationID,
	}

	for _, tooth := range procedure.TeethList() {
		if !chart.IsValidToothNumber(tooth) {
			return nil, errors.NewBadRequest(fmt.Sprintf("invalid FDI tooth number: %s", tooth), nil)
		}
	}
	if len(procedure.TeethList()) == 0 {
		return nil, errors.NewBadRequest("at least one tooth number is required", nil)
	}
	if req.ObservationID != nil {
		obs, err := s.obsRepo.Get(ctx, *req.ObservationID)
		if err != nil {
			return nil, fmt.Errorf("failed to get linked observation: %w", err)
		}
		if obs.PatientID != patientID {
			return nil, errors.NewBadRequest("linked observation belongs to a different patient", nil)
		}
	}

	if err := s.repo.Create(ctx, procedure); err != nil {
		return nil, fmt.Errorf("failed to create procedure: %w", err)
	}

	s.invalidator.Invalidate(patientID)
	return procedure, nil
}

func (s *Service) GetProcedure(ctx context.Context, id uuid.UUID) (*model.Procedure, error) {
	procedure, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}
	return procedure, nil
}

func (s *Service) UpdateProcedure(ctx context.Context, id uuid.UUID, req *model.UpdateProcedureRequest) (*model.Procedure, error) {
	procedure, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}

	if req.Status != nil && *req.Status != procedure.Status {
		if !procedure.CanTransition(*req.Status) {
			return nil, errors.NewConflict(
				fmt.Sprintf("cannot transition procedure from %s to %s", procedure.Status, *req.Status), nil)
		}
		procedure.Status = *req.Status
		if *req.Status == model.ProcedureStatusCompleted && req.CompletedDate == nil && procedure.CompletedDate == nil {
			now := time.Now()
			procedure.CompletedDate = &now
		}
	}
	if req.CompletedDate != nil {
		procedure.CompletedDate = req.CompletedDate
	}
	if req.EstimatedCost != nil {
		procedure.EstimatedCost = req.EstimatedCost
	}
	if req.ActualCost != nil {
		procedure.ActualCost = req.ActualCost
	}
	if req.Notes != nil {
		procedure.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, procedure); err != nil {
		return nil, fmt.Errorf("failed to update procedure: %w", err)
	}

	s.invalidator.Invalidate(procedure.PatientID)
	return procedure, nil
}

func (s *Service) ListProcedures(ctx context.Context, patientID uuid.UUID, filters *model.ProcedureFilters) ([]*model.Procedure, error) {
	procedures, err := s.repo.ListByPatient(ctx, patientID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	return procedures, nil
}
