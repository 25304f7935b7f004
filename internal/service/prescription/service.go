package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/email"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/logger"
)

type PrescriptionService interface {
	CreatePrescription(ctx context.Context, patientID, clinicianID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	GetPrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	ListPrescriptions(ctx context.Context, patientID uuid.UUID, filters *model.PrescriptionFilters) ([]*model.Prescription, error)
	IssuePrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	DispensePrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
}

type Service struct {
	repo        repository.PrescriptionRepository
	patientRepo repository.PatientRepository
	email       email.Service
	logger      *logger.Logger
}

func NewService(repo repository.PrescriptionRepository, patientRepo repository.PatientRepository, mailer email.Service, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		email:       mailer,
		logger:      log,
	}
}

func (s *Service) CreatePrescription(ctx context.Context, patientID, clinicianID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if len(req.Medications) == 0 {
		return nil, errors.NewBadRequest("at least one medication is required", nil)
	}

	prescription := &model.Prescription{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		PatientID:   patientID,
		ClinicianID: clinicianID,
		Medications: req.Medications,
		Notes:       req.Notes,
		Status:      model.PrescriptionStatusDraft,
	}
	if err := prescription.MarshalMedications(); err != nil {
		return nil, fmt.Errorf("failed to encode medications: %w", err)
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}
	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	if err := prescription.UnmarshalMedications(); err != nil {
		return nil, fmt.Errorf("failed to decode medications: %w", err)
	}
	return prescription, nil
}

func (s *Service) ListPrescriptions(ctx context.Context, patientID uuid.UUID, filters *model.PrescriptionFilters) ([]*model.Prescription, error) {
	prescriptions, err := s.repo.ListByPatient(ctx, patientID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	for _, p := range prescriptions {
		if err := p.UnmarshalMedications(); err != nil {
			return nil, fmt.Errorf("failed to decode medications: %w", err)
		}
	}
	return prescriptions, nil
}

// IssuePrescription marks a draft as issued and emails it to the
// patient. Mail failures do not roll the status back; delivery is
// retried out of band.
func (s *Service) IssuePrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription.Status != model.PrescriptionStatusDraft {
		return nil, errors.NewConflict(
			fmt.Sprintf("cannot issue prescription in status %s", prescription.Status), nil)
	}

	now := time.Now()
	prescription.Status = model.PrescriptionStatusIssued
	prescription.IssuedAt = &now
	if err := s.repo.Update(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}

	patient, err := s.patientRepo.Get(ctx, prescription.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if err := s.email.SendPrescription(patient, prescription); err != nil {
		s.logger.Error(err, "prescription issued but email delivery failed",
			"prescription_id", prescription.ID.String())
	}
	return prescription, nil
}

func (s *Service) DispensePrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription.Status != model.PrescriptionStatusIssued {
		return nil, errors.NewConflict(
			fmt.Sprintf("cannot dispense prescription in status %s", prescription.Status), nil)
	}

	now := time.Now()
	prescription.Status = model.PrescriptionStatusDispensed
	prescription.DispensedAt = &now
	if err := s.repo.Update(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}
	return prescription, nil
}
