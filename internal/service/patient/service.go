package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
)

type PatientService interface {
	CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, patient *model.Patient) error
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	if err := s.validatePatient(patient); err != nil {
		return nil, fmt.Errorf("invalid patient data: %w", err)
	}

	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()
	patient.Status = string(model.PatientStatusActive)

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, patient *model.Patient) error {
	if err := s.validatePatient(patient); err != nil {
		return fmt.Errorf("invalid patient data: %w", err)
	}

	patient.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, patient); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) validatePatient(patient *model.Patient) error {
	if patient.ClinicID == uuid.Nil {
		return fmt.Errorf("clinic ID is required")
	}
	if patient.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if patient.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	if patient.Email == "" {
		return fmt.Errorf("email is required")
	}
	if patient.DateOfBirth.IsZero() {
		return fmt.Errorf("date of birth is required")
	}
	return nil
}
