package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	"github.com/dentalops/dental-admin-api/pkg/errors"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) (*model.Appointment, error)
}

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo}
}

func (s *Service) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewBadRequest("end time must be after start time", nil)
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, errors.NewBadRequest("invalid clinic ID", err)
	}
	clinicianID, err := uuid.Parse(req.ClinicianID)
	if err != nil {
		return nil, errors.NewBadRequest("invalid clinician ID", err)
	}

	appointment := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ClinicID:    clinicID,
		ClinicianID: clinicianID,
		PatientID:   patientID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      model.AppointmentStatusScheduled,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	switch appointment.Status {
	case model.AppointmentStatusCancelled, model.AppointmentStatusCompleted:
		return nil, errors.NewConflict(
			fmt.Sprintf("appointment is already %s", appointment.Status), nil)
	}
	if status == model.AppointmentStatusCancelled && cancelReason == nil {
		return nil, errors.NewBadRequest("cancel reason is required", nil)
	}

	appointment.Status = status
	appointment.CancelReason = cancelReason
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}
