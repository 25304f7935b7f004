package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/model"
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	ObservationRepository interface {
		Create(ctx context.Context, observation *model.Observation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Observation, error)
		Update(ctx context.Context, observation *model.Observation) error
		ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.ObservationFilters) ([]*model.Observation, error)
		ListProcedureLinks(ctx context.Context, observationIDs []uuid.UUID) (map[uuid.UUID][]model.Procedure, error)
	}

	ProcedureRepository interface {
		Create(ctx context.Context, procedure *model.Procedure) error
		Get(ctx context.Context, id uuid.UUID) (*model.Procedure, error)
		Update(ctx context.Context, procedure *model.Procedure) error
		ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.ProcedureFilters) ([]*model.Procedure, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		Update(ctx context.Context, prescription *model.Prescription) error
		ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.PrescriptionFilters) ([]*model.Prescription, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	ClinicianRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Clinician, error)
		GetByEmail(ctx context.Context, email string) (*model.Clinician, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
