package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	apperrors "github.com/dentalops/dental-admin-api/pkg/errors"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, clinic_id, clinician_id, patient_id, start_time, end_time,
			status, notes, created_at, updated_at
		) VALUES (
			:id, :clinic_id, :clinician_id, :patient_id, :start_time, :end_time,
			:status, :notes, :created_at, :updated_at
		)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1 AND deleted_at IS NULL`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments SET
			start_time = :start_time,
			end_time = :end_time,
			status = :status,
			notes = :notes,
			cancel_reason = :cancel_reason,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, appointment)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NewNotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE deleted_at IS NULL`
	args := []interface{}{}
	idx := 1

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", idx)
			args = append(args, filters.PatientID)
			idx++
		}
		if filters.ClinicID != uuid.Nil {
			query += fmt.Sprintf(" AND clinic_id = $%d", idx)
			args = append(args, filters.ClinicID)
			idx++
		}
		if filters.ClinicianID != uuid.Nil {
			query += fmt.Sprintf(" AND clinician_id = $%d", idx)
			args = append(args, filters.ClinicianID)
			idx++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", idx)
			args = append(args, filters.Status)
			idx++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND start_time >= $%d", idx)
			args = append(args, filters.StartDate)
			idx++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND start_time <= $%d", idx)
			args = append(args, filters.EndDate)
			idx++
		}
	}
	query += ` ORDER BY start_time DESC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
