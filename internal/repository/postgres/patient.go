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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, clinic_id, first_name, last_name, email, phone,
			date_of_birth, gender, address, allergies, notes, status,
			created_at, updated_at
		) VALUES (
			:id, :clinic_id, :first_name, :last_name, :email, :phone,
			:date_of_birth, :gender, :address, :allergies, :notes, :status,
			:created_at, :updated_at
		)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1 AND deleted_at IS NULL`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET
			first_name = :first_name,
			last_name = :last_name,
			email = :email,
			phone = :phone,
			date_of_birth = :date_of_birth,
			gender = :gender,
			address = :address,
			allergies = :allergies,
			notes = :notes,
			status = :status,
			last_visit_at = :last_visit_at,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, patient)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NewNotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE patients SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NewNotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE deleted_at IS NULL`
	args := []interface{}{}
	idx := 1

	if filters != nil {
		if filters.ClinicID != uuid.Nil {
			query += fmt.Sprintf(" AND clinic_id = $%d", idx)
			args = append(args, filters.ClinicID)
			idx++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", idx)
			args = append(args, filters.Status)
			idx++
		}
		if filters.SearchTerm != "" {
			query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", idx, idx, idx)
			args = append(args, "%"+filters.SearchTerm+"%")
			idx++
		}
	}
	query += ` ORDER BY last_name, first_name`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
