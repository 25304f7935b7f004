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

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, patient_id, clinician_id, medications, notes, status,
			issued_at, dispensed_at, created_at, updated_at
		) VALUES (
			:id, :patient_id, :clinician_id, :medications, :notes, :status,
			:issued_at, :dispensed_at, :created_at, :updated_at
		)
	`
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, prescription); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE id = $1 AND deleted_at IS NULL`
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("prescription", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	query := `
		UPDATE prescriptions SET
			medications = :medications,
			notes = :notes,
			status = :status,
			issued_at = :issued_at,
			dispensed_at = :dispensed_at,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	prescription.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, prescription)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NewNotFound("prescription", nil)
	}
	return nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.PrescriptionFilters) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE patient_id = $1 AND deleted_at IS NULL`
	args := []interface{}{patientID}
	idx := 2

	if filters != nil {
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", idx)
			args = append(args, filters.Status)
			idx++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND created_at >= $%d", idx)
			args = append(args, filters.StartDate)
			idx++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND created_at <= $%d", idx)
			args = append(args, filters.EndDate)
			idx++
		}
	}
	query += ` ORDER BY created_at DESC`

	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
