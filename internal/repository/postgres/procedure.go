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

type procedureRepository struct {
	db *sqlx.DB
}

func NewProcedureRepository(db *sqlx.DB) repository.ProcedureRepository {
	return &procedureRepository{db: db}
}

func (r *procedureRepository) Create(ctx context.Context, procedure *model.Procedure) error {
	query := `
		INSERT INTO procedures (
			id, patient_id, tooth_numbers, procedure_code, procedure_name,
			status, scheduled_at, completed_date, estimated_cost,
			actual_cost, procedure_notes, appointment_id, observation_id,
			created_at, updated_at
		) VALUES (
			:id, :patient_id, :tooth_numbers, :procedure_code, :procedure_name,
			:status, :scheduled_at, :completed_date, :estimated_cost,
			:actual_cost, :procedure_notes, :appointment_id, :observation_id,
			:created_at, :updated_at
		)
	`
	procedure.CreatedAt = time.Now()
	procedure.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, procedure); err != nil {
		return fmt.Errorf("failed to create procedure: %w", err)
	}
	return nil
}

func (r *procedureRepository) Get(ctx context.Context, id uuid.UUID) (*model.Procedure, error) {
	query := `SELECT * FROM procedures WHERE id = $1 AND deleted_at IS NULL`
	var procedure model.Procedure
	err := r.db.GetContext(ctx, &procedure, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("procedure", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}
	return &procedure, nil
}

func (r *procedureRepository) Update(ctx context.Context, procedure *model.Procedure) error {
	query := `
		UPDATE procedures SET
			status = :status,
			completed_date = :completed_date,
			estimated_cost = :estimated_cost,
			actual_cost = :actual_cost,
			procedure_notes = :procedure_notes,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	procedure.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, procedure)
	if err != nil {
		return fmt.Errorf("failed to update procedure: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NewNotFound("procedure", nil)
	}
	return nil
}

func (r *procedureRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.ProcedureFilters) ([]*model.Procedure, error) {
	query := `SELECT * FROM procedures WHERE patient_id = $1 AND deleted_at IS NULL`
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

	var procedures []*model.Procedure
	if err := r.db.SelectContext(ctx, &procedures, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}

	// tooth_number filtering happens in memory: the column is a
	// comma-separated list in transport form.
	if filters != nil && filters.ToothNumber != "" {
		filtered := procedures[:0]
		for _, proc := range procedures {
			for _, tooth := range proc.TeethList() {
				if tooth == filters.ToothNumber {
					filtered = append(filtered, proc)
					break
				}
			}
		}
		procedures = filtered
	}

	return procedures, nil
}
