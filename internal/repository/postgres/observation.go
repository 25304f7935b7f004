package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	apperrors "github.com/dentalops/dental-admin-api/pkg/errors"
)

type observationRepository struct {
	db *sqlx.DB
}

func NewObservationRepository(db *sqlx.DB) repository.ObservationRepository {
	return &observationRepository{db: db}
}

func (r *observationRepository) Create(ctx context.Context, observation *model.Observation) error {
	query := `
		INSERT INTO observations (
			id, patient_id, tooth_number, condition_type, severity,
			tooth_surface, observation_notes, treatment_required,
			treatment_done, treatment_date, appointment_id,
			created_at, updated_at
		) VALUES (
			:id, :patient_id, :tooth_number, :condition_type, :severity,
			:tooth_surface, :observation_notes, :treatment_required,
			:treatment_done, :treatment_date, :appointment_id,
			:created_at, :updated_at
		)
	`
	observation.CreatedAt = time.Now()
	observation.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, observation); err != nil {
		return fmt.Errorf("failed to create observation: %w", err)
	}
	return nil
}

func (r *observationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Observation, error) {
	query := `SELECT * FROM observations WHERE id = $1 AND deleted_at IS NULL`
	var observation model.Observation
	err := r.db.GetContext(ctx, &observation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("observation", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}
	return &observation, nil
}

func (r *observationRepository) Update(ctx context.Context, observation *model.Observation) error {
	query := `
		UPDATE observations SET
			condition_type = :condition_type,
			severity = :severity,
			tooth_surface = :tooth_surface,
			observation_notes = :observation_notes,
			treatment_required = :treatment_required,
			treatment_done = :treatment_done,
			treatment_date = :treatment_date,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`
	observation.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, observation)
	if err != nil {
		return fmt.Errorf("failed to update observation: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NewNotFound("observation", nil)
	}
	return nil
}

func (r *observationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, filters *model.ObservationFilters) ([]*model.Observation, error) {
	query := `SELECT * FROM observations WHERE patient_id = $1 AND deleted_at IS NULL`
	args := []interface{}{patientID}
	idx := 2

	if filters != nil {
		if filters.ToothNumber != "" {
			query += fmt.Sprintf(" AND tooth_number = $%d", idx)
			args = append(args, filters.ToothNumber)
			idx++
		}
		if filters.ConditionType != "" {
			query += fmt.Sprintf(" AND condition_type = $%d", idx)
			args = append(args, filters.ConditionType)
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

	var observations []*model.Observation
	if err := r.db.SelectContext(ctx, &observations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	return observations, nil
}

// ListProcedureLinks loads the procedures linked to each of the given
// observations, keyed by observation ID.
func (r *observationRepository) ListProcedureLinks(ctx context.Context, observationIDs []uuid.UUID) (map[uuid.UUID][]model.Procedure, error) {
	links := make(map[uuid.UUID][]model.Procedure, len(observationIDs))
	if len(observationIDs) == 0 {
		return links, nil
	}

	query := `
		SELECT * FROM procedures
		WHERE observation_id = ANY($1) AND deleted_at IS NULL
		ORDER BY created_at
	`
	var procedures []model.Procedure
	if err := r.db.SelectContext(ctx, &procedures, query, pq.Array(observationIDs)); err != nil {
		return nil, fmt.Errorf("failed to list observation procedures: %w", err)
	}

	for _, proc := range procedures {
		if proc.ObservationID == nil {
			continue
		}
		links[*proc.ObservationID] = append(links[*proc.ObservationID], proc)
	}
	return links, nil
}
