package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	apperrors "github.com/dentalops/dental-admin-api/pkg/errors"
)

type clinicianRepository struct {
	db *sqlx.DB
}

func NewClinicianRepository(db *sqlx.DB) repository.ClinicianRepository {
	return &clinicianRepository{db: db}
}

func (r *clinicianRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinician, error) {
	query := `SELECT * FROM clinicians WHERE id = $1 AND deleted_at IS NULL`
	var clinician model.Clinician
	err := r.db.GetContext(ctx, &clinician, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("clinician", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinician: %w", err)
	}
	return &clinician, nil
}

func (r *clinicianRepository) GetByEmail(ctx context.Context, email string) (*model.Clinician, error) {
	query := `SELECT * FROM clinicians WHERE email = $1 AND deleted_at IS NULL`
	var clinician model.Clinician
	err := r.db.GetContext(ctx, &clinician, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("clinician", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinician by email: %w", err)
	}
	return &clinician, nil
}
