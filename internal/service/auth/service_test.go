package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalops/dental-admin-api/internal/model"
	pkgauth "github.com/dentalops/dental-admin-api/pkg/auth"
	apperrors "github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/security"
)

type fakeClinicianRepo struct {
	byEmail map[string]*model.Clinician
}

func (f *fakeClinicianRepo) Get(ctx context.Context, id uuid.UUID) (*model.Clinician, error) {
	for _, c := range f.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFound("clinician", nil)
}

func (f *fakeClinicianRepo) GetByEmail(ctx context.Context, email string) (*model.Clinician, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFound("clinician", nil)
	}
	return c, nil
}

func newTestService(t *testing.T, password string) (*Service, *model.Clinician) {
	t.Helper()

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	clinician := &model.Clinician{
		Base:         model.Base{ID: uuid.New()},
		Email:        "dentist@clinic.test",
		PasswordHash: hash,
		Role:         "dentist",
	}
	repo := &fakeClinicianRepo{byEmail: map[string]*model.Clinician{clinician.Email: clinician}}
	jwt := pkgauth.NewJWTService(pkgauth.JWTConfig{Secret: "test", RefreshSecret: "test-refresh"})

	return NewService(repo, hasher, jwt), clinician
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	svc, clinician := newTestService(t, "correct-horse")

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    clinician.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, clinician.ID, resp.Clinician.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, clinician.ID, claims.ClinicianID)
	assert.Equal(t, "dentist", claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, clinician := newTestService(t, "correct-horse")

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    clinician.Email,
		Password: "wrong-battery",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t, "correct-horse")

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@clinic.test",
		Password: "correct-horse",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
